// Package roster implements the participant and team feature.
//
// Players and teams share one participant table, distinguished by a flag;
// membership lives in an edge table, so teams nest to any practical depth.
// The composite team upsert replaces the member set as a whole and rejects
// membership that would make a team contain itself.
//
// # HTTP Endpoints
//
//   - POST /participants : upsert a participant
//   - GET  /participants : list participants (team/name filters)
//   - GET  /participants/:id : get a participant
//   - PUT  /teams : upsert a team with its member set
//   - GET  /teams/:id/tree : get a team's resolved member tree
package roster
