// Package doctor runs read-only consistency checks over the local store.
//
// The store deliberately has no database-level foreign keys so that
// snapshot imports and offline-minted rows can land in any order. The
// doctor is the counterweight: it verifies the invariants the schema
// cannot, and reports every violation instead of failing on the first.
//
// Checks:
//
//   - schema completeness: every registry table exists
//   - stage-tree mirroring: each event's stage tree matches its venue
//     format's tree in count, numbers and parent edges
//   - orphans: scores without their stage or participant, stages without
//     their event, team members without their participant
//   - duplicates: merge entries mapping one foreign row twice, or two
//     score rows for one (stage, participant) pair
//
// # Components
//
//   - Service: runs the checks concurrently and assembles the report.
//   - Handler: the HTTP surface.
//   - Loader: registers the feature with the application.
//
// # HTTP Endpoints
//
//   - GET /doctor : run all checks and return the report
package doctor
