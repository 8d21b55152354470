// Package event implements the event feature: concrete competitions with
// their stage trees, participants and scores.
//
// An event is created at a venue's format registration and receives its own
// stage tree, generated 1:1 from the venue's mirrored tree. Scores live at
// the leaves, one row per (stage, participant), with points, score type and
// win/loss margins derived through the sport's scoring method on every
// write. The composite upsert reconciles a whole event aggregate in one
// idempotent call, which is what lets aggregates recorded offline on
// another device land safely.
//
// # Components
//
//   - Service: event lifecycle, the composite aggregate upsert, detail
//     reads over the three-level stage join and result scoring.
//   - Handler: the HTTP surface.
//   - Loader: registers the feature with the application.
//
// # HTTP Endpoints
//
//   - POST   /events : create an event (generates the stage tree)
//   - GET    /events : list events
//   - GET    /events/:id : get an event with stages and scores
//   - PUT    /events/:id : reconcile a full event aggregate
//   - DELETE /events/:id : delete an event with its tree and scores
//   - GET    /events/:id/results : score the event
package event
