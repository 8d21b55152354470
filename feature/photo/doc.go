// Package photo attaches images to catalog and event rows.
//
// A photo is two things: a database row binding it to the row it belongs to
// (any snapshot table), and a payload in object storage. The payload is
// content addressed under its sha256 hash, which makes uploads idempotent:
// attaching bytes that are already stored returns the existing photo. Rows
// travel in snapshots like any other table, with the ref id remapped on
// import; the payload transfer between devices stays out of band.
//
// # Components
//
//   - Service: attach, open, list and detach operations.
//   - Handler: the HTTP surface.
//   - Loader: registers the feature with the application.
//
// # HTTP Endpoints
//
//   - POST   /photos/:refTable/:refId : attach the request body as a photo
//   - GET    /photos/:refTable/:refId : list a row's photos
//   - GET    /photos/:id              : stream a photo payload
//   - DELETE /photos/:id              : remove a photo row and payload
package photo
