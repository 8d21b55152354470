// Package catalog implements the sport, event-format and venue feature.
//
// It owns the reusable half of the data model: sports with their scoring
// plugins, event formats carrying a recursive stage tree, and venues with
// their format registrations. Registering a format at a venue snapshots
// the format's stage tree 1:1 into venue stage rows, so later format edits
// never silently rewrite what a venue already plays.
//
// # Components
//
//   - Service: composite upserts and detail reads for sports, formats,
//     venues and registrations.
//   - Handler: the HTTP surface.
//   - Loader: registers the feature with the application.
//
// # HTTP Endpoints
//
//   - POST   /sports : create a sport (wires plugin score formats)
//   - GET    /sports : list sports
//   - GET    /sports/:id : get a sport
//   - PUT    /formats : upsert an event format with its stage tree
//   - GET    /formats/:id : get a format with its rebuilt tree
//   - DELETE /formats/:id : delete a format and its stages
//   - POST   /venues : create a venue
//   - GET    /venues : list venues
//   - GET    /venues/:venueId/formats : list a venue's registrations
//   - POST   /venues/:venueId/formats/:formatId : register a format
//   - GET    /venue-formats/:id : get a registration with its mirror tree
package catalog
