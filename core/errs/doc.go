// Package errs defines the error taxonomy shared by the scorebook core.
//
// Three conditions get typed errors because callers branch on them:
//
//   - NotFoundError: a referenced id does not exist. Raised immediately by
//     single-entity and cascading writes (a parent must exist before children
//     can reference it).
//   - ValidationError: required input is missing or a raw value fails a
//     sport-defined schema. Raised before any write.
//   - IntegrityError: a write would violate a uniqueness invariant (duplicate
//     merge key, duplicate unique name). Carries the conflicting key/value.
//
// Bulk import failures are deliberately NOT errors of this kind: the sync
// feature collects them per row and completes the batch, because partial
// success has value when merging snapshots between devices.
//
// All three support errors.As through the IsNotFound / IsValidation /
// IsIntegrity helpers, so wrapping with fmt.Errorf("...: %w", err) is safe.
package errs
