// Package evidence stores photos and documents attached to assets.
//
// Files live in the storage bucket under `evidence/<asset id>/<uuid><ext>`.
// Their public URLs are appended to the asset's evidence list, which the
// criticality engine copies into the asset's ledger record on the next run.
// Uploaded content is not validated.
//
// # HTTP Endpoints
//
//   - POST   /assets/:id/evidence : Upload a file (multipart field "file").
//   - GET    /assets/:id/evidence : List stored evidence.
//   - DELETE /assets/:id/evidence/:name : Remove one file.
package evidence
