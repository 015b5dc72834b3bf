// Package report builds the consolidated critical-assets report.
//
// Generating a report always synchronizes the ledger first, so the report
// reflects the inventory at request time. Reports render as JSON or as CSV
// and can be archived under `reports/` in the storage bucket.
//
// # HTTP Endpoints
//
//   - GET /reports/critical?format=csv&include_resolved=true&archive=true
package report
