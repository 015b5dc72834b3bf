// Package integrity provides system health checks.
//
// Unlike the 'criticality' package, which reconciles domain data, this
// package validates the infrastructure the inventory depends on.
//
// # Checks Provided
//
//   - Storage: Checks that the bucket exists with its evidence/ and reports/ folders.
//   - Schema: Validates that the connected database matches the inventory models (tables, columns, types).
//
// # HTTP Endpoints
//
//   - GET /integrity : Runs all checks.
//   - GET /integrity/storage : Runs the storage check (supports ?fix=true).
//   - GET /integrity/schema : Runs the schema check.
package integrity
