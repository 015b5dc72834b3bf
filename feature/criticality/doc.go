// Package criticality implements the criticality scoring and ledger
// synchronization feature.
//
// Every run scores all assets against their maintenance history, keeps the
// qualifying ones as Judgments and reconciles the persisted ledger with them:
//  1. Catalog: the CRITICAL, HIGH and MEDIUM tiers are bound to priority_tiers rows.
//  2. Evaluate: Score and Classify turn assets and tasks into Judgments.
//  3. Plan: PlanReconcile diffs Judgments against the ledger and the asset flags.
//  4. Apply: the `core/reconcile` applier executes the plan one action at a time.
//
// Resolved records are never updated or deleted by a run. The engine-owned
// is_critical flag is restored on every run so it matches the ledger.
//
// # Components
//
//   - Engine: Serializes runs and produces Stats.
//   - GormStore: Assets, tasks, catalog and ledger on one gorm connection.
//   - Service / Handler: HTTP access to sync, judgments and records.
//   - Feature: Registers the routes with the loader.
//
// # HTTP Endpoints
//
//   - POST  /criticality/sync?dry_run=true : Run a synchronization.
//   - GET   /criticality/judgments : Current judgments, read-only.
//   - GET   /criticality/records?resolved=false : List the ledger.
//   - PATCH /criticality/records/:id/resolve : Resolve a record.
package criticality
