// Package models defines the persisted inventory types: assets, maintenance
// tasks, the priority catalog and the criticality ledger, plus the enumerations
// parsed from their free-text columns.
package models
