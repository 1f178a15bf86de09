// Package store defines interfaces for data persistence operations.
// These interfaces keep the drill service independent of the database:
// implementations live in internal/platform/postgres, and services run
// multi-statement work through RunInTransaction with WithTx-scoped stores.
package store
