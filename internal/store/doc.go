// Package store provides abstractions for data persistence: entity store
// interfaces, shared sentinel errors, and transaction helpers. Concrete
// implementations live in internal/platform/postgres.
package store
