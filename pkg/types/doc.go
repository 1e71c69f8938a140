// Package types defines the shared model of the unitto core: the separator
// setting, units and unit groups, persisted unit state and currency rates,
// the Store and Table interfaces of the persistence collaborator, and the
// standard error values.
package types
