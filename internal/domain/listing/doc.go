// Package listing holds the pure logic behind tabular list views: typed
// comparators, case-insensitive filtering, the persisted sort configuration,
// bulk selection and row action menu placement.
//
// Nothing here performs I/O except through the Store interface, and none of
// the stateful types are safe for concurrent use; a View is meant to live for
// the duration of a single request.
package listing
