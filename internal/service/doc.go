// Package service implements the QuickRecap use cases on top of the store
// interfaces: profiles, activities with per-caller favourite flags,
// favorites, ratings, play history and its activity statistics, error
// reports and file uploads.
//
// Services are interfaces with unexported implementations. Constructors
// reject nil stores and default a nil logger to slog.Default. Writes that
// touch more than one table run through store.RunInTransaction when a
// database handle is supplied; with a nil handle (unit tests) they run
// directly against the stores.
//
// Authentication lives in the auth subpackage.
package service
