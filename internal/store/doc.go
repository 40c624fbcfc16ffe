// Package store defines the persistence interfaces used by the services.
// Implementations live under internal/platform; the services depend only
// on the interfaces and the sentinel errors declared here.
package store
