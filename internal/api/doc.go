// Package api exposes QuickRecap over JSON/HTTP. Handlers decode and
// validate requests, call the services, and map domain values to
// response types through explicit mapper functions. Errors are
// translated to status codes and client-safe messages in errors.go.
package api
