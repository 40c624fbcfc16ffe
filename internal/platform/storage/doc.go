// Package storage keeps uploaded file content in a gocloud.dev blob
// bucket. Production uses a fileblob bucket rooted at the configured
// upload directory; tests use memblob.
package storage
