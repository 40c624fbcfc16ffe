// Package redis holds the Redis-backed refresh token revocation list.
package redis
