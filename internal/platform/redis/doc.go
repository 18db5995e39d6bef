// Package redis holds the Redis-backed helpers: the client constructor, a
// fixed-window login rate limiter and the token revocation list used by
// logout.
package redis
