// Package auth issues and validates signed access tokens and hashes
// passwords. Token revocation is pluggable through TokenRevoker.
package auth
