// Package service implements the application rules for users, categories,
// recipes, ingredients and comments: validation, uniqueness checks,
// ownership and role checks, and transactional batch operations. Services
// depend on the store interfaces only.
package service
