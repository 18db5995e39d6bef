// Package domain contains the core entities of the recipe API (users,
// categories, recipes, ingredients, comments) together with their field
// validation rules, the acting-identity model used for authorization, and
// pagination arithmetic. It has no knowledge of storage or transport.
package domain
