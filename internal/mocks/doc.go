// Package mocks provides centralized mock implementations for testing.
//
// Each mock has a function field per interface method. A nil field falls
// back to the mock's default values, so a test only wires the calls it
// cares about:
//
//	tokens := &mocks.MockJWTService{
//	    ValidateTokenFn: func(ctx context.Context, token string) (*auth.Claims, error) {
//	        return &auth.Claims{UserID: 1, Role: domain.RoleUser}, nil
//	    },
//	}
package mocks
