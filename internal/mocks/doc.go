// Package mocks provides hand-written test doubles for the store and
// auth interfaces.
//
// Each mock keeps a small in-memory default behaviour and exposes
// function fields (CreateFn, GetByIDFn, ...) that override a single
// method when a test needs a specific result or error:
//
//	users := mocks.NewMockUserStore()
//	users.GetByEmailFn = func(ctx context.Context, email string) (*domain.User, error) {
//	    return nil, errors.New("db down")
//	}
package mocks
