package auth

import "context"

// Checker tells whether a session token belongs to a logged in user.
type Checker interface {
	IsLogged(ctx context.Context, token string) (bool, error)
}

var _ Checker = (*LoginChecker)(nil)
var _ Checker = (*LoginTestChecker)(nil)
