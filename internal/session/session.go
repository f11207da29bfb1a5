// Package session builds the explicit session object every view
// receives. Authentication state is never read from ambient storage;
// the middleware resolves the Bearer token once per request and hands
// the result down through the request context.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// State is where a session sits in its lifecycle.
type State string

const (
	StateAnonymous     State = "anonymous"
	StateAuthenticated State = "authenticated"
	StateExpired       State = "expired"
)

// Session describes the caller for the duration of one request.
type Session struct {
	State     State
	UserID    string
	Email     string
	ExpiresAt time.Time
}

// Authenticated reports whether the session carries a live identity.
func (s Session) Authenticated() bool {
	return s.State == StateAuthenticated
}

// Anonymous is the session used when no token is presented.
var Anonymous = Session{State: StateAnonymous}

type claims struct {
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// FromToken verifies a Bearer token from the managed auth service and
// maps it to a session. An expired token yields an expired session
// with its identity intact, so views can prompt re-login by name;
// any other verification failure is an error and the caller should
// treat the request as anonymous.
func FromToken(tokenString string, secret []byte) (Session, error) {
	var c claims
	token, err := jwt.ParseWithClaims(tokenString, &c, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			s := Session{State: StateExpired, UserID: c.Subject, Email: c.Email}
			if c.ExpiresAt != nil {
				s.ExpiresAt = c.ExpiresAt.Time
			}
			return s, nil
		}
		return Anonymous, fmt.Errorf("parsing token: %w", err)
	}
	if !token.Valid {
		return Anonymous, errors.New("invalid token")
	}

	s := Session{
		State:  StateAuthenticated,
		UserID: c.Subject,
		Email:  c.Email,
	}
	if c.ExpiresAt != nil {
		s.ExpiresAt = c.ExpiresAt.Time
	}
	return s, nil
}

type contextKey struct{}

// NewContext attaches a session to the request context.
func NewContext(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, contextKey{}, s)
}

// FromContext returns the request's session, or the anonymous session
// when the middleware did not run.
func FromContext(ctx context.Context) Session {
	if s, ok := ctx.Value(contextKey{}).(Session); ok {
		return s
	}
	return Anonymous
}
