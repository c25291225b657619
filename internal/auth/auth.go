package auth

import (
	"context"

	"github.com/curioswitch/go-usegcp/middleware/firebaseauth"
)

// User is the identity of the authenticated caller, extracted once from
// the verified Firebase token so handlers receive an explicit session
// value instead of reaching into ambient token state.
type User struct {
	UID         string
	DisplayName string
	Email       string
	PhotoURL    string
}

// SignedIn reports whether the request carried a verified identity.
func (u User) SignedIn() bool {
	return u.UID != ""
}

// UserFromContext returns the caller's identity, or a zero User for an
// unauthenticated request.
func UserFromContext(ctx context.Context) User {
	tok := firebaseauth.TokenFromContext(ctx)
	if tok == nil {
		return User{}
	}

	user := User{UID: tok.UID}
	if name, ok := tok.Claims["name"].(string); ok {
		user.DisplayName = name
	}
	if email, ok := tok.Claims["email"].(string); ok {
		user.Email = email
	}
	if picture, ok := tok.Claims["picture"].(string); ok {
		user.PhotoURL = picture
	}
	return user
}
