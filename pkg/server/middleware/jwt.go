package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/doodlesbykumbi/substack-in-go/pkg/apperr"
	"github.com/doodlesbykumbi/substack-in-go/pkg/auth"
	"github.com/doodlesbykumbi/substack-in-go/pkg/identity"
	"github.com/doodlesbykumbi/substack-in-go/pkg/server/store"
)

const (
	msgNotAuthenticated   = "Not authenticated"
	msgInvalidCredentials = "Could not validate credentials"
)

// JWTAuthenticator is middleware that validates bearer tokens
type JWTAuthenticator struct {
	Tokens *auth.Tokens
	Users  store.UsersStore
}

// NewJWTAuthenticator creates a new JWT authenticator middleware
func NewJWTAuthenticator(tokens *auth.Tokens, users store.UsersStore) *JWTAuthenticator {
	return &JWTAuthenticator{Tokens: tokens, Users: users}
}

// bearerToken extracts the token from "Authorization: Bearer <token>".
func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func unauthorized(w http.ResponseWriter, r *http.Request, msg string) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	apperr.Write(w, RequestIDFrom(r.Context()), apperr.Unauthorized(msg))
}

// Middleware returns an HTTP middleware that validates bearer tokens and
// stores the caller's identity in the request context
func (j *JWTAuthenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			unauthorized(w, r, msgNotAuthenticated)
			return
		}

		token, ok := bearerToken(authHeader)
		if !ok {
			unauthorized(w, r, msgInvalidCredentials)
			return
		}

		claims, err := j.Tokens.Verify(token)
		if err != nil {
			logrus.WithError(err).WithField("request_id", RequestIDFrom(r.Context())).Debug("rejected bearer token")
			unauthorized(w, r, msgInvalidCredentials)
			return
		}

		user, err := j.Users.GetUser(r.Context(), claims.UserID)
		if errors.Is(err, store.ErrUserNotFound) {
			unauthorized(w, r, msgInvalidCredentials)
			return
		}
		if err != nil {
			apperr.Write(w, RequestIDFrom(r.Context()), apperr.Internal(err))
			return
		}

		id := identity.FromClaims(claims).
			WithUser(user).
			WithRemoteIP(identity.ClientIP(r.RemoteAddr, r.Header.Get("X-Forwarded-For")))
		next.ServeHTTP(w, r.WithContext(identity.Set(r.Context(), id)))
	})
}
