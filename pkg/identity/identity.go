package identity

import (
	"context"
	"net"
	"strings"
	"time"

	"github.com/doodlesbykumbi/substack-in-go/pkg/auth"
	"github.com/doodlesbykumbi/substack-in-go/pkg/model"
)

// ContextKey is a type for context keys to avoid collisions.
type ContextKey string

const (
	// Key is the context key for Identity.
	Key ContextKey = "identity"
)

// Identity is the authenticated caller of a request.
type Identity struct {
	// Token claims
	UserID    uint
	IssuedAt  time.Time
	ExpiresAt time.Time

	// Request context
	RemoteIP net.IP

	// The user the token was issued to, loaded at authentication time
	User *model.User
}

// FromClaims creates an Identity from verified token claims.
func FromClaims(claims *auth.Claims) *Identity {
	return &Identity{
		UserID:    claims.UserID,
		IssuedAt:  claims.IssuedAt,
		ExpiresAt: claims.ExpiresAt,
	}
}

// WithUser attaches the loaded user.
func (i *Identity) WithUser(user *model.User) *Identity {
	i.User = user
	return i
}

// WithRemoteIP sets the remote IP address.
func (i *Identity) WithRemoteIP(ip net.IP) *Identity {
	i.RemoteIP = ip
	return i
}

// Email returns the user's email, or "" when no user is attached.
func (i *Identity) Email() string {
	if i.User == nil {
		return ""
	}
	return i.User.Email
}

// ClientIP extracts the caller address from X-Forwarded-For or the
// connection's remote address.
func ClientIP(remoteAddr, forwardedFor string) net.IP {
	if forwardedFor != "" {
		first := strings.TrimSpace(strings.Split(forwardedFor, ",")[0])
		if ip := net.ParseIP(first); ip != nil {
			return ip
		}
	}
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		host = remoteAddr
	}
	return net.ParseIP(host)
}

// Get retrieves Identity from context.
func Get(ctx context.Context) (*Identity, bool) {
	id, ok := ctx.Value(Key).(*Identity)
	return id, ok
}

// Set stores Identity in context.
func Set(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, Key, id)
}
