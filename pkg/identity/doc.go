// Package identity carries the authenticated caller of a request.
//
// The bearer token middleware verifies the access token, loads the user it
// names and stores an Identity in the request context:
//
//	id := identity.FromClaims(claims).
//		WithUser(user).
//		WithRemoteIP(clientIP)
//	ctx = identity.Set(ctx, id)
//
// Handlers read it back and scope every query to id.UserID:
//
//	id, ok := identity.Get(r.Context())
package identity
