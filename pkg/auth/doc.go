// Package auth hashes passwords and issues the bearer tokens clients send
// in the Authorization header.
//
// Tokens are HMAC-signed JWTs whose subject is the user id. The signing
// algorithm and lifetime come from configuration:
//
//	tokens, err := auth.NewTokens(cfg.JWTSecret, cfg.JWTAlgorithm, cfg.AccessTokenTTL())
//	token, expiresAt, err := tokens.Issue(user.ID)
//	claims, err := tokens.Verify(token)
package auth
