package endpoints

import (
	"errors"
	"net/http"

	"github.com/doodlesbykumbi/substack-in-go/pkg/apperr"
	"github.com/doodlesbykumbi/substack-in-go/pkg/audit"
	"github.com/doodlesbykumbi/substack-in-go/pkg/auth"
	"github.com/doodlesbykumbi/substack-in-go/pkg/model"
	"github.com/doodlesbykumbi/substack-in-go/pkg/schema"
	"github.com/doodlesbykumbi/substack-in-go/pkg/server"
	"github.com/doodlesbykumbi/substack-in-go/pkg/server/store"
)

const invalidCredentials = "Invalid email or password"

// RegisterAuthEndpoints registers the public register and login endpoints
func RegisterAuthEndpoints(s *server.Server) {
	s.Router.HandleFunc("/auth/register", handleRegister(s.UsersStore, s.Tokens)).Methods("POST")
	s.Router.HandleFunc("/auth/login", handleLogin(s.UsersStore, s.Tokens)).Methods("POST")
}

func handleRegister(users store.UsersStore, tokens *auth.Tokens) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		remoteIP := clientIP(r)

		var req schema.UserCreate
		if err := schema.Bind(r, &req); err != nil {
			respondWithError(w, r, err)
			return
		}

		hashed, err := auth.HashPassword(req.Password)
		if err != nil {
			respondWithError(w, r, apperr.Internal(err))
			return
		}

		user := model.NewUser(req.Email, hashed)
		if err := users.CreateUser(r.Context(), user); err != nil {
			audit.Log(audit.RegisterEvent{
				Email:        req.Email,
				ClientIP:     remoteIP,
				Success:      false,
				ErrorMessage: err.Error(),
			})
			respondWithError(w, r, storeError(err))
			return
		}

		token, _, err := tokens.Issue(user.ID)
		if err != nil {
			respondWithError(w, r, apperr.Internal(err))
			return
		}

		audit.Log(audit.RegisterEvent{
			Email:    user.Email,
			UserID:   user.ID,
			ClientIP: remoteIP,
			Success:  true,
		})

		respondWithJSON(w, http.StatusCreated, schema.AuthResponse{
			User:        schema.FromUser(user),
			AccessToken: token,
			TokenType:   schema.TokenTypeBearer,
		})
	}
}

func handleLogin(users store.UsersStore, tokens *auth.Tokens) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		remoteIP := clientIP(r)

		var req schema.LoginRequest
		if err := schema.Bind(r, &req); err != nil {
			respondWithError(w, r, err)
			return
		}

		fail := func(reason string) {
			audit.Log(audit.AuthenticateEvent{
				Email:        req.Email,
				ClientIP:     remoteIP,
				Success:      false,
				ErrorMessage: reason,
			})
			respondWithError(w, r, apperr.Unauthorized(invalidCredentials))
		}

		user, err := users.GetUserByEmail(r.Context(), req.Email)
		if errors.Is(err, store.ErrUserNotFound) {
			fail("unknown email")
			return
		}
		if err != nil {
			respondWithError(w, r, apperr.Internal(err))
			return
		}

		ok, err := auth.CheckPassword(user.HashedPassword, req.Password)
		if err != nil {
			respondWithError(w, r, apperr.Internal(err))
			return
		}
		if !ok {
			fail("wrong password")
			return
		}

		token, _, err := tokens.Issue(user.ID)
		if err != nil {
			respondWithError(w, r, apperr.Internal(err))
			return
		}

		audit.Log(audit.AuthenticateEvent{
			Email:    user.Email,
			ClientIP: remoteIP,
			Success:  true,
		})

		respondWithJSON(w, http.StatusOK, schema.AuthResponse{
			User:        schema.FromUser(user),
			AccessToken: token,
			TokenType:   schema.TokenTypeBearer,
		})
	}
}
