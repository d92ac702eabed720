package endpoints

import (
	"net/http"

	"github.com/doodlesbykumbi/substack-in-go/pkg/apperr"
	"github.com/doodlesbykumbi/substack-in-go/pkg/schema"
	"github.com/doodlesbykumbi/substack-in-go/pkg/server"
	"github.com/doodlesbykumbi/substack-in-go/pkg/server/store"
)

// RegisterUsersEndpoints registers the profile endpoints of the caller
func RegisterUsersEndpoints(s *server.Server) {
	authn := s.JWTMiddleware.Middleware

	s.Router.Handle("/users/me", authn(handleGetProfile())).Methods("GET")
	s.Router.Handle("/users/me/notifications", authn(handleUpdateNotifications(s.UsersStore))).Methods("PATCH")
}

func handleGetProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondWithJSON(w, http.StatusOK, schema.FromUserProfile(currentIdentity(r).User))
	}
}

func handleUpdateNotifications(users store.UsersStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req schema.NotificationPreferencesUpdate
		if err := schema.Bind(r, &req); err != nil {
			respondWithError(w, r, err)
			return
		}

		user := *currentIdentity(r).User
		req.ApplyTo(&user)
		if err := users.UpdateUser(r.Context(), &user); err != nil {
			respondWithError(w, r, apperr.Internal(err))
			return
		}

		respondWithJSON(w, http.StatusOK, schema.FromNotificationPreferences(&user))
	}
}
