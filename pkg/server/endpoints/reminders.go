package endpoints

import (
	"net/http"

	"github.com/doodlesbykumbi/substack-in-go/pkg/apperr"
	"github.com/doodlesbykumbi/substack-in-go/pkg/config"
	"github.com/doodlesbykumbi/substack-in-go/pkg/schema"
	"github.com/doodlesbykumbi/substack-in-go/pkg/server"
	"github.com/doodlesbykumbi/substack-in-go/pkg/server/store"
)

// RegisterRemindersEndpoints registers the reminder history endpoint
func RegisterRemindersEndpoints(s *server.Server) {
	s.Router.Handle("/reminders", s.JWTMiddleware.Middleware(handleListReminders(s.RemindersStore, s.Config))).Methods("GET")
}

func handleListReminders(reminders store.RemindersStore, cfg func() *config.SubStackConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := queryInt(r, "limit", defaultListLimit, 1, cfg().APIListLimitMax)
		if err != nil {
			respondWithError(w, r, err)
			return
		}
		offset, err := queryInt(r, "offset", 0, 0, maxOffset)
		if err != nil {
			respondWithError(w, r, err)
			return
		}

		logs, total, err := reminders.ListReminderLogs(r.Context(), currentIdentity(r).UserID, limit, offset)
		if err != nil {
			respondWithError(w, r, apperr.Internal(err))
			return
		}

		respondWithJSON(w, http.StatusOK, schema.FromReminderLogs(logs, total, offset, limit))
	}
}
