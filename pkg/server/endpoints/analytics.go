package endpoints

import (
	"net/http"

	"github.com/doodlesbykumbi/substack-in-go/pkg/analytics"
	"github.com/doodlesbykumbi/substack-in-go/pkg/apperr"
	"github.com/doodlesbykumbi/substack-in-go/pkg/config"
	"github.com/doodlesbykumbi/substack-in-go/pkg/server"
	"github.com/doodlesbykumbi/substack-in-go/pkg/server/store"
)

const (
	maxTrendMonths        = 12
	maxTopLimit           = 20
	maxForgottenThreshold = 365
)

// RegisterAnalyticsEndpoints registers the spending analytics endpoints
func RegisterAnalyticsEndpoints(s *server.Server) {
	authn := s.JWTMiddleware.Middleware
	subs := s.SubscriptionsStore
	r := s.Router

	r.Handle("/subscriptions/analytics", authn(handleCombinedAnalytics(subs, s.Config))).Methods("GET")
	r.Handle("/subscriptions/analytics/trends", authn(handleTrends(subs))).Methods("GET")
	r.Handle("/subscriptions/analytics/top", authn(handleTop(subs))).Methods("GET")
	r.Handle("/subscriptions/analytics/forgotten", authn(handleForgotten(subs, s.Config))).Methods("GET")
	r.Handle("/subscriptions/analytics/savings-suggestions", authn(handleSavingsSuggestions(subs))).Methods("GET")
}

func handleCombinedAnalytics(subs store.SubscriptionsStore, cfg func() *config.SubStackConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		all, err := subs.ListByScope(r.Context(), currentIdentity(r).UserID, store.ScopeAll)
		if err != nil {
			respondWithError(w, r, apperr.Internal(err))
			return
		}
		respondWithJSON(w, http.StatusOK, analytics.Combined(all, cfg().ForgottenThresholdDays, now()))
	}
}

func handleTrends(subs store.SubscriptionsStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		months, err := queryInt(r, "months", analytics.DefaultTrendMonths, 1, maxTrendMonths)
		if err != nil {
			respondWithError(w, r, err)
			return
		}
		all, err := subs.ListByScope(r.Context(), currentIdentity(r).UserID, store.ScopeAll)
		if err != nil {
			respondWithError(w, r, apperr.Internal(err))
			return
		}
		respondWithJSON(w, http.StatusOK, analytics.SpendingTrends(all, months, now()))
	}
}

func handleTop(subs store.SubscriptionsStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := queryInt(r, "limit", analytics.DefaultTopLimit, 1, maxTopLimit)
		if err != nil {
			respondWithError(w, r, err)
			return
		}
		active, err := subs.ListByScope(r.Context(), currentIdentity(r).UserID, store.ScopeActive)
		if err != nil {
			respondWithError(w, r, apperr.Internal(err))
			return
		}
		respondWithJSON(w, http.StatusOK, analytics.Top(active, limit))
	}
}

func handleForgotten(subs store.SubscriptionsStore, cfg func() *config.SubStackConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		threshold, err := queryInt(r, "threshold_days", cfg().ForgottenThresholdDays, 1, maxForgottenThreshold)
		if err != nil {
			respondWithError(w, r, err)
			return
		}
		active, err := subs.ListByScope(r.Context(), currentIdentity(r).UserID, store.ScopeActive)
		if err != nil {
			respondWithError(w, r, apperr.Internal(err))
			return
		}
		respondWithJSON(w, http.StatusOK, analytics.Forgotten(active, threshold, now()))
	}
}

func handleSavingsSuggestions(subs store.SubscriptionsStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		live, err := subs.ListByScope(r.Context(), currentIdentity(r).UserID, store.ScopeLive)
		if err != nil {
			respondWithError(w, r, apperr.Internal(err))
			return
		}
		respondWithJSON(w, http.StatusOK, analytics.Suggestions(live, now()))
	}
}
