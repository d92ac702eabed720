package endpoints

import (
	"errors"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/doodlesbykumbi/substack-in-go/pkg/analytics"
	"github.com/doodlesbykumbi/substack-in-go/pkg/apperr"
	"github.com/doodlesbykumbi/substack-in-go/pkg/audit"
	"github.com/doodlesbykumbi/substack-in-go/pkg/config"
	"github.com/doodlesbykumbi/substack-in-go/pkg/model"
	"github.com/doodlesbykumbi/substack-in-go/pkg/schema"
	"github.com/doodlesbykumbi/substack-in-go/pkg/server"
	"github.com/doodlesbykumbi/substack-in-go/pkg/server/store"
)

const (
	defaultListLimit    = 50
	defaultUpcomingDays = 7
	maxUpcomingDays     = 90
	maxSearchLength     = 100
	maxOffset           = math.MaxInt32
)

const currentUpdatedAtHeader = "X-Current-Updated-At"

// now is the handlers' clock.
var now = func() time.Time { return time.Now().UTC() }

// RegisterSubscriptionsEndpoints registers subscription CRUD, lifecycle and
// reporting endpoints
func RegisterSubscriptionsEndpoints(s *server.Server) {
	authn := s.JWTMiddleware.Middleware
	subs := s.SubscriptionsStore
	categories := s.CategoriesStore
	r := s.Router

	r.Handle("/subscriptions", authn(handleListSubscriptions(subs, s.Config))).Methods("GET")
	r.Handle("/subscriptions", authn(handleCreateSubscription(subs, categories))).Methods("POST")
	r.Handle("/subscriptions/upcoming", authn(handleUpcoming(subs, s.RemindersStore))).Methods("GET")
	r.Handle("/subscriptions/savings", authn(handleSavings(subs))).Methods("GET")
	r.Handle("/subscriptions/monthly-costs", authn(handleMonthlyCosts(subs))).Methods("GET")

	r.Handle("/subscriptions/{id:[0-9]+}", authn(handleGetSubscription(subs))).Methods("GET")
	r.Handle("/subscriptions/{id:[0-9]+}", authn(handleUpdateSubscription(subs, categories))).Methods("PUT")
	r.Handle("/subscriptions/{id:[0-9]+}", authn(handleDeleteSubscription(subs))).Methods("DELETE")
	r.Handle("/subscriptions/{id:[0-9]+}/restore", authn(handleRestoreSubscription(subs))).Methods("POST")
	r.Handle("/subscriptions/{id:[0-9]+}/cancel", authn(handleCancelSubscription(subs))).Methods("POST")
	r.Handle("/subscriptions/{id:[0-9]+}/reactivate", authn(handleReactivateSubscription(subs))).Methods("POST")
	r.Handle("/subscriptions/{id:[0-9]+}/mark-used", authn(handleMarkUsed(subs))).Methods("POST")
	r.Handle("/subscriptions/{id:[0-9]+}/price-history", authn(handlePriceHistory(subs))).Methods("GET")
}

// parseSubscriptionFilter reads the list query parameters.
func parseSubscriptionFilter(r *http.Request, limitMax int) (store.SubscriptionFilter, error) {
	q := r.URL.Query()
	filter := store.SubscriptionFilter{
		Status: store.StatusFilterActive,
		SortBy: store.SortByNextBillingDate,
	}

	if v := q.Get("sort_by"); v != "" {
		switch v {
		case store.SortByNextBillingDate, store.SortByName, store.SortByCost, store.SortByCreatedAt:
			filter.SortBy = v
		default:
			return filter, apperr.Validation(map[string]string{
				"sort_by": "must be one of: next_billing_date name cost created_at",
			})
		}
	}

	switch q.Get("order") {
	case "", "asc":
	case "desc":
		filter.Descending = true
	default:
		return filter, apperr.Validation(map[string]string{"order": "must be one of: asc desc"})
	}

	if v := q.Get("status"); v != "" {
		switch v {
		case store.StatusFilterActive, store.StatusFilterCancelled, store.StatusFilterAll:
			filter.Status = v
		default:
			return filter, apperr.Validation(map[string]string{"status": "must be one of: active cancelled all"})
		}
	}

	if v := q.Get("category"); v != "" {
		valid := false
		for _, c := range model.LegacyCategories {
			if v == c {
				valid = true
				break
			}
		}
		if !valid {
			return filter, apperr.Validation(map[string]string{
				"category": "must be one of: " + strings.Join(model.LegacyCategories, " "),
			})
		}
		filter.Category = &v
	}

	if q.Get("category_id") != "" {
		id, err := queryInt(r, "category_id", 0, 1, maxOffset)
		if err != nil {
			return filter, err
		}
		categoryID := uint(id)
		filter.CategoryID = &categoryID
	}

	if v := q.Get("search"); v != "" {
		if len([]rune(v)) > maxSearchLength {
			return filter, apperr.Validation(map[string]string{"search": "must be at most 100 characters"})
		}
		filter.Search = v
	}

	if v := q.Get("billing_cycle"); v != "" {
		cycle, err := model.BillingCycleString(v)
		if err != nil {
			return filter, apperr.Validation(map[string]string{
				"billing_cycle": "must be one of: " + strings.Join(model.BillingCycleStrings(), " "),
			})
		}
		filter.BillingCycle = &cycle
	}

	var err error
	if filter.CostMin, err = queryFloat(r, "cost_min"); err != nil {
		return filter, err
	}
	if filter.CostMax, err = queryFloat(r, "cost_max"); err != nil {
		return filter, err
	}

	if filter.Limit, err = queryInt(r, "limit", defaultListLimit, 1, limitMax); err != nil {
		return filter, err
	}
	if filter.Offset, err = queryInt(r, "offset", 0, 0, maxOffset); err != nil {
		return filter, err
	}
	return filter, nil
}

func handleListSubscriptions(subs store.SubscriptionsStore, cfg func() *config.SubStackConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := currentIdentity(r).UserID

		filter, err := parseSubscriptionFilter(r, cfg().APIListLimitMax)
		if err != nil {
			respondWithError(w, r, err)
			return
		}

		page, err := subs.ListSubscriptions(r.Context(), userID, filter)
		if err != nil {
			respondWithError(w, r, apperr.Internal(err))
			return
		}

		respondWithJSON(w, http.StatusOK, schema.FromSubscriptionPage(
			page.Items, page.Matching, int64(len(page.Matching)), filter.Offset, filter.Limit,
		))
	}
}

// checkCategory rejects a category id the caller cannot see.
func checkCategory(r *http.Request, categories store.CategoriesStore, userID uint, categoryID *uint) error {
	if categoryID == nil {
		return nil
	}
	_, err := categories.GetCategory(r.Context(), userID, *categoryID)
	if errors.Is(err, store.ErrCategoryNotFound) {
		return apperr.Validation(map[string]string{"category_id": "Category not found"})
	}
	if err != nil {
		return apperr.Internal(err)
	}
	return nil
}

func handleCreateSubscription(subs store.SubscriptionsStore, categories store.CategoriesStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := currentIdentity(r).UserID

		var req schema.SubscriptionCreate
		if err := schema.Bind(r, &req); err != nil {
			respondWithError(w, r, err)
			return
		}
		if err := checkCategory(r, categories, userID, req.CategoryID); err != nil {
			respondWithError(w, r, err)
			return
		}

		sub := req.ToModel(userID)
		if err := subs.CreateSubscription(r.Context(), sub); err != nil {
			logResourceEvent(r, audit.KindSubscription, 0, audit.OperationCreate, err)
			respondWithError(w, r, apperr.Internal(err))
			return
		}
		logResourceEvent(r, audit.KindSubscription, sub.ID, audit.OperationCreate, nil)

		respondWithJSON(w, http.StatusCreated, schema.FromSubscription(sub))
	}
}

func handleUpcoming(subs store.SubscriptionsStore, reminders store.RemindersStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := currentIdentity(r).UserID

		days, err := queryInt(r, "days", defaultUpcomingDays, 1, maxUpcomingDays)
		if err != nil {
			respondWithError(w, r, err)
			return
		}

		current := now()
		today := model.NewDate(current)
		upcoming, err := subs.ListUpcoming(r.Context(), userID, today, today.AddDays(days))
		if err != nil {
			respondWithError(w, r, apperr.Internal(err))
			return
		}
		reminded, err := reminders.RemindedSubscriptions(r.Context(), upcoming)
		if err != nil {
			respondWithError(w, r, apperr.Internal(err))
			return
		}

		respondWithJSON(w, http.StatusOK, schema.FromUpcoming(upcoming, reminded, current))
	}
}

func handleSavings(subs store.SubscriptionsStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := currentIdentity(r).UserID

		cancelled, err := subs.ListByScope(r.Context(), userID, store.ScopeCancelledPaid)
		if err != nil {
			respondWithError(w, r, apperr.Internal(err))
			return
		}

		respondWithJSON(w, http.StatusOK, analytics.Savings(cancelled, now()))
	}
}

func handleMonthlyCosts(subs store.SubscriptionsStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := currentIdentity(r).UserID
		current := now()

		month := analytics.MonthOf(current)
		if v := r.URL.Query().Get("month"); v != "" {
			parsed, err := analytics.ParseMonth(v)
			if err != nil {
				respondWithError(w, r, apperr.Validation(map[string]string{"month": err.Error()}))
				return
			}
			month = parsed
		}
		includeFreeTrials, err := queryBool(r, "include_free_trials", true)
		if err != nil {
			respondWithError(w, r, err)
			return
		}

		all, err := subs.ListByScope(r.Context(), userID, store.ScopeAll)
		if err != nil {
			respondWithError(w, r, apperr.Internal(err))
			return
		}

		respondWithJSON(w, http.StatusOK, analytics.MonthlyCosts(all, month, includeFreeTrials, current))
	}
}

// loadSubscription fetches the {id} subscription of the caller.
func loadSubscription(r *http.Request, subs store.SubscriptionsStore, includeDeleted bool) (*model.Subscription, error) {
	id, err := pathID(r)
	if err != nil {
		return nil, err
	}
	sub, err := subs.GetSubscription(r.Context(), currentIdentity(r).UserID, id, includeDeleted)
	if err != nil {
		return nil, storeError(err)
	}
	return sub, nil
}

func handleGetSubscription(subs store.SubscriptionsStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sub, err := loadSubscription(r, subs, false)
		if err != nil {
			respondWithError(w, r, err)
			return
		}
		respondWithJSON(w, http.StatusOK, schema.FromSubscription(sub))
	}
}

// unmodifiedSinceLayouts are the timestamp forms accepted in
// If-Unmodified-Since. Values without a zone are UTC.
var unmodifiedSinceLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	http.TimeFormat,
}

func parseUnmodifiedSince(v string) (time.Time, bool) {
	for _, layout := range unmodifiedSinceLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func handleUpdateSubscription(subs store.SubscriptionsStore, categories store.CategoriesStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := currentIdentity(r).UserID

		var req schema.SubscriptionUpdate
		if err := schema.Bind(r, &req); err != nil {
			respondWithError(w, r, err)
			return
		}

		sub, err := loadSubscription(r, subs, false)
		if err != nil {
			if apperr.From(err).Status == http.StatusNotFound {
				err = apperr.NotFound("Subscription not found or was deleted")
			}
			respondWithError(w, r, err)
			return
		}

		if v := r.Header.Get("If-Unmodified-Since"); v != "" {
			if since, ok := parseUnmodifiedSince(v); ok && sub.UpdatedAt.After(since) {
				w.Header().Set(currentUpdatedAtHeader, sub.UpdatedAt.UTC().Format(time.RFC3339Nano))
				respondWithError(w, r, apperr.Conflict("Subscription was modified by another session"))
				return
			}
		}

		if req.Has("category_id") {
			if err := checkCategory(r, categories, userID, req.CategoryID); err != nil {
				respondWithError(w, r, err)
				return
			}
		}

		before := *sub
		req.ApplyTo(sub)
		if err := subs.UpdateSubscription(r.Context(), sub, before.PriceChanged(sub), now()); err != nil {
			logResourceEvent(r, audit.KindSubscription, sub.ID, audit.OperationUpdate, err)
			respondWithError(w, r, apperr.Internal(err))
			return
		}
		logResourceEvent(r, audit.KindSubscription, sub.ID, audit.OperationUpdate, nil)

		respondWithJSON(w, http.StatusOK, schema.FromSubscription(sub))
	}
}

func handleDeleteSubscription(subs store.SubscriptionsStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sub, err := loadSubscription(r, subs, false)
		if err != nil {
			respondWithError(w, r, err)
			return
		}

		deletedAt := now()
		sub.DeletedAt = &deletedAt
		if err := subs.SaveSubscription(r.Context(), sub); err != nil {
			logResourceEvent(r, audit.KindSubscription, sub.ID, audit.OperationDelete, err)
			respondWithError(w, r, apperr.Internal(err))
			return
		}
		logResourceEvent(r, audit.KindSubscription, sub.ID, audit.OperationDelete, nil)

		w.WriteHeader(http.StatusNoContent)
	}
}

func handleRestoreSubscription(subs store.SubscriptionsStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sub, err := loadSubscription(r, subs, true)
		if err != nil {
			respondWithError(w, r, err)
			return
		}
		if !sub.IsDeleted() {
			respondWithError(w, r, apperr.BadRequest("Subscription is not deleted"))
			return
		}

		sub.DeletedAt = nil
		if err := subs.SaveSubscription(r.Context(), sub); err != nil {
			logResourceEvent(r, audit.KindSubscription, sub.ID, audit.OperationRestore, err)
			respondWithError(w, r, apperr.Internal(err))
			return
		}
		logResourceEvent(r, audit.KindSubscription, sub.ID, audit.OperationRestore, nil)

		respondWithJSON(w, http.StatusOK, schema.FromSubscription(sub))
	}
}

func handleCancelSubscription(subs store.SubscriptionsStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req schema.CancellationRequest
		if err := schema.BindOptional(r, &req); err != nil {
			respondWithError(w, r, err)
			return
		}

		sub, err := loadSubscription(r, subs, false)
		if err != nil {
			respondWithError(w, r, err)
			return
		}
		if sub.IsCancelled() {
			respondWithError(w, r, apperr.BadRequest("Subscription is already cancelled"))
			return
		}

		current := now()
		sub.Cancel(current, req.Reason, req.EffectiveDate)
		if err := subs.SaveSubscription(r.Context(), sub); err != nil {
			logResourceEvent(r, audit.KindSubscription, sub.ID, audit.OperationCancel, err)
			respondWithError(w, r, apperr.Internal(err))
			return
		}
		logResourceEvent(r, audit.KindSubscription, sub.ID, audit.OperationCancel, nil)

		savings := analytics.EstimateSavings(sub, current)
		respondWithJSON(w, http.StatusOK, schema.CancellationResponse{
			SubscriptionResponse: schema.FromSubscription(sub),
			EstimatedSavings:     &savings,
		})
	}
}

func handleReactivateSubscription(subs store.SubscriptionsStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req schema.ReactivateRequest
		if err := schema.BindOptional(r, &req); err != nil {
			respondWithError(w, r, err)
			return
		}

		sub, err := loadSubscription(r, subs, false)
		if err != nil {
			respondWithError(w, r, err)
			return
		}
		if !sub.IsCancelled() {
			respondWithError(w, r, apperr.BadRequest("Subscription is not cancelled"))
			return
		}

		sub.Reactivate(req.NextBillingDate)
		if err := subs.SaveSubscription(r.Context(), sub); err != nil {
			logResourceEvent(r, audit.KindSubscription, sub.ID, audit.OperationReactivate, err)
			respondWithError(w, r, apperr.Internal(err))
			return
		}
		logResourceEvent(r, audit.KindSubscription, sub.ID, audit.OperationReactivate, nil)

		respondWithJSON(w, http.StatusOK, schema.FromSubscription(sub))
	}
}

func handleMarkUsed(subs store.SubscriptionsStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sub, err := loadSubscription(r, subs, false)
		if err != nil {
			respondWithError(w, r, err)
			return
		}

		usedAt := now()
		sub.LastUsedAt = &usedAt
		if err := subs.SaveSubscription(r.Context(), sub); err != nil {
			respondWithError(w, r, apperr.Internal(err))
			return
		}

		respondWithJSON(w, http.StatusOK, schema.FromSubscription(sub))
	}
}

func handlePriceHistory(subs store.SubscriptionsStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sub, err := loadSubscription(r, subs, false)
		if err != nil {
			respondWithError(w, r, err)
			return
		}

		rows, err := subs.PriceHistory(r.Context(), sub.ID)
		if err != nil {
			respondWithError(w, r, apperr.Internal(err))
			return
		}

		respondWithJSON(w, http.StatusOK, schema.FromPriceHistory(sub.ID, rows))
	}
}
