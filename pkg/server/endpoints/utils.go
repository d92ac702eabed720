package endpoints

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/doodlesbykumbi/substack-in-go/pkg/apperr"
	"github.com/doodlesbykumbi/substack-in-go/pkg/audit"
	"github.com/doodlesbykumbi/substack-in-go/pkg/identity"
	"github.com/doodlesbykumbi/substack-in-go/pkg/server/middleware"
	"github.com/doodlesbykumbi/substack-in-go/pkg/server/store"
)

func respondWithError(w http.ResponseWriter, r *http.Request, err error) {
	e := apperr.From(err)
	requestID := middleware.RequestIDFrom(r.Context())
	if e.Status >= http.StatusInternalServerError {
		log.WithFields(log.Fields{
			"request_id": requestID,
			"method":     r.Method,
			"path":       r.URL.Path,
		}).WithError(e.Err).Error(e.Message)
	}
	apperr.Write(w, requestID, e)
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, _ := json.Marshal(payload)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

// storeError maps store sentinels to API errors.
func storeError(err error) error {
	switch {
	case errors.Is(err, store.ErrSubscriptionNotFound):
		return apperr.NotFound("Subscription not found")
	case errors.Is(err, store.ErrCategoryNotFound):
		return apperr.NotFound("Category not found")
	case errors.Is(err, store.ErrUserNotFound):
		return apperr.NotFound("User not found")
	case errors.Is(err, store.ErrEmailTaken):
		return apperr.Conflict("Email already registered")
	}
	return apperr.Internal(err)
}

// currentIdentity returns the caller set by the JWT middleware.
func currentIdentity(r *http.Request) *identity.Identity {
	id, ok := identity.Get(r.Context())
	if !ok {
		// Routes that call this are always behind the JWT middleware.
		panic("endpoints: request has no identity")
	}
	return id
}

// clientIP is the caller address recorded in audit events.
func clientIP(r *http.Request) string {
	ip := identity.ClientIP(r.RemoteAddr, r.Header.Get("X-Forwarded-For"))
	if ip == nil {
		return ""
	}
	return ip.String()
}

// logResourceEvent audits a change by the caller; err nil means success.
func logResourceEvent(r *http.Request, kind string, resourceID uint, operation string, err error) {
	event := audit.ResourceEvent{
		UserID:     currentIdentity(r).UserID,
		ClientIP:   clientIP(r),
		Kind:       kind,
		ResourceID: resourceID,
		Operation:  operation,
		Success:    err == nil,
	}
	if err != nil {
		event.ErrorMessage = err.Error()
	}
	audit.Log(event)
}

// pathID parses the {id} route variable.
func pathID(r *http.Request) (uint, error) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, apperr.Validation(map[string]string{"id": "must be a positive integer"})
	}
	return uint(id), nil
}

// queryInt reads an integer query parameter, applying def when absent and
// rejecting values outside [min, max].
func queryInt(r *http.Request, name string, def, min, max int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperr.Validation(map[string]string{name: "must be an integer"})
	}
	if v < min || v > max {
		return 0, apperr.Validation(map[string]string{
			name: "must be between " + strconv.Itoa(min) + " and " + strconv.Itoa(max),
		})
	}
	return v, nil
}

// queryFloat reads an optional non-negative float query parameter.
func queryFloat(r *http.Request, name string) (*float64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, apperr.Validation(map[string]string{name: "must be a number"})
	}
	if v < 0 {
		return nil, apperr.Validation(map[string]string{name: "must be greater than or equal to 0"})
	}
	return &v, nil
}

// queryBool reads an optional boolean query parameter.
func queryBool(r *http.Request, name string, def bool) (bool, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, apperr.Validation(map[string]string{name: "must be a boolean"})
	}
	return v, nil
}
