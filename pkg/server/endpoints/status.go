package endpoints

import (
	"encoding/json"
	"html/template"
	"net/http"
	"os"
	"strings"

	"github.com/doodlesbykumbi/substack-in-go/pkg/apperr"
	"github.com/doodlesbykumbi/substack-in-go/pkg/server"
	"github.com/doodlesbykumbi/substack-in-go/pkg/server/store"
)

// StatusResponse represents the JSON form of the status page
type StatusResponse struct {
	Service string `json:"service"`
	Version string `json:"version"`
}

// HealthResponse represents the response from /health
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

// RegisterStatusEndpoints registers the status, health and metrics endpoints
func RegisterStatusEndpoints(s *server.Server) {
	// GET / - Status page (no auth required)
	s.Router.HandleFunc("/", handleStatus()).Methods("GET")

	// GET /health - Database connectivity (no auth required)
	s.Router.HandleFunc("/health", handleHealth(s.HealthStore)).Methods("GET")

	s.Router.Handle("/metrics", s.Metrics.Handler()).Methods("GET")
}

func version() string {
	if v := os.Getenv("SUBSTACK_VERSION"); v != "" {
		return v
	}
	return "0.1.0"
}

var statusPage = template.Must(template.New("status").Parse(`<!DOCTYPE html>
<html>
  <head>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width">
    <title>SubStack Status</title>
  </head>
  <body>
    <main>
      <h1>Status</h1>
      <p class="status-text">Your SubStack server is running!</p>
      <dl>
        <dt>Details:</dt>
        <dd>Version {{.Version}}</dd>
        <dt>More Info:</dt>
        <dd>
          <ul>
            <li><a href="/docs">API documentation</a></li>
            <li><a href="/openapi.yaml">OpenAPI document</a></li>
            <li><a href="/health">Health</a></li>
          </ul>
        </dd>
      </dl>
    </main>
  </body>
</html>
`))

func handleStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := StatusResponse{Service: "substack", Version: version()}

		// Check if JSON is requested via Accept header or format query param
		accept := r.Header.Get("Accept")
		format := r.URL.Query().Get("format")
		if format == "json" || strings.Contains(accept, "application/json") {
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(status)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_ = statusPage.Execute(w, status)
	}
}

func handleHealth(healthStore store.HealthStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := healthStore.CheckConnectivity(r.Context()); err != nil {
			respondWithError(w, r, apperr.Unavailable("database connectivity check failed", err))
			return
		}
		respondWithJSON(w, http.StatusOK, HealthResponse{Status: "ok", Database: "connected"})
	}
}
