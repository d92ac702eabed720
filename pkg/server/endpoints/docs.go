package endpoints

import (
	_ "embed"
	"encoding/json"
	"net/http"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/doodlesbykumbi/substack-in-go/pkg/apperr"
	"github.com/doodlesbykumbi/substack-in-go/pkg/server"
)

//go:embed openapi.yaml
var openAPIYAML []byte

var (
	openAPIJSONOnce sync.Once
	openAPIJSON     []byte
	openAPIJSONErr  error
)

// openAPIDocumentJSON converts the embedded YAML document to JSON once.
func openAPIDocumentJSON() ([]byte, error) {
	openAPIJSONOnce.Do(func() {
		var doc map[string]interface{}
		if err := yaml.Unmarshal(openAPIYAML, &doc); err != nil {
			openAPIJSONErr = err
			return
		}
		openAPIJSON, openAPIJSONErr = json.Marshal(doc)
	})
	return openAPIJSON, openAPIJSONErr
}

// RegisterDocsEndpoints serves the OpenAPI document and the interactive docs page
func RegisterDocsEndpoints(s *server.Server) {
	s.Router.HandleFunc("/openapi.yaml", handleOpenAPIYAML()).Methods("GET")
	s.Router.HandleFunc("/openapi.json", handleOpenAPIJSON()).Methods("GET")
	s.Router.HandleFunc("/docs", handleDocs()).Methods("GET")
}

func handleOpenAPIYAML() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		_, _ = w.Write(openAPIYAML)
	}
}

func handleOpenAPIJSON() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doc, err := openAPIDocumentJSON()
		if err != nil {
			respondWithError(w, r, apperr.Internal(err))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(doc)
	}
}

const docsPage = `<!DOCTYPE html>
<html>
  <head>
    <meta charset="utf-8">
    <title>SubStack API</title>
    <link rel="stylesheet" href="https://cdn.jsdelivr.net/npm/swagger-ui-dist@5/swagger-ui.css">
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://cdn.jsdelivr.net/npm/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({url: "/openapi.json", dom_id: "#swagger-ui"});
    </script>
  </body>
</html>
`

func handleDocs() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(docsPage))
	}
}
