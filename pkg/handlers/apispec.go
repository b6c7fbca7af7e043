package handlers

import (
	_ "embed"
	"net/http"
)

//go:embed openapi.json
var apiSpec []byte

// docsPage serves a minimal Swagger UI shell pointing at /apispec.json
const docsPage = `<!DOCTYPE html>
<html>
<head>
  <title>Jellyfin Telegram Notifier API</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css">
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    SwaggerUIBundle({url: "/apispec.json", dom_id: "#swagger-ui"});
  </script>
</body>
</html>`

// handleDocs serves the interactive API documentation page
func (h *Handler) handleDocs(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed", "Only GET requests are allowed")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(docsPage))
}

// handleAPISpec serves the OpenAPI document
func (h *Handler) handleAPISpec(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed", "Only GET requests are allowed")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(apiSpec)
}
