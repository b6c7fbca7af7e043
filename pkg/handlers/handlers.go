package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	log "github.com/sirupsen/logrus"

	"jellygram/pkg/models"
	"jellygram/pkg/services"
)

// Handler contains all HTTP handlers
type Handler struct {
	appService *services.AppService
}

func NewHandler(appService *services.AppService) *Handler {
	return &Handler{
		appService: appService,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/webhook":
		h.handleWebhook(w, r)
	case "/health":
		h.handleHealth(w, r)
	case "/docs":
		h.handleDocs(w, r)
	case "/apispec.json":
		h.handleAPISpec(w, r)
	default:
		h.writeErrorResponse(w, http.StatusNotFound, "Not found", "The requested endpoint does not exist")
	}
}

// Routes returns the root handler with middleware applied
func (h *Handler) Routes() http.Handler {
	return loggingMiddleware(h)
}

// ResponseError represents an error response
type ResponseError struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// ResponseSuccess represents a success response
type ResponseSuccess struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func (h *Handler) writeJSONResponse(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.WithError(err).Error("Failed to encode JSON response")
	}
}

func (h *Handler) writeErrorResponse(w http.ResponseWriter, status int, message, details string) {
	response := ResponseError{
		Error:   message,
		Message: details,
	}
	h.writeJSONResponse(w, status, response)
}

func (h *Handler) writeSuccessResponse(w http.ResponseWriter, message string, data interface{}) {
	response := ResponseSuccess{
		Message: message,
		Data:    data,
	}
	h.writeJSONResponse(w, http.StatusOK, response)
}

// handleWebhook handles "item added" webhooks from the Jellyfin webhook plugin
func (h *Handler) handleWebhook(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed", "Only POST requests are allowed")
		return
	}

	var item models.WebhookItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid JSON", fmt.Sprintf("Failed to parse request body: %v", err))
		return
	}
	defer r.Body.Close()

	result, err := h.appService.HandleItemAdded(r.Context(), &item)
	if err != nil {
		h.writeErrorResponse(w, http.StatusInternalServerError, "Failed to send notification", err.Error())
		return
	}

	h.writeSuccessResponse(w, result.Message, result)
}

// handleHealth handles health check requests
func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed", "Only GET requests are allowed")
		return
	}

	h.writeJSONResponse(w, http.StatusOK, map[string]string{
		"status": "healthy",
	})
}
