// HTTP handlers for the matching service.
//
// All routes expect an x-user-id header forwarded by the Gateway.
//
// Routes:
//
//	POST /jobs/{id}/matches/calculate  → run strict matching for a job
//	GET  /jobs/{id}/matches            → ranked candidates, rank ascending
//	GET  /browse                       → relaxed scores across active jobs
//	POST /matches/{id}/status          → move a match through the status machine
package matching

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
)

// Handler holds shared dependencies.
type Handler struct {
	svc     *Service
	limiter *UserLimiter
}

// NewHandler returns a configured Handler.
func NewHandler(svc *Service, limiter *UserLimiter) *Handler {
	return &Handler{svc: svc, limiter: limiter}
}

// RegisterRoutes mounts all matching-service routes on mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/jobs/", h.handleJobMatches)
	mux.HandleFunc("/browse", h.handleBrowse)
	mux.HandleFunc("/matches/", h.handleMatchAction)
}

// ─── Route dispatch ───────────────────────────────────────────────────────────

// handleJobMatches handles GET /jobs/{id}/matches and
// POST /jobs/{id}/matches/calculate.
func (h *Handler) handleJobMatches(w http.ResponseWriter, r *http.Request) {
	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")

	switch {
	case len(parts) == 3 && parts[2] == "matches" && r.Method == http.MethodGet:
		h.listMatches(w, r, parts[1])
	case len(parts) == 4 && parts[2] == "matches" && parts[3] == "calculate" && r.Method == http.MethodPost:
		h.calculateMatches(w, r, parts[1])
	default:
		jsonError(w, "invalid path", http.StatusNotFound)
	}
}

// handleMatchAction handles POST /matches/{id}/status.
func (h *Handler) handleMatchAction(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		jsonError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if len(parts) != 3 || parts[2] != "status" {
		jsonError(w, "invalid path", http.StatusNotFound)
		return
	}
	h.updateStatus(w, r, parts[1])
}

// ─── Individual handlers ──────────────────────────────────────────────────────

func (h *Handler) calculateMatches(w http.ResponseWriter, r *http.Request, jobID string) {
	if _, ok := callerID(w, r); !ok {
		return
	}

	summary, err := h.svc.CalculateMatches(r.Context(), jobID)
	if err != nil {
		writeDomainError(w, jobID, err)
		return
	}
	jsonOK(w, summary)
}

func (h *Handler) listMatches(w http.ResponseWriter, r *http.Request, jobID string) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	matches, err := h.svc.GetRankedCandidates(r.Context(), userID, jobID)
	if err != nil {
		writeDomainError(w, jobID, err)
		return
	}
	jsonOK(w, matches)
}

func (h *Handler) handleBrowse(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	if !h.limiter.Allow(userID) {
		jsonError(w, "too many browse requests", http.StatusTooManyRequests)
		return
	}

	report, err := h.svc.BrowseJobsForCandidate(r.Context(), userID)
	if err != nil {
		log.Printf("[matching] browse error for user %s: %v", userID, err)
		jsonError(w, "database error", http.StatusInternalServerError)
		return
	}
	jsonOK(w, report)
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request, matchID string) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	var body struct {
		NewStatus string `json:"newStatus"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.NewStatus == "" {
		jsonError(w, "body must contain newStatus", http.StatusBadRequest)
		return
	}

	match, err := h.svc.UpdateMatchStatus(r.Context(), userID, matchID, body.NewStatus)
	if err != nil {
		writeDomainError(w, matchID, err)
		return
	}
	jsonOK(w, match)
}

// ─── Helpers ─────────────────────────────────────────────────────────────────

// callerID extracts the x-user-id header, writing 401 when absent.
func callerID(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID := r.Header.Get("x-user-id")
	if userID == "" {
		jsonError(w, "missing x-user-id header", http.StatusUnauthorized)
		return "", false
	}
	return userID, true
}

// writeDomainError maps service errors to HTTP responses with enough
// context (entity ID, reason) for UI display.
func writeDomainError(w http.ResponseWriter, entityID string, err error) {
	switch {
	case errors.Is(err, ErrJobNotFound), errors.Is(err, ErrMatchNotFound):
		jsonError(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, ErrNoSkillsConfigured), errors.Is(err, ErrNoRequiredSkills):
		jsonError(w, fmt.Sprintf("%s (job %s)", err.Error(), entityID), http.StatusUnprocessableEntity)
	default:
		var ve *ValidationError
		if errors.As(err, &ve) {
			jsonError(w, ve.Msg, http.StatusBadRequest)
			return
		}
		log.Printf("[matching] internal error for %s: %v", entityID, err)
		jsonError(w, "internal server error", http.StatusInternalServerError)
	}
}

func jsonOK(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
