package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/mcoot/battlebots/internal/api/request"
	"github.com/mcoot/battlebots/internal/api/response"
	"github.com/mcoot/battlebots/internal/model"
	"github.com/mcoot/battlebots/internal/services/submission"
)

// SubmissionHandler handles submission and result endpoints
type SubmissionHandler struct {
	service *submission.Service
}

// NewSubmissionHandler creates a new submission handler
func NewSubmissionHandler(service *submission.Service) *SubmissionHandler {
	return &SubmissionHandler{
		service: service,
	}
}

// Submit handles POST /api/v1/submissions
func (h *SubmissionHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req request.SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.UserID == "" {
		WriteError(w, NewInvalidRequestError("user_id is required"))
		return
	}
	if req.BotID == "" {
		WriteError(w, NewInvalidRequestError("bot_id is required"))
		return
	}

	job, length, err := h.service.Submit(r.Context(), model.UserID(req.UserID), req.BotID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusAccepted, response.SubmitResponse{
		JobID:       string(job.ID),
		QueueLength: length,
	})
}

// GetResult handles GET /api/v1/results/{user_id}
func (h *SubmissionHandler) GetResult(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["user_id"]

	result, err := h.service.Result(r.Context(), model.UserID(userID))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.ResultFromModel(result))
}

// Leaderboard handles GET /api/v1/leaderboard
func (h *SubmissionHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			WriteError(w, NewInvalidRequestError("limit must be a non-negative integer"))
			return
		}
		limit = n
	}

	results, err := h.service.Leaderboard(r.Context(), limit)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.LeaderboardFromModel(results))
}

// Health handles GET /api/v1/health
func (h *SubmissionHandler) Health(w http.ResponseWriter, r *http.Request) {
	length, err := h.service.QueueLength(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.Health{
		Status:      "ok",
		QueueLength: length,
	})
}
