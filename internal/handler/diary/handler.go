package diary

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	diaryservice "github.com/apetrov/diarium/backend/internal/service/diary"
	"github.com/apetrov/diarium/backend/pkg/utils"
)

// Handler exposes the diary pipeline over HTTP.
type Handler struct {
	diarySvc *diaryservice.Service
}

// New creates the diary handler.
func New(diarySvc *diaryservice.Service) *Handler {
	return &Handler{diarySvc: diarySvc}
}

// RegisterRoutes mounts the diary endpoints.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/entries", h.handleCreateEntry)
	r.Get("/entries", h.handleListEntries)
	r.Post("/comment", h.handleComment)
	r.Post("/forecast", h.handleForecast)
	r.Post("/future-full", h.handleForecastFull)
	r.Post("/future-detailed", h.handleForecastDetailed)
	r.Get("/judge-all", h.handleJudgeAll)
	r.Get("/sabotage", h.handleSabotageAll)
	r.Post("/comments-batch", h.handleCommentsBatch)
}

func (h *Handler) handleCreateEntry(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	entry, err := h.diarySvc.CreateEntry(r.Context(), payload.Content)
	if err != nil {
		if errors.Is(err, diaryservice.ErrContentRequired) {
			utils.RespondError(w, http.StatusBadRequest, "content is required")
			return
		}
		log.Printf("[diary] create entry failed: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "failed to create entry")
		return
	}

	utils.RespondJSON(w, http.StatusCreated, entry)
}

func (h *Handler) handleListEntries(w http.ResponseWriter, r *http.Request) {
	entries, err := h.diarySvc.ListEntries(r.Context())
	if err != nil {
		log.Printf("[diary] list entries failed: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "failed to list entries")
		return
	}
	utils.RespondJSON(w, http.StatusOK, entries)
}

func (h *Handler) handleComment(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	comment, err := h.diarySvc.Comment(r.Context(), payload.Content)
	if err != nil {
		// The client still gets a usable comment string alongside the
		// failure status.
		log.Printf("[diary] comment failed: %v", err)
		utils.RespondJSON(w, http.StatusInternalServerError, map[string]string{"comment": diaryservice.CommentFallback})
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]string{"comment": comment})
}

func (h *Handler) handleForecast(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	forecast, err := h.diarySvc.Forecast(r.Context(), payload.Text)
	if err != nil {
		if errors.Is(err, diaryservice.ErrContentRequired) {
			utils.RespondError(w, http.StatusBadRequest, "text is required")
			return
		}
		log.Printf("[diary] forecast failed: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "forecast failed")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]string{"forecast": forecast})
}

func (h *Handler) handleForecastFull(w http.ResponseWriter, r *http.Request) {
	forecast, err := h.diarySvc.ForecastFull(r.Context())
	if err != nil {
		log.Printf("[diary] full forecast failed: %v", err)
		utils.RespondJSON(w, http.StatusInternalServerError, map[string]string{"forecast": diaryservice.ForecastFallback})
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]string{"forecast": forecast})
}

func (h *Handler) handleForecastDetailed(w http.ResponseWriter, r *http.Request) {
	forecast, err := h.diarySvc.ForecastDetailed(r.Context())
	if err != nil {
		log.Printf("[diary] detailed forecast failed: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "detailed forecast failed")
		return
	}
	utils.RespondJSON(w, http.StatusOK, forecast)
}

func (h *Handler) handleJudgeAll(w http.ResponseWriter, r *http.Request) {
	results, err := h.diarySvc.JudgeAll(r.Context())
	if err != nil {
		log.Printf("[diary] judge-all failed: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "judgment failed")
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]any{"results": results})
}

func (h *Handler) handleSabotageAll(w http.ResponseWriter, r *http.Request) {
	results, err := h.diarySvc.SabotageAll(r.Context())
	if err != nil {
		log.Printf("[diary] sabotage scan failed: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "sabotage scan failed")
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]any{"results": results})
}

func (h *Handler) handleCommentsBatch(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Entries []diaryservice.CommentRequest `json:"entries"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	results := h.diarySvc.CommentBatch(r.Context(), payload.Entries)
	utils.RespondJSON(w, http.StatusOK, map[string]any{"results": results})
}
