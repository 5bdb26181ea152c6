package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	diaryHandler "github.com/apetrov/diarium/backend/internal/handler/diary"
	middlewarePkg "github.com/apetrov/diarium/backend/internal/middleware"
	diaryService "github.com/apetrov/diarium/backend/internal/service/diary"
	"github.com/apetrov/diarium/backend/pkg/utils"
)

// NewRouter wires HTTP routes to the diary service.
func NewRouter(diarySvc *diaryService.Service) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	diaryH := diaryHandler.New(diarySvc)

	r.Route("/api", func(api chi.Router) {
		api.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})

		diaryH.RegisterRoutes(api)
	})

	return r
}
