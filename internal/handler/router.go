package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/zainjo/insight-dashboard/backend/internal/handler/conversations"
	"github.com/zainjo/insight-dashboard/backend/internal/handler/messages"
	middlewarePkg "github.com/zainjo/insight-dashboard/backend/internal/middleware"
	insightService "github.com/zainjo/insight-dashboard/backend/internal/service/insight"
	"github.com/zainjo/insight-dashboard/backend/pkg/utils"
)

// NewRouter wires HTTP routes to core services.
func NewRouter(insightSvc *insightService.Service, log zerolog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middlewarePkg.RequestLogger(log))
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)
	r.Use(middlewarePkg.Metrics)

	// Create handlers
	messagesHandler := messages.New(insightSvc, log)
	conversationsHandler := conversations.New(insightSvc, log)

	r.Route("/api", func(api chi.Router) {
		// Register message routes
		messagesHandler.RegisterRoutes(api)

		// Register conversation listing routes
		conversationsHandler.RegisterRoutes(api)

		api.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}
