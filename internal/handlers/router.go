// internal/handlers/router.go
package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"go_health_learning/internal/config"
	"go_health_learning/internal/middleware"
	"go_health_learning/internal/webutil"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"gorm.io/gorm"
)

// RouterDeps はルーター構築に必要な依存関係
type RouterDeps struct {
	Config        *config.Config
	Logger        *slog.Logger
	DB            *gorm.DB // /health 用。nil なら DB チェックを省略
	DailyLearning *DailyLearningHandler
	InterestGroup *InterestGroupHandler
	Content       *ContentHandler
}

// NewRouter はミドルウェアとルートを設定した chi ルーターを返します。
func NewRouter(deps RouterDeps) *chi.Mux {
	cfg := deps.Config
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.LoggingMiddleware(deps.Logger))

	r.Use(cors.New(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   cfg.CORS.AllowedMethods,
		AllowedHeaders:   cfg.CORS.AllowedHeaders,
		ExposedHeaders:   cfg.CORS.ExposedHeaders,
		AllowCredentials: cfg.CORS.AllowCredentials,
		MaxAge:           cfg.CORS.MaxAge,
	}).Handler)

	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	r.Get("/health", healthHandler(deps.DB))

	r.Group(func(r chi.Router) {
		if cfg.Auth.Enabled {
			deps.Logger.Info("Applying JWT authentication middleware")
			r.Use(middleware.JWTAuthMiddleware(cfg))
		} else {
			deps.Logger.Warn("Authentication disabled: using X-User-ID development middleware")
			r.Use(middleware.DevUserContextMiddleware)
		}

		r.Route("/daily-learning", func(r chi.Router) {
			h := deps.DailyLearning
			r.Post("/select-group", h.SelectGroup)
			r.Post("/complete-step", h.CompleteStep)
			r.Get("/current", h.GetCurrent)
			r.Get("/progress", h.ListProgress)
			r.Get("/progress/{groupId}", h.GetProgress)
			r.Get("/summary", h.GetSummary)
			r.Get("/session/{groupId}", h.GetTodaySession)
			r.Get("/sessions", h.ListTodaySessions)
		})

		r.Route("/user-interest-group", func(r chi.Router) {
			h := deps.InterestGroup
			r.Get("/", h.Get)
			r.Put("/", h.Put)
			r.Delete("/", h.Delete)
		})

		r.Route("/learning-content/groups", func(r chi.Router) {
			h := deps.Content
			r.Get("/", h.ListGroups)
			r.Get("/{groupId}", h.GetGroup)
			r.Get("/{groupId}/tree", h.GetGroupTree)
		})
	})

	return r
}

func healthHandler(db *gorm.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.GetLogger(r.Context())
		if db != nil {
			sqlDB, err := db.DB()
			if err == nil {
				err = sqlDB.PingContext(r.Context())
			}
			if err != nil {
				logger.Error("Health check failed: could not ping DB", slog.Any("error", err))
				webutil.RespondWithJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
				return
			}
		}
		webutil.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
