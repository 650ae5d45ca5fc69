package httpserver

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"smartbudget-go/internal/config"
	"smartbudget-go/internal/transport/httpserver/handler"
	authmw "smartbudget-go/internal/transport/httpserver/middleware"
	"smartbudget-go/pkg/logger"
)

func NewRouter(cfg config.Config, handlers *handler.Handlers, profiles authmw.ProfileSaver, log logger.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(authmw.NewCORS(cfg.CORS.AllowedOrigins))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handlers.Health)

		auth := authmw.NewSupabaseAuth(cfg.Supabase, profiles, log)
		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware)

			r.Get("/auth/me", handlers.AuthMe)

			r.Get("/income", handlers.ListIncome)
			r.Get("/income/stats", handlers.IncomeStats)
			r.Get("/income/sources", handlers.ListIncomeSources)
			r.Post("/income", handlers.CreateIncome)
			r.Put("/income/{id}", handlers.UpdateIncome)
			r.Delete("/income/{id}", handlers.DeleteIncome)

			r.Get("/spending", handlers.ListSpending)
			r.Get("/spending/stats", handlers.SpendingStats)
			r.Post("/spending", handlers.CreateSpending)
			r.Put("/spending/{id}", handlers.UpdateSpending)
			r.Delete("/spending/{id}", handlers.DeleteSpending)

			r.Get("/categories", handlers.ListCategories)
			r.Post("/categories", handlers.CreateCategory)
			r.Patch("/categories/{id}", handlers.UpdateCategory)
			r.Delete("/categories/{id}", handlers.DeleteCategory)

			r.Get("/goals", handlers.ListGoals)
			r.Post("/goals", handlers.CreateGoal)
			r.Put("/goals/{id}", handlers.UpdateGoal)
			r.Delete("/goals/{id}", handlers.DeleteGoal)
			r.Get("/goals/{id}/allocation", handlers.GoalAllocation)
			r.Post("/goals/{id}/allocate", handlers.AllocateToGoal)
			r.Post("/goals/{id}/toggle-complete", handlers.ToggleGoalComplete)

			r.Get("/summary", handlers.GetSummary)
			r.Get("/history", handlers.GetHistory)
		})
	})

	return r
}
