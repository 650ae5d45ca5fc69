package handler

import (
	"net/http"
	"time"

	goalsdomain "smartbudget-go/internal/domain/goals"
	historydomain "smartbudget-go/internal/domain/history"
	incomedomain "smartbudget-go/internal/domain/income"
	spendingdomain "smartbudget-go/internal/domain/spending"
	summarydomain "smartbudget-go/internal/domain/summary"
	"smartbudget-go/internal/transport/httpserver/middleware"
	"smartbudget-go/pkg/logger"
)

type Handlers struct {
	Income   *incomedomain.Service
	Spending *spendingdomain.Service
	Goals    *goalsdomain.Service
	Summary  *summarydomain.Service
	History  *historydomain.Service
	log      logger.Logger
	now      func() time.Time
}

func New(income *incomedomain.Service, spending *spendingdomain.Service, goals *goalsdomain.Service, summary *summarydomain.Service, history *historydomain.Service, log logger.Logger) *Handlers {
	if log == nil {
		log = logger.Nop()
	}
	return &Handlers{
		Income:   income,
		Spending: spending,
		Goals:    goals,
		Summary:  summary,
		History:  history,
		log:      log,
		now:      time.Now,
	}
}

type authMeResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url"`
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handlers) AuthMe(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, authMeResponse{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		AvatarURL: user.AvatarURL,
	})
}

func currentUser(w http.ResponseWriter, r *http.Request) (middleware.User, bool) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return middleware.User{}, false
	}
	return user, true
}
