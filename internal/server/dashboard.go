package server

import (
	"net/http"

	"github.com/edututor/edututor/internal/analytics"
)

type dashboardHandler struct{}

func (h *dashboardHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	m := sessionFrom(r.Context())
	history, err := m.History(r.Context())
	if err != nil {
		errorResponse(w, http.StatusInternalServerError, "failed to load history")
		return
	}
	writeJSON(w, http.StatusOK, dashboardResponse{
		User:            newUserResponse(m.CurrentUser()),
		Stats:           analytics.Summarize(history),
		Recent:          recentAttempts(history),
		Recommendations: analytics.Personalized(history),
	})
}

type analyticsHandler struct{}

func (h *analyticsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	report, err := sessionFrom(r.Context()).Report(r.Context())
	if err != nil {
		errorResponse(w, http.StatusInternalServerError, "failed to build analytics")
		return
	}
	writeJSON(w, http.StatusOK, report)
}
