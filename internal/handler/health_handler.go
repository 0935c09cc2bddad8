package handler

import (
	"auth-service/internal/model/requestresponse"
	"context"
	"log"
	"net/http"
	"time"
)

type HealthCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

type HealthHandler struct {
	checks []HealthCheck
}

func NewHealthHandler(checks ...HealthCheck) *HealthHandler {
	return &HealthHandler{checks: checks}
}

// Health godoc
// @Summary Проверка состояния
// @Tags Health
// @Produce json
// @Success 200 {object} requestresponse.HealthResponse
// @Failure 503 {object} requestresponse.HealthResponse
// @Router /health [get]
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	for _, check := range h.checks {
		if err := check.Check(ctx); err != nil {
			log.Printf("[Health] %s недоступен: %v", check.Name, err)
			writeJSON(w, http.StatusServiceUnavailable, requestresponse.HealthResponse{Status: "unavailable"})
			return
		}
	}

	writeJSON(w, http.StatusOK, requestresponse.HealthResponse{Status: "ok"})
}
