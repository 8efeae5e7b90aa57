package handler

import (
	"encoding/json"
	"net/http"
)

type PublicHandler struct{}

func NewPublicHandler() *PublicHandler {
	return &PublicHandler{}
}

// Ping godoc
// @Summary Проверка доступности API
// @Tags Public
// @Produce json
// @Success 200 {object} map[string]bool
// @Router /api/v1/public/ping [get]
func (h *PublicHandler) Ping(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(200)
	json.NewEncoder(w).Encode(map[string]bool{"pong": true})
}

// Health godoc
// @Summary Проверка состояния сервиса
// @Tags Public
// @Produce json
// @Success 200 {object} map[string]string
// @Router /api/v1/public/health [get]
func (h *PublicHandler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(200)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
