package handlers

import (
	"net/http"

	"chatbot-backend/internal/models"
)

func Hello(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, models.ChatResponse{Message: "Hello"})
}

func Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
