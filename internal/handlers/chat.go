package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"chatbot-backend/internal/middleware"
	"chatbot-backend/internal/models"
	"chatbot-backend/internal/services"
)

const maxChatBodyBytes = 64 << 10

const generateFailedMessage = "Failed to generate response"

type chatGenerator interface {
	Reply(ctx context.Context, prompt string) (string, error)
}

type ChatHandler struct {
	generator chatGenerator
	log       logrus.FieldLogger
}

func NewChatHandler(generator chatGenerator, log logrus.FieldLogger) *ChatHandler {
	return &ChatHandler{
		generator: generator,
		log:       log,
	}
}

func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxChatBodyBytes)

	req, vErr := decodeChatRequest(r.Body)
	if vErr != nil {
		writeValidationError(w, r, vErr)
		return
	}

	if vErr := services.ValidatePrompt(req.Prompt); vErr != nil {
		writeValidationError(w, r, vErr)
		return
	}

	reply, err := h.generator.Reply(r.Context(), req.Prompt)
	if err != nil {
		entry := h.log.WithFields(logrus.Fields{
			"request_id":    r.Header.Get(middleware.RequestIDHeader),
			"prompt_length": utf8.RuneCountInString(req.Prompt),
		}).WithError(err)
		if errors.Is(err, context.Canceled) {
			entry.Warn("Client went away before content was generated")
		} else {
			entry.Error("Error generating content")
		}
		writeJSON(w, http.StatusInternalServerError, models.ChatErrorResponse{Error: generateFailedMessage})
		return
	}

	writeJSON(w, http.StatusOK, models.ChatResponse{Message: reply})
}

// decodeChatRequest reads exactly one {"prompt": string} object. Shape
// problems come back keyed by the offending field.
func decodeChatRequest(body io.Reader) (models.ChatRequest, *services.ValidationError) {
	var raw struct {
		Prompt *string `json:"prompt"`
	}

	dec := json.NewDecoder(body)
	if err := dec.Decode(&raw); err != nil {
		return models.ChatRequest{}, decodeError(err)
	}

	// Anything but whitespace after the object makes the body invalid.
	var extra json.RawMessage
	if err := dec.Decode(&extra); err != io.EOF {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return models.ChatRequest{}, decodeError(err)
		}
		return models.ChatRequest{}, services.NewFieldError("body", "Request body must be a JSON object")
	}

	if raw.Prompt == nil {
		return models.ChatRequest{}, services.NewFieldError("prompt", "Prompt is required")
	}
	return models.ChatRequest{Prompt: *raw.Prompt}, nil
}

func decodeError(err error) *services.ValidationError {
	var typeErr *json.UnmarshalTypeError
	var maxErr *http.MaxBytesError
	switch {
	case errors.As(err, &typeErr) && typeErr.Field == "prompt":
		return services.NewFieldError("prompt", "Prompt must be a string")
	case errors.As(err, &maxErr):
		return services.NewFieldError("body", "Request body is too large")
	default:
		return services.NewFieldError("body", "Request body must be a JSON object")
	}
}
