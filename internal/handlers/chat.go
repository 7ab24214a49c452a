package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/sgladkov2017/currency-converter-agent/internal/logger"
	"github.com/sgladkov2017/currency-converter-agent/internal/models"
)

// maxMessageLength bounds one chat message, in runes.
const maxMessageLength = 1000

// ChatProcessor defines only the methods needed by this handler.
type ChatProcessor interface {
	Handle(ctx context.Context, text, sessionID string) (reply, sid string)
}

// NewChatHandler returns an HTTP handler for one chat turn.
// @Summary Process a chat message
// @Description Parses conversion requests out of the message, resolves rates and returns a formatted reply
// @Tags chat
// @Accept json
// @Produce json
// @Param request body models.ChatRequest true "Chat message"
// @Success 200 {object} models.ChatResponse "Reply"
// @Failure 400 {object} models.ChatErrorResponse "Invalid message"
// @Router /chat [post]
func NewChatHandler(processor ChatProcessor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.ChatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Log.Errorw("invalid chat request body", "error", err)
			writeJSON(w, http.StatusBadRequest, models.ChatErrorResponse{
				Error: "invalid request body",
			})
			return
		}

		message := strings.TrimSpace(req.Message)
		if message == "" {
			writeJSON(w, http.StatusBadRequest, models.ChatErrorResponse{
				Error: "message cannot be empty",
			})
			return
		}
		if utf8.RuneCountInString(message) > maxMessageLength {
			writeJSON(w, http.StatusBadRequest, models.ChatErrorResponse{
				Error: "message is too long",
			})
			return
		}

		reply, sid := processor.Handle(r.Context(), message, req.SessionID)

		writeJSON(w, http.StatusOK, models.ChatResponse{
			Response:  reply,
			SessionID: sid,
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
