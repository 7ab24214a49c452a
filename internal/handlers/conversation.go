package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sgladkov2017/currency-converter-agent/internal/models"
)

// ConversationReader defines only the methods needed by the history handler.
type ConversationReader interface {
	History(sessionID string) []models.Message
}

// ConversationCleaner defines only the methods needed by the clear handler.
type ConversationCleaner interface {
	Clear(sessionID string)
}

// NewGetConversationHandler returns an HTTP handler for reading a session's history.
// @Summary Get conversation history
// @Description Returns the session's messages, oldest first
// @Tags conversations
// @Produce json
// @Param session_id path string true "Session identifier"
// @Success 200 {object} models.ConversationResponse "History"
// @Failure 400 {object} models.ConversationErrorResponse "Missing session id"
// @Router /conversations/{session_id} [get]
func NewGetConversationHandler(reader ConversationReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sid := chi.URLParam(r, "session_id")
		if sid == "" {
			writeJSON(w, http.StatusBadRequest, models.ConversationErrorResponse{
				Error: "session id is required",
			})
			return
		}

		messages := reader.History(sid)
		if messages == nil {
			messages = []models.Message{}
		}

		writeJSON(w, http.StatusOK, models.ConversationResponse{
			SessionID:     sid,
			Messages:      messages,
			TotalMessages: len(messages),
		})
	}
}

// NewClearConversationHandler returns an HTTP handler that drops a session's history.
// @Summary Clear conversation history
// @Description Removes all messages for the session; unknown sessions clear silently
// @Tags conversations
// @Produce json
// @Param session_id path string true "Session identifier"
// @Success 200 {object} models.ClearResponse "Cleared"
// @Failure 400 {object} models.ConversationErrorResponse "Missing session id"
// @Router /conversations/{session_id}/clear [post]
func NewClearConversationHandler(cleaner ConversationCleaner) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sid := chi.URLParam(r, "session_id")
		if sid == "" {
			writeJSON(w, http.StatusBadRequest, models.ConversationErrorResponse{
				Error: "session id is required",
			})
			return
		}

		cleaner.Clear(sid)

		writeJSON(w, http.StatusOK, models.ClearResponse{
			Message: "conversation cleared",
		})
	}
}
