package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"exam-prep-portal/models"
	"exam-prep-portal/services"
)

// ChatHandler exposes the conversation widget operations over HTTP
type ChatHandler struct {
	hub *services.Hub
}

// NewChatHandler creates a chat handler backed by the given widget hub
func NewChatHandler(hub *services.Hub) *ChatHandler {
	return &ChatHandler{hub: hub}
}

// Chat submits one user message and waits for the assistant reply. A
// submission gated off by the busy flag or an empty draft is not an error,
// the response just carries accepted=false.
func (h *ChatHandler) Chat(c *gin.Context) {
	var req models.ChatRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	log.Debug().Str("session", req.SessionID).Msg("chat submission")

	widget := h.hub.Widget(req.SessionID)
	widget.UpdateDraft(req.Message)

	done, ok := widget.Submit()
	if !ok {
		c.JSON(http.StatusOK, models.ChatResponse{Accepted: false})
		return
	}
	<-done

	messages := widget.Messages()
	last := messages[len(messages)-1]
	if last.Role != models.RoleAssistant {
		// the round-trip was abandoned, nothing was appended
		c.JSON(http.StatusOK, models.ChatResponse{Accepted: true})
		return
	}

	c.JSON(http.StatusOK, models.ChatResponse{Accepted: true, Message: &last})
}

// History returns the full conversation of one session, greeting first
func (h *ChatHandler) History(c *gin.Context) {
	sessionID := c.Param("session")
	widget := h.hub.Widget(sessionID)

	c.JSON(http.StatusOK, models.ConversationResponse{
		SessionID: sessionID,
		Messages:  widget.Messages(),
	})
}

// Open makes the widget of one session visible
func (h *ChatHandler) Open(c *gin.Context) {
	sessionID := c.Param("session")
	h.hub.Widget(sessionID).Open()
	h.state(c, sessionID)
}

// Close hides the widget of one session
func (h *ChatHandler) Close(c *gin.Context) {
	sessionID := c.Param("session")
	h.hub.Widget(sessionID).Close()
	h.state(c, sessionID)
}

// State reports visibility and busy state of one session's widget
func (h *ChatHandler) State(c *gin.Context) {
	h.state(c, c.Param("session"))
}

func (h *ChatHandler) state(c *gin.Context, sessionID string) {
	widget := h.hub.Widget(sessionID)
	c.JSON(http.StatusOK, models.WidgetStateResponse{
		SessionID: sessionID,
		Open:      widget.IsOpen(),
		Busy:      widget.Busy(),
	})
}
