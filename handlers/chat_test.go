package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"exam-prep-portal/models"
	"exam-prep-portal/services"
)

func newTestRouter(generate services.GenerateFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	chat := NewChatHandler(services.NewHub(generate))
	api := router.Group("/api")
	api.POST("/chat", chat.Chat)
	api.GET("/chat/:session/history", chat.History)
	api.GET("/chat/:session/state", chat.State)
	api.POST("/chat/:session/open", chat.Open)
	api.POST("/chat/:session/close", chat.Close)
	return router
}

func postJSON(t *testing.T, router *gin.Engine, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func getJSON[T any](t *testing.T, router *gin.Engine, path string) T {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestChatReturnsAssistantReply(t *testing.T) {
	router := newTestRouter(func(string) string { return "F equals ma." })

	rec := postJSON(t, router, "/api/chat", models.ChatRequest{
		SessionID: "s1",
		Message:   "State Newton's second law.",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.ChatResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.True(t, resp.Accepted)
	require.NotNil(t, resp.Message)
	require.Equal(t, models.RoleAssistant, resp.Message.Role)
	require.Equal(t, "F equals ma.", resp.Message.Content)
}

func TestChatRejectsMissingFields(t *testing.T) {
	router := newTestRouter(func(string) string { return "" })

	rec := postJSON(t, router, "/api/chat", gin.H{"session_id": "s1"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestChatBlankMessageIsSilentlyIgnored(t *testing.T) {
	router := newTestRouter(func(string) string { return "never" })

	rec := postJSON(t, router, "/api/chat", models.ChatRequest{
		SessionID: "s1",
		Message:   "   ",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.ChatResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.False(t, resp.Accepted)
	require.Nil(t, resp.Message)

	history := getJSON[models.ConversationResponse](t, router, "/api/chat/s1/history")
	require.Len(t, history.Messages, 1)
}

func TestHistoryStartsWithGreeting(t *testing.T) {
	router := newTestRouter(func(string) string { return "reply" })

	history := getJSON[models.ConversationResponse](t, router, "/api/chat/fresh/history")
	require.Equal(t, "fresh", history.SessionID)
	require.Len(t, history.Messages, 1)
	require.Equal(t, models.RoleAssistant, history.Messages[0].Role)

	rec := postJSON(t, router, "/api/chat", models.ChatRequest{SessionID: "fresh", Message: "hi"})
	require.Equal(t, http.StatusOK, rec.Code)

	history = getJSON[models.ConversationResponse](t, router, "/api/chat/fresh/history")
	require.Len(t, history.Messages, 3)
	require.Equal(t, models.RoleUser, history.Messages[1].Role)
	require.Equal(t, models.RoleAssistant, history.Messages[2].Role)
}

func TestOpenCloseState(t *testing.T) {
	router := newTestRouter(func(string) string { return "" })

	state := getJSON[models.WidgetStateResponse](t, router, "/api/chat/s2/state")
	require.False(t, state.Open)
	require.False(t, state.Busy)

	rec := postJSON(t, router, "/api/chat/s2/open", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var opened models.WidgetStateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &opened))
	require.True(t, opened.Open)

	rec = postJSON(t, router, "/api/chat/s2/close", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var closed models.WidgetStateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &closed))
	require.False(t, closed.Open)

	// toggling visibility never touches the conversation
	history := getJSON[models.ConversationResponse](t, router, "/api/chat/s2/history")
	require.Len(t, history.Messages, 1)
}
