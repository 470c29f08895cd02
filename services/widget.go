package services

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"exam-prep-portal/models"
)

// greetingText seeds every new conversation before any user interaction.
const greetingText = "Hi! I'm your study assistant. Ask me anything about NEET, JEE or B.Tech subjects!"

// GenerateFunc produces one assistant reply for one piece of user text.
// It must not return an error; failures surface as canned reply content.
type GenerateFunc func(userText string) string

// Widget owns one conversation: the ordered message log, the draft input
// buffer, visibility, and the busy flag that gates submissions. All methods
// are safe for concurrent use; the busy gate guarantees at most one
// generation round-trip is in flight at any time.
type Widget struct {
	mu       sync.Mutex
	messages []models.Message
	draft    string
	open     bool
	busy     bool
	anchor   string // ID of the newest message scrolled into view
	generate GenerateFunc
}

// NewWidget creates a widget whose conversation starts with the assistant
// greeting.
func NewWidget(generate GenerateFunc) *Widget {
	w := &Widget{generate: generate}
	greeting := newMessage(models.RoleAssistant, greetingText)
	w.messages = append(w.messages, greeting)
	w.anchor = greeting.ID
	return w
}

func newMessage(role, content string) models.Message {
	return models.Message{
		ID:        uuid.NewString(),
		Role:      role,
		Content:   content,
		Timestamp: time.Now(),
	}
}

// Open makes the widget visible. The conversation is untouched.
func (w *Widget) Open() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.open = true
}

// Close hides the widget. An in-flight request keeps running and its reply
// still lands in the conversation.
func (w *Widget) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.open = false
}

// IsOpen reports widget visibility
func (w *Widget) IsOpen() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.open
}

// Busy reports whether a generation round-trip is in flight
func (w *Widget) Busy() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.busy
}

// UpdateDraft replaces the draft input buffer. Empty string is allowed.
func (w *Widget) UpdateDraft(text string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.draft = text
}

// Draft returns the current draft input buffer
func (w *Widget) Draft() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.draft
}

// Messages returns a copy of the conversation, oldest first
func (w *Widget) Messages() []models.Message {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]models.Message, len(w.messages))
	copy(out, w.messages)
	return out
}

// Submit sends the trimmed draft as a user message and starts one
// asynchronous generation round-trip. It is a no-op returning false when the
// trimmed draft is empty or a round-trip is already in flight. The returned
// channel closes when the round-trip resolves.
//
// The draft is cleared optimistically and never rolled back. The completion
// goroutine is the only writer for the in-flight request: it appends exactly
// one assistant message and clears the busy flag, on every path.
func (w *Widget) Submit() (<-chan struct{}, bool) {
	w.mu.Lock()
	text := strings.TrimSpace(w.draft)
	if text == "" || w.busy {
		w.mu.Unlock()
		return nil, false
	}
	w.draft = ""
	w.busy = true
	w.appendLocked(newMessage(models.RoleUser, text))
	w.mu.Unlock()

	done := make(chan struct{})
	go w.resolve(text, done)
	return done, true
}

// resolve runs the round-trip and lands the assistant reply. A panic escaping
// the generate call clears the busy flag without appending anything; the user
// may resubmit.
func (w *Widget) resolve(text string, done chan struct{}) {
	defer close(done)
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("generation aborted, no reply appended")
			w.mu.Lock()
			w.busy = false
			w.mu.Unlock()
		}
	}()

	reply := w.generate(text)

	w.mu.Lock()
	w.appendLocked(newMessage(models.RoleAssistant, reply))
	w.busy = false
	w.mu.Unlock()
}

// appendLocked adds a message and pins the viewport to it. Callers hold w.mu.
func (w *Widget) appendLocked(msg models.Message) {
	w.messages = append(w.messages, msg)
	w.anchor = msg.ID
}

// ScrollToLatest pins the viewport to the newest message. Calling it when
// the viewport is already there changes nothing.
func (w *Widget) ScrollToLatest() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.anchor = w.messages[len(w.messages)-1].ID
}

// ViewportAnchor returns the ID of the message the viewport is pinned to
func (w *Widget) ViewportAnchor() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.anchor
}

// Hub hands out one independent widget per session. Widgets live in memory
// only; conversations do not survive the process.
type Hub struct {
	mu       sync.Mutex
	widgets  map[string]*Widget
	generate GenerateFunc
}

// NewHub creates a widget registry backed by the given generation function
func NewHub(generate GenerateFunc) *Hub {
	return &Hub{
		widgets:  make(map[string]*Widget),
		generate: generate,
	}
}

// Widget returns the widget for a session, creating it on first use
func (h *Hub) Widget(sessionID string) *Widget {
	h.mu.Lock()
	defer h.mu.Unlock()
	w, ok := h.widgets[sessionID]
	if !ok {
		w = NewWidget(h.generate)
		h.widgets[sessionID] = w
	}
	return w
}
