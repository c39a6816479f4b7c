package server

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
)

// consoleHistory is how many recent messages the server keeps
const consoleHistory = 200

// ConsoleMessage represents a console message with timestamp
type ConsoleMessage struct {
	RenderID  string    `json:"renderId"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Level     string    `json:"level"` // "info", "warning", "error"
}

// WebLogger implements core.Logger by sending messages to a console channel
type WebLogger struct {
	renderID    string
	consoleChan chan<- ConsoleMessage
}

// NewWebLogger creates a new web logger for a specific render
func NewWebLogger(renderID string, consoleChan chan<- ConsoleMessage) core.Logger {
	return &WebLogger{
		renderID:    renderID,
		consoleChan: consoleChan,
	}
}

// Printf implements core.Logger interface. Server logs get the render ID
// as a prefix.
func (wl *WebLogger) Printf(format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)

	fmt.Printf("[%s] %s", wl.renderID, message)

	// Send to web console if channel is available (non-blocking)
	if wl.consoleChan != nil {
		select {
		case wl.consoleChan <- ConsoleMessage{
			RenderID:  wl.renderID,
			Message:   strings.TrimRight(message, "\n"),
			Timestamp: time.Now(),
			Level:     "info",
		}:
		default:
			// Channel full, skip (don't block)
		}
	}
}

// Console keeps the most recent console messages of all renders
type Console struct {
	mu       sync.Mutex
	messages []ConsoleMessage
}

// Collect drains every message currently buffered in ch
func (c *Console) Collect(ch <-chan ConsoleMessage) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				return
			}
			c.messages = append(c.messages, msg)
			if len(c.messages) > consoleHistory {
				c.messages = c.messages[len(c.messages)-consoleHistory:]
			}
		default:
			return
		}
	}
}

// Recent returns a copy of the kept messages, oldest first
func (c *Console) Recent() []ConsoleMessage {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]ConsoleMessage, len(c.messages))
	copy(out, c.messages)
	return out
}
