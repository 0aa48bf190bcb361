// Package logging configures the process-wide apex/log handler and provides
// request logging for gin.
package logging

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/apex/log"
	"github.com/apex/log/handlers/json"
	"github.com/apex/log/handlers/text"
)

// Supported output formats
const (
	FormatPlain = "plain"
	FormatText  = "text"
	FormatJSON  = "json"
)

// Init installs a handler writing to w (stdout when nil) at the given level.
func Init(level, format string, w io.Writer) error {
	if w == nil {
		w = os.Stdout
	}
	if level == "" {
		level = "info"
	}

	lvl, err := log.ParseLevel(strings.ToLower(level))
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}

	switch strings.ToLower(format) {
	case FormatJSON:
		log.SetHandler(json.New(w))
	case FormatText:
		log.SetHandler(text.New(w))
	case "", FormatPlain:
		log.SetHandler(NewPlainHandler(w))
	default:
		return fmt.Errorf("invalid log format %q", format)
	}

	log.SetLevel(lvl)
	return nil
}

// PlainHandler writes one line per entry: timestamp, level initial, message
// and sorted key=value fields.
type PlainHandler struct {
	mu  sync.Mutex
	w   io.Writer
	now func() time.Time
}

// NewPlainHandler creates a PlainHandler writing to w
func NewPlainHandler(w io.Writer) *PlainHandler {
	return &PlainHandler{w: w, now: time.Now}
}

// HandleLog implements the log.Handler interface
func (h *PlainHandler) HandleLog(e *log.Entry) error {
	timestamp := h.now().Format("2006-01-02 15:04:05")
	level := strings.ToUpper(e.Level.String())

	var b strings.Builder
	fmt.Fprintf(&b, "%s %.1s %s", timestamp, level, e.Message)

	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(&b, " %s=%v", name, e.Fields[name])
	}
	b.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.w, b.String())
	return err
}
