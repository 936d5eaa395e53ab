package rest

import (
	"fmt"
	"net/http"
	"strings"
)

// SSE stream markers understood by the reader.
const (
	sseDone  = "[DONE]"
	sseError = "[ERROR]"
)

// sseWriter writes server-sent events, flushing after every event.
type sseWriter struct {
	w  http.ResponseWriter
	rc *http.ResponseController
}

// newSSEWriter sends the event-stream headers. It fails when the response
// cannot be flushed incrementally.
func newSSEWriter(w http.ResponseWriter) (*sseWriter, error) {
	h := w.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	h.Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	rc := http.NewResponseController(w)
	if err := rc.Flush(); err != nil {
		return nil, fmt.Errorf("flush event stream: %w", err)
	}
	return &sseWriter{w: w, rc: rc}, nil
}

// Data sends one data event. A multi-line payload is split into several
// data fields, which clients join with newlines.
func (s *sseWriter) Data(payload string) error {
	var b strings.Builder
	for _, line := range strings.Split(payload, "\n") {
		b.WriteString("data: ")
		b.WriteString(line)
		b.WriteByte('\n')
	}
	b.WriteByte('\n')

	if _, err := fmt.Fprint(s.w, b.String()); err != nil {
		return err
	}
	return s.rc.Flush()
}

// Done terminates the stream.
func (s *sseWriter) Done() error {
	return s.Data(sseDone)
}

// Error reports a failure in-band; the stream ends after it.
func (s *sseWriter) Error(msg string) error {
	return s.Data(sseError + strings.ReplaceAll(msg, "\n", " "))
}
