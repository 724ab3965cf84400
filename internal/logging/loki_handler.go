package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"sync"
	"time"
)

const (
	lokiPushPath   = "/loki/api/v1/push"
	lokiFlushEvery = 5 * time.Second
)

// LokiHandler is a slog.Handler that ships log lines to Loki over HTTP. Lines
// are batched and grouped into one stream per level so the static labels stay
// a stable label set / Handler slog qui expédie les lignes vers Loki, une
// stream par niveau
type LokiHandler struct {
	url     string
	labels  map[string]string
	level   slog.Level
	enabled bool
	attrs   []slog.Attr
	client  *http.Client
	batch   *lokiBatch
}

// lokiBatch is shared between a handler and its WithAttrs children so every
// clone flushes through the same pipe / Partagé entre un handler et ses clones
type lokiBatch struct {
	mu      sync.Mutex
	entries []lokiEntry
	size    int
	timer   *time.Timer
}

type lokiEntry struct {
	timestamp time.Time
	level     string
	line      string
}

type lokiPushRequest struct {
	Streams []lokiStream `json:"streams"`
}

type lokiStream struct {
	Stream map[string]string `json:"stream"`
	Values [][]string        `json:"values"`
}

// NewLokiHandler builds a handler pushing to url. labels come from the
// configuration and are copied, the caller keeps its map. batchSize 0 sends
// every line immediately / Construit un handler poussant vers url, les labels
// viennent de la configuration et sont copiés
func NewLokiHandler(url string, labels map[string]string, batchSize int, enabled bool, level slog.Level) *LokiHandler {
	owned := make(map[string]string, len(labels))
	for k, v := range labels {
		owned[k] = v
	}

	h := &LokiHandler{
		url:     url + lokiPushPath,
		labels:  owned,
		level:   level,
		enabled: enabled,
		client:  &http.Client{Timeout: 5 * time.Second},
		batch:   &lokiBatch{entries: make([]lokiEntry, 0, batchSize), size: batchSize},
	}

	if batchSize > 0 && enabled {
		h.batch.timer = time.AfterFunc(lokiFlushEvery, h.periodicFlush)
	}

	return h
}

// Enabled reports whether the handler handles records at the given level.
func (h *LokiHandler) Enabled(_ context.Context, level slog.Level) bool {
	return h.enabled && level >= h.level
}

// Handle encodes the record as a JSON line and queues it / Encode le record en
// ligne JSON et la met en file
func (h *LokiHandler) Handle(_ context.Context, r slog.Record) error {
	if !h.enabled {
		return nil
	}

	logData := map[string]any{
		"time":  r.Time.Format(time.RFC3339Nano),
		"level": r.Level.String(),
		"msg":   r.Message,
	}
	for _, a := range h.attrs {
		logData[a.Key] = a.Value.Any()
	}
	r.Attrs(func(a slog.Attr) bool {
		logData[a.Key] = a.Value.Any()
		return true
	})

	line, err := json.Marshal(logData)
	if err != nil {
		return fmt.Errorf("marshal log line: %w", err)
	}

	h.batch.mu.Lock()
	h.batch.entries = append(h.batch.entries, lokiEntry{
		timestamp: r.Time,
		level:     r.Level.String(),
		line:      string(line),
	})
	full := h.batch.size <= 0 || len(h.batch.entries) >= h.batch.size
	h.batch.mu.Unlock()

	if full {
		return h.flush()
	}
	return nil
}

// WithAttrs returns a handler stamping the attributes on every line. The batch
// is shared, children flush through the same stream / Retourne un handler
// estampillant les attributs sur chaque ligne
func (h *LokiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	child := *h
	child.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)
	return &child
}

// WithGroup is a no-op: Loki indexes labels, not the shape of the line /
// Sans effet, Loki indexe les labels, pas la forme de la ligne
func (h *LokiHandler) WithGroup(string) slog.Handler {
	return h
}

// flush drains the batch into one stream per level and pushes it.
func (h *LokiHandler) flush() error {
	h.batch.mu.Lock()
	if len(h.batch.entries) == 0 {
		h.batch.mu.Unlock()
		return nil
	}
	entries := h.batch.entries
	h.batch.entries = make([]lokiEntry, 0, h.batch.size)
	h.batch.mu.Unlock()

	byLevel := make(map[string][][]string)
	for _, entry := range entries {
		byLevel[entry.level] = append(byLevel[entry.level], []string{
			strconv.FormatInt(entry.timestamp.UnixNano(), 10),
			entry.line,
		})
	}

	var push lokiPushRequest
	for level, values := range byLevel {
		stream := make(map[string]string, len(h.labels)+1)
		for k, v := range h.labels {
			stream[k] = v
		}
		stream["level"] = level
		push.Streams = append(push.Streams, lokiStream{Stream: stream, Values: values})
	}

	return h.send(push)
}

// send pushes the request. Loki being unreachable must never take the
// application down, failures go to stderr / Pousse la requête, un Loki
// injoignable ne fait jamais tomber l'application
func (h *LokiHandler) send(push lokiPushRequest) error {
	payload, err := json.Marshal(push)
	if err != nil {
		return fmt.Errorf("marshal push request: %w", err)
	}

	resp, err := h.client.Post(h.url, "application/json", bytes.NewReader(payload))
	if err != nil {
		fmt.Fprintf(os.Stderr, "loki push failed: %v\n", err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		fmt.Fprintf(os.Stderr, "loki push rejected (%d): %s\n", resp.StatusCode, body)
	}
	return nil
}

// periodicFlush drains whatever accumulated since the last tick.
func (h *LokiHandler) periodicFlush() {
	_ = h.flush()

	h.batch.mu.Lock()
	if h.batch.timer != nil {
		h.batch.timer.Reset(lokiFlushEvery)
	}
	h.batch.mu.Unlock()
}

// Close stops the periodic flush and drains the remaining lines / Arrête le
// flush périodique et draine les lignes restantes
func (h *LokiHandler) Close() error {
	h.batch.mu.Lock()
	if h.batch.timer != nil {
		h.batch.timer.Stop()
	}
	h.batch.mu.Unlock()
	return h.flush()
}
