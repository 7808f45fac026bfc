package app

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/acm-pccoer/events-site/internal/counter"
	"github.com/acm-pccoer/events-site/internal/visibility"
)

// HandleCounter dispatches the counter endpoints
// URL: /api/counters/{id}/stream or /api/counters/{id}/visible
func (s *Server) HandleCounter(w http.ResponseWriter, r *http.Request) {
	rest := r.URL.Path[len("/api/counters/"):]
	id, action, ok := strings.Cut(rest, "/")
	if !ok || id == "" {
		http.NotFound(w, r)
		return
	}

	switch action {
	case "stream":
		s.handleCounterStream(w, r, id)
	case "visible":
		s.handleCounterVisible(w, r, id)
	default:
		http.NotFound(w, r)
	}
}

// handleCounterStream waits for the counter to become visible, then sends
// every displayed value as a server-sent event. The stream ends with the
// frame whose done flag is set.
// Query param: target
func (s *Server) handleCounterStream(w http.ResponseWriter, r *http.Request, id string) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	target, err := strconv.Atoi(r.URL.Query().Get("target"))
	if err != nil || target < 0 || target > MaxCounterTarget {
		http.Error(w, ErrInvalidTarget, http.StatusBadRequest)
		return
	}

	rc := http.NewResponseController(w)
	ctx := r.Context()

	// Register before the headers go out so a visible report sent right
	// after the client sees the stream open cannot be missed.
	var gate visibility.Gate
	release, ok := s.observer.TryObserve(id, gate.Open)
	if !ok {
		http.Error(w, ErrCounterInUse, http.StatusConflict)
		return
	}
	defer release()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	if err := rc.Flush(); err != nil {
		slog.Warn("Counter stream cannot flush", "id", id, "error", err)
		return
	}

	select {
	case <-gate.Wait():
	case <-ctx.Done():
		return
	}

	steps := s.cfg.Counter.Steps
	if steps < 1 {
		steps = counter.DefaultSteps
	}
	width := counter.Width(target)
	values := make(chan int, len(counter.Frames(target, steps)))
	c, err := counter.New(target,
		counter.WithDuration(s.cfg.Counter.Duration),
		counter.WithSteps(steps),
		counter.WithClock(s.clock),
		counter.OnChange(func(v int) {
			select {
			case values <- v:
			case <-ctx.Done():
			}
		}),
	)
	if err != nil {
		slog.Error("Error creating counter", "id", id, "error", err)
		return
	}
	c.Start(ctx)
	defer c.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case v := <-values:
			frame := CounterFrame{
				Value:  v,
				Digits: strings.Join(counter.Digits(v, width), ""),
				Done:   v == target,
			}
			if err := writeEvent(w, frame); err != nil {
				slog.Debug("Counter stream closed", "id", id, "error", err)
				return
			}
			if err := rc.Flush(); err != nil {
				return
			}
			if frame.Done {
				return
			}
		}
	}
}

func writeEvent(w http.ResponseWriter, frame CounterFrame) error {
	data, err := json.Marshal(frame)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "data: %s\n\n", data)
	return err
}

// handleCounterVisible relays an intersection report from the browser
// Query param: ratio (0..1)
func (s *Server) handleCounterVisible(w http.ResponseWriter, r *http.Request, id string) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	ratio, err := strconv.ParseFloat(r.URL.Query().Get("ratio"), 64)
	if err != nil || math.IsNaN(ratio) || ratio < 0 || ratio > 1 {
		http.Error(w, ErrInvalidRatio, http.StatusBadRequest)
		return
	}

	if !s.observer.Report(id, ratio) {
		http.Error(w, ErrUnknownCounter, http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
