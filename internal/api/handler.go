package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/eugenenazirov/boxfit/internal/catalog"
	"github.com/eugenenazirov/boxfit/internal/geometry"
	"github.com/eugenenazirov/boxfit/internal/matcher"
	"github.com/eugenenazirov/boxfit/internal/presenter"
)

type contextKey string

const requestIDContextKey contextKey = "requestID"

// Handler wires the matcher and catalog store into HTTP handlers.
type Handler struct {
	matcher matcher.Matcher
	store   catalog.Store

	clock func() time.Time

	mu               sync.RWMutex
	catalogUpdatedAt time.Time
}

// HandlerOption configures Handler behaviour.
type HandlerOption func(*Handler)

// WithClock overrides the time source, primarily for tests.
func WithClock(clock func() time.Time) HandlerOption {
	return func(h *Handler) {
		h.clock = clock
	}
}

// NewHandler constructs a Handler with the provided dependencies.
func NewHandler(m matcher.Matcher, store catalog.Store, opts ...HandlerOption) *Handler {
	h := &Handler{
		matcher: m,
		store:   store,
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
	for _, opt := range opts {
		opt(h)
	}
	h.catalogUpdatedAt = h.clock()
	return h
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	_ = r
	resp := healthResponse{
		Status:    "ok",
		Timestamp: h.clock(),
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleGetBoxes(w http.ResponseWriter, r *http.Request) {
	_ = r
	boxes, err := h.store.GetBoxes()
	if err != nil {
		writeInternalError(w, err)
		return
	}

	resp := boxesResponse{
		Boxes:     boxes,
		UpdatedAt: h.currentCatalogUpdatedAt(),
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handlePutBoxes(w http.ResponseWriter, r *http.Request) {
	var req boxesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request", "unable to parse JSON payload: "+err.Error())
		return
	}

	if len(req.Boxes) == 0 {
		writeError(w, http.StatusBadRequest, "Invalid catalog", "boxes must contain at least one box")
		return
	}

	boxes := make([]catalog.Box, 0, len(req.Boxes))
	for _, b := range req.Boxes {
		box, err := b.toBox()
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid catalog", err.Error())
			return
		}
		boxes = append(boxes, box)
	}

	if err := h.store.SetBoxes(boxes); err != nil {
		if errors.Is(err, catalog.ErrInvalidBox) || errors.Is(err, catalog.ErrEmptyCatalog) {
			writeError(w, http.StatusBadRequest, "Invalid catalog", err.Error())
			return
		}
		writeInternalError(w, err)
		return
	}

	h.markCatalogUpdated()

	stored, err := h.store.GetBoxes()
	if err != nil {
		writeInternalError(w, err)
		return
	}

	resp := boxesResponse{
		Boxes:     stored,
		UpdatedAt: h.currentCatalogUpdatedAt(),
		Message:   "Catalog updated successfully",
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleMatch(w http.ResponseWriter, r *http.Request) {
	var req matchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request", "unable to parse JSON payload")
		return
	}

	target, err := geometry.New(req.Length, req.Width, req.Height)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}

	mode, err := matcher.ParseMode(req.Mode)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}

	results := req.Results
	if results == 0 {
		results = matcher.DefaultResults
	}

	boxes, err := h.store.GetBoxes()
	if err != nil {
		writeInternalError(w, err)
		return
	}

	start := time.Now()
	matches, matchErr := h.matcher.Match(catalog.Records(boxes, mode), matcher.Query{
		Target:   target,
		Mode:     mode,
		Sideways: req.Sideways,
		Results:  results,
	})
	elapsed := time.Since(start)

	if matchErr != nil {
		switch {
		case errors.Is(matchErr, matcher.ErrSidewaysWithoutHeight):
			writeError(w, http.StatusBadRequest, "Invalid request", matchErr.Error(), "Provide a height or disable sideways rotation")
		case errors.Is(matchErr, matcher.ErrInvalidCount):
			writeError(w, http.StatusBadRequest, "Invalid request", matchErr.Error())
		default:
			writeInternalError(w, matchErr)
		}
		return
	}

	resp := matchResponse{
		Target:            target.String(),
		Mode:              mode.String(),
		Sideways:          req.Sideways,
		Matches:           presenter.Matches(matches),
		CalculationTimeMs: elapsed.Milliseconds(),
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) currentCatalogUpdatedAt() time.Time {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.catalogUpdatedAt
}

func (h *Handler) markCatalogUpdated() {
	h.mu.Lock()
	h.catalogUpdatedAt = h.clock()
	h.mu.Unlock()
}

func requestIDFromContext(ctx context.Context) string {
	if v := ctx.Value(requestIDContextKey); v != nil {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

// boxRequest accepts "LxWxH" strings; an empty or "-" inner means same as outer.
type boxRequest struct {
	Name  string              `json:"name"`
	Outer geometry.Dimensions `json:"outer"`
	Inner string              `json:"inner"`
}

func (b boxRequest) toBox() (catalog.Box, error) {
	inner := b.Outer
	if raw := strings.TrimSpace(b.Inner); raw != "" && raw != "-" {
		parsed, err := geometry.Parse(raw)
		if err != nil {
			return catalog.Box{}, err
		}
		inner = parsed
	}
	return catalog.Box{Name: b.Name, Outer: b.Outer, Inner: inner}, nil
}

type boxesRequest struct {
	Boxes []boxRequest `json:"boxes"`
}

type boxesResponse struct {
	Boxes     []catalog.Box `json:"boxes"`
	UpdatedAt time.Time     `json:"updatedAt"`
	Message   string        `json:"message,omitempty"`
}

type matchRequest struct {
	Length   int    `json:"length"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Mode     string `json:"mode"`
	Sideways bool   `json:"sideways"`
	Results  int    `json:"results"`
}

type matchResponse struct {
	Target            string            `json:"target"`
	Mode              string            `json:"mode"`
	Sideways          bool              `json:"sideways"`
	Matches           []presenter.Match `json:"matches"`
	CalculationTimeMs int64             `json:"calculationTimeMs"`
}

type healthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

type errorResponse struct {
	Error      string `json:"error"`
	Details    string `json:"details,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
}

// writeJSON encodes payload before touching the response so an unencodable
// payload still yields a 500 rather than a committed status with no body.
func writeJSON(w http.ResponseWriter, status int, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		data, _ = json.Marshal(errorResponse{Error: "Internal error", Details: err.Error()})
		status = http.StatusInternalServerError
	}

	w.Header().Set("Content-Type", "application/json")
	if status != 0 {
		w.WriteHeader(status)
	}
	_, _ = w.Write(append(data, '\n'))
}

func writeError(w http.ResponseWriter, status int, message, details string, suggestion ...string) {
	resp := errorResponse{
		Error:   message,
		Details: details,
	}
	if len(suggestion) > 0 {
		resp.Suggestion = suggestion[0]
	}
	writeJSON(w, status, resp)
}

func writeInternalError(w http.ResponseWriter, err error) {
	writeError(w, http.StatusInternalServerError, "Internal error", err.Error())
}
