// Package api exposes HTTP handlers for the workout log service.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"example.com/workoutlog/internal/auth"
	"example.com/workoutlog/internal/domain"
	"example.com/workoutlog/internal/persistence"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// Handler coordinates HTTP requests with the domain service.
type Handler struct {
	service *domain.Service
}

// NewHandler builds a Handler.
func NewHandler(service *domain.Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes wires endpoints to the router.
func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/healthz", healthz).Methods(http.MethodGet)

	v1 := r.PathPrefix("/v1").Subrouter()
	v1.HandleFunc("/sessions", h.requireScope(auth.ScopeSessionsRead, h.listSessions)).Methods(http.MethodGet)
	v1.HandleFunc("/sessions", h.requireScope(auth.ScopeSessionsWrite, h.createSession)).Methods(http.MethodPost)
	v1.HandleFunc("/sessions/{id}", h.requireScope(auth.ScopeSessionsWrite, h.deleteSession)).Methods(http.MethodDelete)
	v1.HandleFunc("/activities", h.requireScope(auth.ScopeSessionsRead, h.activityFeed)).Methods(http.MethodGet)
	v1.HandleFunc("/activities/{id}/detail", h.requireScope(auth.ScopeSessionsWrite, h.recordDetail)).Methods(http.MethodPost)
	v1.HandleFunc("/insights/weekly", h.requireScope(auth.ScopeSessionsRead, h.weeklyInsight)).Methods(http.MethodGet)
	v1.HandleFunc("/insights/monthly", h.requireScope(auth.ScopeSessionsRead, h.monthlyHighlight)).Methods(http.MethodGet)
	v1.HandleFunc("/insights/pace", h.requireScope(auth.ScopeSessionsRead, h.paceTrend)).Methods(http.MethodGet)
	v1.HandleFunc("/insights/pace/sports", h.requireScope(auth.ScopeSessionsRead, h.paceSports)).Methods(http.MethodGet)

	// subrouters resolve their own misses, so both levels need the JSON handlers
	for _, router := range []*mux.Router{r, v1} {
		router.MethodNotAllowedHandler = http.HandlerFunc(methodNotAllowed)
		router.NotFoundHandler = http.HandlerFunc(notFound)
	}
}

func methodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
}

func notFound(w http.ResponseWriter, _ *http.Request) {
	writeError(w, http.StatusNotFound, "not_found", "route not found")
}

// healthz reports a simple OK status for container health checks.
func healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// requireScope rejects callers without claims or without scope. Write scope implies read.
func (h *Handler) requireScope(scope string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := auth.FromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "unauthorized", "missing bearer token")
			return
		}
		allowed := claims.HasScope(scope)
		if scope == auth.ScopeSessionsRead {
			allowed = allowed || claims.HasScope(auth.ScopeSessionsWrite)
		}
		if !allowed {
			writeError(w, http.StatusForbidden, "forbidden", "scope "+scope+" required")
			return
		}
		next(w, r)
	}
}

func (h *Handler) listSessions(w http.ResponseWriter, r *http.Request) {
	limit := defaultPageSize
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = min(parsed, maxPageSize)
		}
	}

	cursor, err := persistence.DecodeCursor(r.URL.Query().Get("cursor"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "validation_failed", "invalid cursor")
		return
	}

	sessions, next, err := h.service.ListSessions(r.Context(), cursor, limit)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	resp := ListSessionsResponse{
		Items:      make([]SessionView, 0, len(sessions)),
		NextCursor: persistence.EncodeCursor(next),
	}
	for _, session := range sessions {
		resp.Items = append(resp.Items, toSessionView(session))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) createSession(w http.ResponseWriter, r *http.Request) {
	var req CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "unable to parse body")
		return
	}

	input, err := req.toInput(h.service.Location())
	if err != nil {
		writeError(w, http.StatusBadRequest, "validation_failed", err.Error())
		return
	}

	session, err := h.service.RecordSession(r.Context(), input)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	resp := CreateSessionResponse{
		SessionID:  session.ID,
		Activities: make([]CreatedActivity, 0, len(session.Activities)),
	}
	for _, activity := range session.Activities {
		resp.Activities = append(resp.Activities, CreatedActivity{
			ActivityID: activity.ID,
			Name:       activity.Name,
			Mode:       string(activity.Mode),
		})
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (h *Handler) deleteSession(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteSession(r.Context(), mux.Vars(r)["id"]); err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) recordDetail(w http.ResponseWriter, r *http.Request) {
	var req DetailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "unable to parse body")
		return
	}

	measurement, err := req.toMeasurement()
	if err != nil {
		h.fail(w, r, err)
		return
	}

	activityID := mux.Vars(r)["id"]
	stored, err := h.service.RecordDetail(r.Context(), activityID, measurement)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, DetailResponse{
		ActivityID: activityID,
		Detail:     toDetailView(stored),
	})
}

func (h *Handler) activityFeed(w http.ResponseWriter, r *http.Request) {
	feed, err := h.service.ActivityFeed(r.Context(), domain.FeedFilter{
		Mode:  r.URL.Query().Get("mode"),
		Query: r.URL.Query().Get("q"),
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toFeedView(*feed))
}

func (h *Handler) weeklyInsight(w http.ResponseWriter, r *http.Request) {
	insight, err := h.service.WeeklyInsight(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toWeeklyView(*insight))
}

func (h *Handler) monthlyHighlight(w http.ResponseWriter, r *http.Request) {
	highlight, err := h.service.MonthlyHighlight(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	resp := MonthlyResponse{}
	if highlight != nil {
		resp.Highlight = &HighlightView{
			Name:          highlight.Name,
			Mode:          string(highlight.Mode),
			SessionsCount: highlight.SessionsCount,
			TotalMinutes:  highlight.TotalMinutes,
			TotalTime:     domain.FormatMinutes(highlight.TotalMinutes),
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) paceTrend(w http.ResponseWriter, r *http.Request) {
	trend, err := h.service.PaceTrend(r.Context(), r.URL.Query().Get("sport"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	resp := PaceResponse{}
	if trend != nil {
		view := toPaceView(*trend)
		resp.Trend = &view
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) paceSports(w http.ResponseWriter, r *http.Request) {
	sports, err := h.service.PaceSports(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, PaceSportsResponse{Sports: sports})
}

// fail maps domain errors onto HTTP responses. Anything unrecognised is a server fault: the
// cause is logged and the client gets a generic detail.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		writeError(w, http.StatusNotFound, "not_found", "session not found")
	case errors.Is(err, domain.ErrActivityNotFound):
		writeError(w, http.StatusNotFound, "not_found", "activity not found")
	case errors.Is(err, domain.ErrDetailExists):
		writeError(w, http.StatusConflict, "conflict", "activity already has details")
	case errors.Is(err, domain.ErrModeMismatch), errors.Is(err, domain.ErrInvalidMeasurement):
		writeError(w, http.StatusUnprocessableEntity, "validation_failed", err.Error())
	case errors.Is(err, domain.ErrInvalidMode), errors.Is(err, domain.ErrInvalidSession):
		writeError(w, http.StatusBadRequest, "validation_failed", err.Error())
	default:
		log.WithError(err).Errorf("%s %s failed", r.Method, r.URL.Path)
		writeError(w, http.StatusInternalServerError, "server_error", "internal error")
	}
}

// CreateSessionRequest is the payload for POST /v1/sessions. Date accepts YYYY-MM-DD or
// RFC 3339 and defaults to now.
type CreateSessionRequest struct {
	Date       string               `json:"date"`
	Note       *string              `json:"note"`
	Activities []NewActivityRequest `json:"activities"`
}

// NewActivityRequest names one activity of the session.
type NewActivityRequest struct {
	Name string `json:"name"`
	Mode string `json:"mode"`
}

func (r CreateSessionRequest) toInput(loc *time.Location) (domain.RecordSessionInput, error) {
	input := domain.RecordSessionInput{Note: r.Note}
	if raw := strings.TrimSpace(r.Date); raw != "" {
		date, err := time.ParseInLocation(time.DateOnly, raw, loc)
		if err != nil {
			date, err = time.Parse(time.RFC3339, raw)
			if err != nil {
				return domain.RecordSessionInput{}, errors.New("date must be YYYY-MM-DD or RFC 3339")
			}
		}
		input.Date = &date
	}
	for _, a := range r.Activities {
		input.Activities = append(input.Activities, domain.NewActivity{Name: a.Name, Mode: domain.Mode(a.Mode)})
	}
	return input, nil
}

// DetailRequest is the payload for POST /v1/activities/{id}/detail. Mode selects which of
// the measurement fields are read.
type DetailRequest struct {
	Mode            string   `json:"mode"`
	Series          *int     `json:"series,omitempty"`
	Repetitions     *int     `json:"repetitions,omitempty"`
	WeightKg        *float64 `json:"weight_kg,omitempty"`
	DurationSeconds *int     `json:"duration_seconds,omitempty"`
	DistanceKm      *float64 `json:"distance_km,omitempty"`
	TimeSeconds     *int     `json:"time_seconds,omitempty"`
}

func (r DetailRequest) toMeasurement() (domain.Measurement, error) {
	mode, err := domain.ParseMode(r.Mode)
	if err != nil {
		return nil, err
	}
	missing := func(field string) error {
		return errors.Join(domain.ErrInvalidMeasurement, errors.New(field+" is required"))
	}
	switch mode {
	case domain.ModeStrength:
		switch {
		case r.Series == nil:
			return nil, missing("series")
		case r.Repetitions == nil:
			return nil, missing("repetitions")
		case r.WeightKg == nil:
			return nil, missing("weight_kg")
		}
		return domain.Strength{Series: *r.Series, Repetitions: *r.Repetitions, WeightKg: *r.WeightKg}, nil
	case domain.ModeDuration:
		if r.DurationSeconds == nil {
			return nil, missing("duration_seconds")
		}
		return domain.Duration{Seconds: *r.DurationSeconds}, nil
	default:
		if r.DistanceKm == nil {
			return nil, missing("distance_km")
		}
		if r.TimeSeconds == nil {
			return nil, missing("time_seconds")
		}
		return domain.DistanceTime{DistanceKm: *r.DistanceKm, TimeSeconds: *r.TimeSeconds}, nil
	}
}

func writeError(w http.ResponseWriter, status int, code, detail string) {
	payload := map[string]string{
		"type":   code,
		"detail": detail,
	}
	writeJSON(w, status, payload)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Errorf("encode response: %s", err)
	}
}
