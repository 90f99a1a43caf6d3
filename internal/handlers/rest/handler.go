package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/KirkDiggler/duelhall/internal/models"
	"github.com/KirkDiggler/duelhall/internal/services/duel"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

// maxBodyBytes caps request bodies
const maxBodyBytes = 1 << 16

// Config holds configuration for the HTTP handler
type Config struct {
	// DuelService resolves challenges and actions
	DuelService duel.Service

	// JWTSecret verifies bearer tokens
	JWTSecret string

	// Logger defaults to a disabled logger
	Logger *zerolog.Logger
}

// Handler serves the duel HTTP API
type Handler struct {
	service duel.Service
	auth    *Authenticator
	logger  zerolog.Logger
}

// New creates a new HTTP handler
func New(cfg *Config) (*Handler, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if cfg.DuelService == nil {
		return nil, errors.New("duel service cannot be nil")
	}

	auth, err := NewAuthenticator(cfg.JWTSecret)
	if err != nil {
		return nil, err
	}

	logger := zerolog.Nop()
	if cfg.Logger != nil {
		logger = *cfg.Logger
	}

	return &Handler{
		service: cfg.DuelService,
		auth:    auth,
		logger:  logger.With().Str("component", "http").Logger(),
	}, nil
}

// Router builds the route table
func (h *Handler) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(h.logRequests)
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "NOT_FOUND"})
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "METHOD_NOT_ALLOWED"})
	})

	r.HandleFunc("/health", h.health).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.Use(h.auth.middleware)
	api.HandleFunc("/challenge", h.challenge).Methods(http.MethodPost)
	api.HandleFunc("/duels/{duelId}", h.getDuel).Methods(http.MethodGet)
	api.HandleFunc("/{duelId}/{action:attack|cast|heal}", h.action).Methods(http.MethodPost)

	return r
}

func (h *Handler) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) challenge(w http.ResponseWriter, r *http.Request) {
	caller, _ := CallerFrom(r.Context())

	var req challengeRequest
	if !h.decode(w, r, &req) {
		return
	}
	if !validID(req.ChallengerCharacterID) || !validID(req.OpponentCharacterID) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "VALIDATION_ERROR", Message: "character IDs must be UUIDs"})
		return
	}

	out, err := h.service.Challenge(r.Context(), &duel.ChallengeInput{
		Caller:                caller,
		ChallengerCharacterID: req.ChallengerCharacterID,
		OpponentCharacterID:   req.OpponentCharacterID,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, challengeResponse{DuelID: out.DuelID})
}

func (h *Handler) action(w http.ResponseWriter, r *http.Request) {
	caller, _ := CallerFrom(r.Context())
	vars := mux.Vars(r)

	var req actionRequest
	if !h.decode(w, r, &req) {
		return
	}
	if !validID(req.ActorCharacterID) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "VALIDATION_ERROR", Message: "actorCharacterId must be a UUID"})
		return
	}

	out, err := h.service.ApplyAction(r.Context(), &duel.ApplyActionInput{
		Caller:           caller,
		DuelID:           vars["duelId"],
		Action:           models.ActionKind(vars["action"]),
		ActorCharacterID: req.ActorCharacterID,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, newActionResponse(out))
}

func (h *Handler) getDuel(w http.ResponseWriter, r *http.Request) {
	caller, _ := CallerFrom(r.Context())

	out, err := h.service.GetDuel(r.Context(), &duel.GetDuelInput{
		Caller: caller,
		DuelID: mux.Vars(r)["duelId"],
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	actions := out.Actions
	if actions == nil {
		actions = []*models.DuelAction{}
	}
	writeJSON(w, http.StatusOK, duelResponse{Duel: out.Duel, Actions: actions})
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "VALIDATION_ERROR", Message: "malformed JSON body"})
		return false
	}
	return true
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	e, ok := duel.AsError(err)
	if !ok {
		h.logger.Error().Err(err).Str("path", r.URL.Path).Msg("unexpected error")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "INTERNAL_ERROR"})
		return
	}

	status := statusFor(e.Kind)
	if status >= http.StatusInternalServerError {
		h.logger.Error().Err(err).Str("path", r.URL.Path).Str("code", string(e.Code)).Msg("request failed")
	}

	body := errorResponse{Error: string(e.Code), Message: e.Message}
	if e.Code == duel.CodeTimeout {
		body.Status = string(models.DuelStatusDraw)
	}
	writeJSON(w, status, body)
}

func (h *Handler) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		h.logger.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Msg("request")
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
