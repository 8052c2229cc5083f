package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"pennant/internal/game"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

type Server struct {
	log  *slog.Logger
	game *game.Service
	mux  *chi.Mux
}

func New(logger *slog.Logger, gameSvc *game.Service) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		log:  logger,
		game: gameSvc,
		mux:  chi.NewRouter(),
	}
	s.routes()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) routes() {
	r := s.mux
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	r.Route("/v1", func(r chi.Router) {
		r.Post("/saves", s.handleCreateSave)
		r.Get("/saves/{id}", s.handleGetSave)
		r.Delete("/saves/{id}", s.handleDeleteSave)
		r.Get("/saves/{id}/standings", s.handleStandings)
		r.Get("/saves/{id}/standings/history", s.handleStandingsHistory)
		r.Get("/saves/{id}/seasons", s.handleSeasons)
		r.Post("/saves/{id}/actions/{action}", s.handleAction)
	})
}

func (s *Server) handleCreateSave(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Name   string `json:"name"`
		TeamID string `json:"team_id"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	save, err := s.game.CreateSave(r.Context(), game.CreateSaveInput{
		Name:           in.Name,
		TeamID:         in.TeamID,
		IdempotencyKey: idempotencyKey(r),
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, save)
}

func (s *Server) handleGetSave(w http.ResponseWriter, r *http.Request) {
	save, err := s.game.GetSave(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, save)
}

func (s *Server) handleDeleteSave(w http.ResponseWriter, r *http.Request) {
	if err := s.game.DeleteSave(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"deleted": true})
}

func (s *Server) handleStandings(w http.ResponseWriter, r *http.Request) {
	save, err := s.game.GetSave(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"week":      save.State.Week,
		"standings": save.State.Standings,
	})
}

func (s *Server) handleStandingsHistory(w http.ResponseWriter, r *http.Request) {
	save, err := s.game.GetSave(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, save.State.StandingsHistory)
}

func (s *Server) handleSeasons(w http.ResponseWriter, r *http.Request) {
	records, err := s.game.SeasonHistory(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (s *Server) handleAction(w http.ResponseWriter, r *http.Request) {
	action := game.Action{Kind: chi.URLParam(r, "action")}

	var in struct {
		Allocation  *game.Allocation `json:"allocation,omitempty"`
		TicketLevel *string          `json:"ticket_level,omitempty"`
		DrillID     string           `json:"drill_id,omitempty"`
	}
	if r.ContentLength != 0 {
		if err := decodeJSON(r, &in); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}
	action.Allocation = in.Allocation
	action.DrillID = in.DrillID
	if in.TicketLevel != nil {
		level, err := game.ParseTicketLevel(*in.TicketLevel)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		action.TicketLevel = &level
	}

	save, err := s.game.ApplyAction(r.Context(), game.ApplyActionInput{
		SaveID:         chi.URLParam(r, "id"),
		Action:         action,
		IdempotencyKey: idempotencyKey(r),
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, save)
}

func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, game.ErrDuplicateIdempotency), errors.Is(err, game.ErrTxConflict):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, game.ErrSaveNotFound), errors.Is(err, game.ErrTeamNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, game.ErrInsufficientFunds),
		errors.Is(err, game.ErrMoraleAtMax),
		errors.Is(err, game.ErrNoPendingOffer),
		errors.Is(err, game.ErrNoSuchDrill),
		errors.Is(err, game.ErrInvalidAllocation),
		errors.Is(err, game.ErrInvalidTicketLevel),
		errors.Is(err, game.ErrSeasonActive):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func decodeJSON(r *http.Request, out any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(out); err != nil {
		return err
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"error": strings.TrimSpace(message)})
}

func idempotencyKey(r *http.Request) string {
	key := strings.TrimSpace(r.Header.Get("Idempotency-Key"))
	if key != "" {
		return key
	}
	return uuid.NewString()
}
