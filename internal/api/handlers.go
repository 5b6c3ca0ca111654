package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	errorvalues "github.com/limbo/coco/internal/error_values"
	"github.com/limbo/coco/internal/service"
	"github.com/limbo/coco/pkg/entity"
	"github.com/limbo/coco/pkg/httputil"
)

const (
	engineLoadTimeout = 10 * time.Second
	remoteCallTimeout = 10 * time.Second
)

type PracticesResponse struct {
	Practices []entity.UserPractice `json:"practices"`
}

type DailyResponse struct {
	PracticeID int64 `json:"practiceId"`
	IsDaily    bool  `json:"isDaily"`
	Synced     bool  `json:"synced"`
}

type CompleteResponse struct {
	PracticeID int64               `json:"practiceId"`
	Points     int                 `json:"points"`
	Progress   entity.UserProgress `json:"progress"`
	Synced     bool                `json:"synced"`
}

type CreatePracticeResponse struct {
	Practice *entity.UserPractice `json:"practice"`
	Synced   bool                 `json:"synced"`
}

type CompletionsResponse struct {
	Completions []entity.CompletionEvent `json:"completions"`
}

type SyncResponse struct {
	Synced bool   `json:"synced"`
	Error  string `json:"error,omitempty"`
}

// engineFor resolves the engine of the authenticated user. It writes the
// error response itself and reports false on failure.
func (s *Server) engineFor(w http.ResponseWriter, r *http.Request, op string) (service.PracticeEngineI, *slog.Logger, bool) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error(op + " error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return nil, logger, false
	}
	ctx, cancel := context.WithTimeout(r.Context(), engineLoadTimeout)
	defer cancel()
	engine, err := s.engines.ForUser(ctx, uid)
	if err != nil {
		logger.Error(op+" error: loading practice engine", slog.String("error", err.Error()))
		if errors.Is(err, errorvalues.ErrEngineClosed) {
			httputil.WriteErrorResponse(w, http.StatusServiceUnavailable, "service is shutting down", nil)
			return nil, logger, false
		}
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while loading practices", nil)
		return nil, logger, false
	}
	return engine, logger, true
}

func practiceIDFromPath(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid practice id")
	}
	return id, nil
}

// writeEngineError maps engine error kinds onto statuses.
func writeEngineError(w http.ResponseWriter, logger *slog.Logger, op string, err error) {
	switch {
	case errors.Is(err, errorvalues.ErrPracticeNotFound):
		logger.Error(op + " error: unexist practice")
		httputil.WriteErrorResponse(w, http.StatusNotFound, "practice doesn't exist", nil)
	case errors.Is(err, errorvalues.ErrValidation):
		logger.Error(op+" error: invalid input", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid input", err)
	case errors.Is(err, errorvalues.ErrSystemPractice):
		logger.Error(op + " error: attempt to change system practice")
		httputil.WriteErrorResponse(w, http.StatusForbidden, "system practices can't be changed", nil)
	case errors.Is(err, errorvalues.ErrWrongOwner):
		logger.Error(op + " error: practice has different owner")
		httputil.WriteErrorResponse(w, http.StatusForbidden, "practice belongs to another user", nil)
	case errors.Is(err, errorvalues.ErrPracticeExists):
		logger.Error(op + " error: attempt to create existed practice")
		httputil.WriteErrorResponse(w, http.StatusConflict, "practice already exists", nil)
	case errors.Is(err, errorvalues.ErrPersistence):
		logger.Error(op+" error: remote store unavailable", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusServiceUnavailable, "remote store unavailable, try again later", nil)
	case errors.Is(err, errorvalues.ErrEngineClosed):
		logger.Error(op + " error: engine closed")
		httputil.WriteErrorResponse(w, http.StatusServiceUnavailable, "service is shutting down", nil)
	default:
		logger.Error(op+" error: engine error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error", nil)
	}
}

func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	if s.health != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := s.health(ctx); err != nil {
			GetLoggerFromCtx(r.Context()).Warn("health check failed", slog.String("error", err.Error()))
			httputil.WriteJSONResponse(w, http.StatusServiceUnavailable, map[string]any{"status": "degraded"})
			return
		}
	}
	httputil.WriteJSONResponse(w, http.StatusOK, map[string]any{"status": "ok"})
}

func (s *Server) ListPractices(w http.ResponseWriter, r *http.Request) {
	engine, logger, ok := s.engineFor(w, r, "list practices")
	if !ok {
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, PracticesResponse{Practices: engine.ListAll()})
	logger.Info("practices provided")
}

func (s *Server) ListDaily(w http.ResponseWriter, r *http.Request) {
	engine, logger, ok := s.engineFor(w, r, "list daily")
	if !ok {
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, PracticesResponse{Practices: engine.ListDaily()})
	logger.Info("daily practices provided")
}

func (s *Server) CreatePractice(w http.ResponseWriter, r *http.Request) {
	engine, logger, ok := s.engineFor(w, r, "create practice")
	if !ok {
		return
	}
	var req service.CreatePracticeRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		logger.Error("create practice error: invalid request body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), remoteCallTimeout)
	defer cancel()
	practice, err := engine.CreatePractice(ctx, &req)
	if err != nil {
		writeEngineError(w, logger, "create practice", err)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusCreated, CreatePracticeResponse{
		Practice: practice,
		Synced:   engine.Synced(),
	})
	logger.Info("practice created", slog.Int64("practice_id", practice.ID))
}

func (s *Server) DeletePractice(w http.ResponseWriter, r *http.Request) {
	engine, logger, ok := s.engineFor(w, r, "practice deletion")
	if !ok {
		return
	}
	id, err := practiceIDFromPath(r)
	if err != nil {
		logger.Error("practice deletion error: invalid id in path value")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid practice id in path value", nil)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), remoteCallTimeout)
	defer cancel()
	if err = engine.DeletePractice(ctx, id); err != nil {
		writeEngineError(w, logger, "practice deletion", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
	logger.Info("practice deleted", slog.Int64("practice_id", id))
}

func (s *Server) AddToDaily(w http.ResponseWriter, r *http.Request) {
	s.setDaily(w, r, true)
}

func (s *Server) RemoveFromDaily(w http.ResponseWriter, r *http.Request) {
	s.setDaily(w, r, false)
}

func (s *Server) setDaily(w http.ResponseWriter, r *http.Request, isDaily bool) {
	op := "remove from daily"
	if isDaily {
		op = "add to daily"
	}
	engine, logger, ok := s.engineFor(w, r, op)
	if !ok {
		return
	}
	id, err := practiceIDFromPath(r)
	if err != nil {
		logger.Error(op + " error: invalid id in path value")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid practice id in path value", nil)
		return
	}
	if isDaily {
		err = engine.AddToDaily(id)
	} else {
		err = engine.RemoveFromDaily(id)
	}
	if err != nil {
		writeEngineError(w, logger, op, err)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, DailyResponse{
		PracticeID: id,
		IsDaily:    isDaily,
		Synced:     engine.Synced(),
	})
	logger.Info("daily set updated", slog.Int64("practice_id", id), slog.Bool("is_daily", isDaily))
}

func (s *Server) CompletePractice(w http.ResponseWriter, r *http.Request) {
	engine, logger, ok := s.engineFor(w, r, "complete practice")
	if !ok {
		return
	}
	id, err := practiceIDFromPath(r)
	if err != nil {
		logger.Error("complete practice error: invalid id in path value")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid practice id in path value", nil)
		return
	}
	var req service.CompletePracticeRequest
	if err = httputil.DecodeJSON(r, &req); err != nil {
		logger.Error("complete practice error: invalid request body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	if err = service.ValidateStruct(&req); err != nil {
		writeEngineError(w, logger, "complete practice", err)
		return
	}
	points, err := engine.CompletePractice(id, req.DurationMinutes)
	if err != nil {
		writeEngineError(w, logger, "complete practice", err)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusCreated, CompleteResponse{
		PracticeID: id,
		Points:     points,
		Progress:   engine.Progress(),
		Synced:     engine.Synced(),
	})
	logger.Info("practice completed", slog.Int64("practice_id", id), slog.Int("points", points))
}

func (s *Server) TodayCompletions(w http.ResponseWriter, r *http.Request) {
	engine, logger, ok := s.engineFor(w, r, "today completions")
	if !ok {
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, CompletionsResponse{Completions: engine.TodayCompletions()})
	logger.Info("today completions provided")
}

func (s *Server) Progress(w http.ResponseWriter, r *http.Request) {
	engine, logger, ok := s.engineFor(w, r, "progress")
	if !ok {
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, engine.Progress())
	logger.Info("progress provided")
}

func (s *Server) Sync(w http.ResponseWriter, r *http.Request) {
	engine, logger, ok := s.engineFor(w, r, "sync")
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), remoteCallTimeout)
	defer cancel()
	if err := engine.Refresh(ctx); err != nil {
		if errors.Is(err, errorvalues.ErrPersistence) {
			logger.Warn("sync error: remote store unavailable", slog.String("error", err.Error()))
			httputil.WriteJSONResponse(w, http.StatusServiceUnavailable, SyncResponse{
				Synced: false,
				Error:  "remote store unavailable, working from local cache",
			})
			return
		}
		writeEngineError(w, logger, "sync", err)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, SyncResponse{Synced: engine.Synced()})
	logger.Info("state synced")
}

func (s *Server) Snapshot(w http.ResponseWriter, r *http.Request) {
	engine, logger, ok := s.engineFor(w, r, "snapshot")
	if !ok {
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, engine.Snapshot())
	logger.Info("snapshot provided")
}
