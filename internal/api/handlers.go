package api

import (
	"encoding/json"
	"math/rand"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/policyforge/casegen/internal/export"
	"github.com/policyforge/casegen/internal/model"
	"github.com/policyforge/casegen/internal/pipeline"
	"github.com/policyforge/casegen/internal/store"
	"github.com/policyforge/casegen/internal/validate"
)

// Handler holds the dependencies behind the HTTP surface. Store may be nil,
// in which case runs are not persisted and the history endpoints 404.
type Handler struct {
	Generator *pipeline.Generator
	Store     store.Store
	Now       func() model.Date
}

// NewHandler wires up a handler. A nil clock defaults to the wall clock.
func NewHandler(gen *pipeline.Generator, st store.Store, now func() model.Date) *Handler {
	if now == nil {
		now = func() model.Date { return model.DateOf(time.Now()) }
	}
	return &Handler{Generator: gen, Store: st, Now: now}
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) Parse(w http.ResponseWriter, r *http.Request) {
	var req model.GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.Generator.Parse(r.Context(), req)
	if err != nil {
		if eris.Is(err, pipeline.ErrMissingRequiredInput) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		zap.L().Error("parse failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "parse failed")
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	var req model.GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.Generator.Run(r.Context(), req)
	if err != nil {
		if eris.Is(err, pipeline.ErrMissingRequiredInput) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		zap.L().Error("generation failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "generation failed")
		return
	}

	if h.Store != nil {
		if _, err := h.Store.SaveRun(r.Context(), req, resp); err != nil {
			// History is best effort; the batch itself succeeded.
			zap.L().Warn("save run failed", zap.String("run_id", resp.RunID), zap.Error(err))
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

type validateRequest struct {
	Scenario model.Scenario   `json:"scenario"`
	Record   model.TestRecord `json:"record"`
}

func (h *Handler) Validate(w http.ResponseWriter, r *http.Request) {
	var req validateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Scenario.ProductCode == "" {
		writeError(w, http.StatusBadRequest, "scenario product_code is required")
		return
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	res := validate.Validate(req.Scenario, req.Record, h.Now(), rng)
	writeJSON(w, http.StatusOK, res)
}

func (h *Handler) ListRuns(w http.ResponseWriter, r *http.Request) {
	if h.Store == nil {
		writeError(w, http.StatusNotFound, "run history disabled")
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	runs, err := h.Store.ListRuns(r.Context(), store.RunFilter{Limit: limit, Offset: offset})
	if err != nil {
		zap.L().Error("list runs failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "list runs failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"runs": runs})
}

func (h *Handler) GetRun(w http.ResponseWriter, r *http.Request) {
	run, ok := h.fetchRun(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, run)
}

func (h *Handler) DeleteRun(w http.ResponseWriter, r *http.Request) {
	if h.Store == nil {
		writeError(w, http.StatusNotFound, "run history disabled")
		return
	}
	id := chi.URLParam(r, "id")
	if err := h.Store.DeleteRun(r.Context(), id); err != nil {
		if eris.Is(err, store.ErrRunNotFound) {
			writeError(w, http.StatusNotFound, "run not found")
			return
		}
		zap.L().Error("delete run failed", zap.String("run_id", id), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "delete run failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ExportRun(w http.ResponseWriter, r *http.Request) {
	run, ok := h.fetchRun(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+run.ID+`.xlsx"`)
	if err := export.WriteXLSXTo(w, run.Response.Records); err != nil {
		zap.L().Error("export run failed", zap.String("run_id", run.ID), zap.Error(err))
	}
}

func (h *Handler) fetchRun(w http.ResponseWriter, r *http.Request) (*model.Run, bool) {
	if h.Store == nil {
		writeError(w, http.StatusNotFound, "run history disabled")
		return nil, false
	}
	id := chi.URLParam(r, "id")
	run, err := h.Store.GetRun(r.Context(), id)
	if err != nil {
		if eris.Is(err, store.ErrRunNotFound) {
			writeError(w, http.StatusNotFound, "run not found")
			return nil, false
		}
		zap.L().Error("get run failed", zap.String("run_id", id), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "get run failed")
		return nil, false
	}
	return run, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
