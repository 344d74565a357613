package httpapi

import (
	"net/http"

	"github.com/Tejas544/gully-scorer/internal/usecase"
)

func (h *Handler) CreateSeason(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateSeason")
	defer span.End()

	var req createSeasonRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	detail, err := h.seasons.Create(ctx, usecase.CreateSeasonInput{Name: req.Name, TeamNames: req.TeamNames})
	if err != nil {
		h.logger.WarnContext(ctx, "create season failed", "name", req.Name, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, seasonDetailToDTO(detail))
}

func (h *Handler) ListSeasons(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListSeasons")
	defer span.End()

	items, err := h.seasons.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list seasons failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]seasonDTO, 0, len(items))
	for _, item := range items {
		out = append(out, seasonToDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) GetSeason(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSeason")
	defer span.End()

	seasonID := pathID(r, "seasonID")
	detail, err := h.seasons.Get(ctx, seasonID)
	if err != nil {
		h.logger.WarnContext(ctx, "get season failed", "season_id", seasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, seasonDetailToDTO(detail))
}

func (h *Handler) DeleteSeason(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteSeason")
	defer span.End()

	seasonID := pathID(r, "seasonID")
	if err := h.seasons.Delete(ctx, seasonID); err != nil {
		h.logger.WarnContext(ctx, "delete season failed", "season_id", seasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"id": seasonID, "status": "deleted"})
}

func (h *Handler) ListSeasonMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListSeasonMatches")
	defer span.End()

	seasonID := pathID(r, "seasonID")
	items, err := h.seasons.ListMatches(ctx, seasonID)
	if err != nil {
		h.logger.WarnContext(ctx, "list season matches failed", "season_id", seasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchesToDTO(items))
}

func (h *Handler) GetStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetStandings")
	defer span.End()

	seasonID := pathID(r, "seasonID")
	table, err := h.standings.Get(ctx, seasonID)
	if err != nil {
		h.logger.WarnContext(ctx, "get standings failed", "season_id", seasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, standingsToDTO(table))
}

func (h *Handler) CheckProgression(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CheckProgression")
	defer span.End()

	seasonID := pathID(r, "seasonID")
	result, err := h.progression.Check(ctx, seasonID)
	if err != nil {
		h.logger.WarnContext(ctx, "progression check failed", "season_id", seasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	status := http.StatusOK
	if result.Created != nil {
		status = http.StatusCreated
	}
	writeSuccess(ctx, w, status, progressionToDTO(result))
}
