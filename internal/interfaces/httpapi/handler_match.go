package httpapi

import (
	"net/http"

	"github.com/Tejas544/gully-scorer/internal/domain/ball"
	"github.com/Tejas544/gully-scorer/internal/usecase"
)

func (h *Handler) GetMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMatch")
	defer span.End()

	matchID := pathID(r, "matchID")
	view, err := h.scoring.Get(ctx, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "get match failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchViewToDTO(view))
}

func (h *Handler) Toss(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Toss")
	defer span.End()

	matchID := pathID(r, "matchID")
	var req tossRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.scoring.Toss(ctx, usecase.TossInput{
		MatchID:      matchID,
		WinnerTeamID: req.WinnerTeamID,
		Decision:     usecase.TossDecision(req.Decision),
	})
	if err != nil {
		h.logger.WarnContext(ctx, "toss failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, tossResponseDTO{
		WinnerTeamID:  result.WinnerTeamID,
		Decision:      string(result.Decision),
		BattingTeamID: result.BattingTeamID,
		Scoreboard:    scoreboardToDTO(result.Session.State),
	})
}

func (h *Handler) RecordBall(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RecordBall")
	defer span.End()

	matchID := pathID(r, "matchID")
	var req recordBallRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	snap, tr, err := h.scoring.RecordBall(ctx, matchID, ball.Input{
		Kind:      ball.Kind(req.Kind),
		Runs:      req.Runs,
		Dismissal: ball.Dismissal(req.DismissalKind),
	})
	if err != nil {
		h.logger.WarnContext(ctx, "record ball failed", "match_id", matchID, "kind", req.Kind, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, recordBallResponseDTO{
		Ball:          ballToDTO(tr.Ball),
		InningsOver:   tr.InningsOver,
		MatchFinished: tr.MatchFinished,
		Scoreboard:    scoreboardToDTO(snap.State),
	})
}

func (h *Handler) UndoBall(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UndoBall")
	defer span.End()

	matchID := pathID(r, "matchID")
	snap, err := h.scoring.Undo(ctx, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "undo ball failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, snapshotToDTO(snap))
}

func (h *Handler) StartSecondInnings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.StartSecondInnings")
	defer span.End()

	matchID := pathID(r, "matchID")
	snap, err := h.scoring.StartSecondInnings(ctx, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "start second innings failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, snapshotToDTO(snap))
}

func (h *Handler) ReloadMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ReloadMatch")
	defer span.End()

	matchID := pathID(r, "matchID")
	snap, err := h.scoring.Reload(ctx, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "reload match failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, snapshotToDTO(snap))
}

func (h *Handler) CreateSuperOver(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateSuperOver")
	defer span.End()

	matchID := pathID(r, "matchID")
	created, err := h.progression.CreateSuperOver(ctx, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "create super over failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, matchToDTO(created))
}

func (h *Handler) CreateBowlOutDecider(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateBowlOutDecider")
	defer span.End()

	matchID := pathID(r, "matchID")
	created, err := h.progression.CreateBowlOutDecider(ctx, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "create bowl out decider failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, matchToDTO(created))
}

func (h *Handler) RecordBowlOut(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RecordBowlOut")
	defer span.End()

	matchID := pathID(r, "matchID")
	var req bowlOutRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	settled, err := h.progression.RecordBowlOut(ctx, usecase.BowlOutInput{
		MatchID:    matchID,
		TeamAScore: *req.TeamAScore,
		TeamBScore: *req.TeamBScore,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "record bowl out failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchToDTO(settled))
}

func snapshotToDTO(snap usecase.SessionSnapshot) matchViewDTO {
	board := scoreboardToDTO(snap.State)
	return matchViewDTO{Match: matchToDTO(snap.Match), Scoreboard: &board, SyncError: snap.SyncError}
}
