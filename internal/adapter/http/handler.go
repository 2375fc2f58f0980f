// Package httpadapter exposes the use cases over the JSON API polled by
// game clients. Endpoints are POST-with-body; polling clients re-post the
// same snapshot requests at the advertised interval.
package httpadapter

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"civitech/internal/app/advisor"
	"civitech/internal/app/ledger"
	"civitech/internal/app/lobby"
	"civitech/internal/app/play"
	"civitech/internal/app/ports"
	"civitech/internal/app/results"
	"civitech/internal/domain/gamify"
	"civitech/internal/domain/session"
	"civitech/internal/domain/sim"
)

type Handler struct {
	PlayUC    play.UseCase
	LedgerUC  ledger.UseCase
	LobbyUC   lobby.UseCase
	ResultsUC results.UseCase
	AdvisorUC advisor.UseCase
	KPI       kpiSnapshotProvider
}

func (h Handler) RegisterRoutes(s *server.Hertz) {
	s.Use(corsMiddleware())

	game := s.Group("/api/game")
	game.POST("/start", h.gameStart)
	game.POST("/snapshot", h.gameSnapshot)
	game.POST("/decide", h.gameDecide)
	game.POST("/event-choice", h.gameEventChoice)
	game.POST("/advance", h.gameAdvance)
	game.POST("/abort", h.gameAbort)
	game.POST("/advice", h.gameAdvice)
	game.POST("/analysis", h.gameAnalysis)

	sess := s.Group("/api/session")
	sess.POST("/create", h.sessionCreate)
	sess.POST("/join", h.sessionJoin)
	sess.POST("/ready", h.sessionReady)
	sess.POST("/start", h.sessionStart)
	sess.POST("/leave", h.sessionLeave)
	sess.POST("/snapshot", h.sessionSnapshot)
	sess.POST("/results", h.sessionResults)

	profile := s.Group("/api/profile")
	profile.POST("/view", h.profileView)
	profile.POST("/visit", h.profileVisit)
	profile.POST("/claim", h.profileClaim)

	s.GET("/ops/kpi", h.kpi)
}

func (h Handler) gameStart(c context.Context, ctx *app.RequestContext) {
	var body play.StartRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	resp, err := h.PlayUC.Start(c, body)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusCreated, resp)
}

func (h Handler) gameSnapshot(c context.Context, ctx *app.RequestContext) {
	var body play.SnapshotRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	resp, err := h.PlayUC.Snapshot(c, body)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) gameDecide(c context.Context, ctx *app.RequestContext) {
	var body play.DecideRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	resp, err := h.PlayUC.Decide(c, body)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) gameEventChoice(c context.Context, ctx *app.RequestContext) {
	var body play.EventChoiceRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	resp, err := h.PlayUC.EventChoice(c, body)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) gameAdvance(c context.Context, ctx *app.RequestContext) {
	var body play.AdvanceRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	resp, err := h.PlayUC.Advance(c, body)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) gameAbort(c context.Context, ctx *app.RequestContext) {
	var body play.AbortRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	resp, err := h.PlayUC.Abort(c, body)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) gameAdvice(c context.Context, ctx *app.RequestContext) {
	var body advisor.AdviceRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	resp, err := h.AdvisorUC.Advice(c, body)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) gameAnalysis(c context.Context, ctx *app.RequestContext) {
	var body advisor.AnalysisRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	resp, err := h.AdvisorUC.Analysis(c, body)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) sessionCreate(c context.Context, ctx *app.RequestContext) {
	var body lobby.CreateRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	resp, err := h.LobbyUC.Create(c, body)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusCreated, resp)
}

func (h Handler) sessionJoin(c context.Context, ctx *app.RequestContext) {
	var body lobby.JoinRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	resp, err := h.LobbyUC.Join(c, body)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) sessionReady(c context.Context, ctx *app.RequestContext) {
	var body lobby.ReadyRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	resp, err := h.LobbyUC.ToggleReady(c, body)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) sessionStart(c context.Context, ctx *app.RequestContext) {
	var body lobby.StartRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	resp, err := h.LobbyUC.Start(c, body)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) sessionLeave(c context.Context, ctx *app.RequestContext) {
	var body lobby.LeaveRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	resp, err := h.LobbyUC.Leave(c, body)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) sessionSnapshot(c context.Context, ctx *app.RequestContext) {
	var body lobby.SnapshotRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	resp, err := h.LobbyUC.Snapshot(c, body)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) sessionResults(c context.Context, ctx *app.RequestContext) {
	var body results.Request
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	resp, err := h.ResultsUC.BySession(c, body)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) profileView(c context.Context, ctx *app.RequestContext) {
	var body ledger.ProfileRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	resp, err := h.LedgerUC.Profile(c, body)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) profileVisit(c context.Context, ctx *app.RequestContext) {
	var body ledger.VisitRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	resp, err := h.LedgerUC.TrackVisit(c, body)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) profileClaim(c context.Context, ctx *app.RequestContext) {
	var body ledger.ClaimRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	resp, err := h.LedgerUC.ClaimChallenge(c, body)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

type kpiSnapshotProvider interface {
	SnapshotAny() any
}

func (h Handler) kpi(_ context.Context, ctx *app.RequestContext) {
	if h.KPI == nil {
		writeErrorBody(ctx, consts.StatusNotFound, "not_configured", "kpi provider not configured")
		return
	}
	ctx.JSON(consts.StatusOK, h.KPI.SnapshotAny())
}

func decodeJSON(ctx *app.RequestContext, out any) error {
	body := ctx.Request.Body()
	if len(body) == 0 {
		return nil
	}
	return json.Unmarshal(body, out)
}

func writeError(ctx *app.RequestContext, err error) {
	switch {
	case errors.Is(err, play.ErrInvalidRequest),
		errors.Is(err, ledger.ErrInvalidRequest),
		errors.Is(err, lobby.ErrInvalidRequest),
		errors.Is(err, results.ErrInvalidRequest),
		errors.Is(err, advisor.ErrInvalidRequest),
		errors.Is(err, session.ErrInvalidMode),
		errors.Is(err, session.ErrInvalidName):
		writeErrorBody(ctx, consts.StatusBadRequest, "bad_request", err.Error())
	case errors.Is(err, sim.ErrUnknownDecision):
		writeErrorBody(ctx, consts.StatusBadRequest, "unknown_decision", err.Error())
	case errors.Is(err, sim.ErrUnknownChoice):
		writeErrorBody(ctx, consts.StatusBadRequest, "unknown_event_choice", err.Error())
	case errors.Is(err, sim.ErrWrongPhase):
		writeErrorBody(ctx, consts.StatusConflict, "wrong_phase", err.Error())
	case errors.Is(err, play.ErrSessionNotStarted):
		writeErrorBody(ctx, consts.StatusConflict, "session_not_started", err.Error())
	case errors.Is(err, play.ErrNotSessionMember):
		writeErrorBody(ctx, consts.StatusForbidden, "not_session_member", err.Error())
	case errors.Is(err, session.ErrAlreadyStarted):
		writeErrorBody(ctx, consts.StatusConflict, "session_already_started", err.Error())
	case errors.Is(err, session.ErrSessionFull):
		writeErrorBody(ctx, consts.StatusConflict, "session_full", err.Error())
	case errors.Is(err, session.ErrNameTaken):
		writeErrorBody(ctx, consts.StatusConflict, "name_taken", err.Error())
	case errors.Is(err, session.ErrNotHost):
		writeErrorBody(ctx, consts.StatusForbidden, "not_host", err.Error())
	case errors.Is(err, session.ErrNotReady):
		writeErrorBody(ctx, consts.StatusConflict, "not_ready", err.Error())
	case errors.Is(err, session.ErrUnknownPlayer):
		writeErrorBody(ctx, consts.StatusNotFound, "unknown_player", err.Error())
	case errors.Is(err, gamify.ErrUnknownChallenge):
		writeErrorBody(ctx, consts.StatusNotFound, "unknown_challenge", err.Error())
	case errors.Is(err, gamify.ErrChallengeNotActive):
		writeErrorBody(ctx, consts.StatusConflict, "challenge_not_active", err.Error())
	case errors.Is(err, gamify.ErrAlreadyClaimed):
		writeErrorBody(ctx, consts.StatusConflict, "challenge_already_claimed", err.Error())
	case errors.Is(err, gamify.ErrTargetNotMet):
		writeErrorBody(ctx, consts.StatusConflict, "challenge_target_not_met", err.Error())
	case errors.Is(err, ports.ErrNotFound):
		writeErrorBody(ctx, consts.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, ports.ErrConflict):
		writeErrorBody(ctx, consts.StatusConflict, "conflict", err.Error())
	default:
		writeErrorBody(ctx, consts.StatusInternalServerError, "internal_error", "internal error")
	}
}

func writeErrorBody(ctx *app.RequestContext, status int, code, message string) {
	ctx.JSON(status, map[string]any{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}
