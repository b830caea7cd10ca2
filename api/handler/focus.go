package handler

import (
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/oureon/trackr/api/transport"
	"github.com/oureon/trackr/domain"
	"github.com/oureon/trackr/pkg/httpcontext"
	focusUC "github.com/oureon/trackr/usecase/focus"
)

type FocusHandler struct {
	baseHandler
	uc *focusUC.UseCase
}

func NewFocusHandler(uc *focusUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *FocusHandler {
	return &FocusHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary Start a focus session
// @Tags focus
// @Router /api/v1/focus/start [post]
func (h *FocusHandler) StartSession(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	var req transport.StartSessionRequest
	if len(ctx.PostBody()) > 0 {
		if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
			h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid payload", nil))
			return
		}
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	session, err := h.uc.Start(stdCtx, userID, focusUC.StartParams{
		Mode:           domain.SessionMode(req.Mode),
		Project:        domain.Project(req.Project),
		PlannedMinutes: req.PlannedMinutes,
	})
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, session)
}

// @Summary End a focus session
// @Tags focus
// @Router /api/v1/focus/{id}/end [post]
func (h *FocusHandler) EndSession(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}
	id, _ := ctx.UserValue("id").(string)
	if id == "" {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "missing session id", nil))
		return
	}

	var req transport.EndSessionRequest
	if len(ctx.PostBody()) > 0 {
		if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
			h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid payload", nil))
			return
		}
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	session, err := h.uc.End(stdCtx, userID, id, req.Rating, req.Note)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, sessionView(session))
}

// @Summary Get the active focus session
// @Tags focus
// @Router /api/v1/focus/active [get]
func (h *FocusHandler) GetActiveSession(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	session, err := h.uc.Active(stdCtx, userID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	if session == nil {
		h.respondSuccess(ctx, http.StatusOK, map[string]interface{}{"session": nil})
		return
	}
	h.respondSuccess(ctx, http.StatusOK, map[string]interface{}{"session": session})
}

// @Summary List focus sessions
// @Tags focus
// @Router /api/v1/focus [get]
func (h *FocusHandler) GetSessions(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	rng := string(ctx.QueryArgs().Peek("range"))
	if rng == "" {
		rng = "week"
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	sessions, totalMinutes, err := h.uc.List(stdCtx, userID, rng)
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	views := make([]map[string]interface{}, 0, len(sessions))
	for i := range sessions {
		views = append(views, sessionView(&sessions[i]))
	}
	h.respondSuccess(ctx, http.StatusOK, map[string]interface{}{
		"sessions":     views,
		"count":        len(sessions),
		"totalMinutes": totalMinutes,
	})
}

// sessionView augments the stored fields with the derived ones; duration
// and activity are computed, never persisted.
func sessionView(session *domain.FocusSession) map[string]interface{} {
	view := map[string]interface{}{
		"id":         session.ID,
		"user_id":    session.UserID,
		"mode":       session.Mode,
		"project":    session.Project,
		"started_at": session.StartedAt,
		"isActive":   session.IsActive(),
	}
	if session.EndedAt != nil {
		view["ended_at"] = session.EndedAt
		view["durationMinutes"] = session.DurationMinutes()
	}
	if session.PlannedMinutes > 0 {
		view["planned_minutes"] = session.PlannedMinutes
	}
	if session.Rating > 0 {
		view["rating"] = session.Rating
	}
	if session.Note != "" {
		view["note"] = session.Note
	}
	return view
}
