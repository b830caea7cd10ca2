package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/oureon/trackr/domain"
	"github.com/oureon/trackr/pkg/httpcontext"
	timelineUC "github.com/oureon/trackr/usecase/timeline"
)

type TimelineHandler struct {
	baseHandler
	uc *timelineUC.UseCase
}

func NewTimelineHandler(uc *timelineUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *TimelineHandler {
	return &TimelineHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary List timeline events
// @Tags timeline
// @Router /api/v1/timeline [get]
func (h *TimelineHandler) List(ctx *fasthttp.RequestCtx) {
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

	days, err := h.uc.List(stdCtx, userID, rng)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	if days == nil {
		days = []domain.TimelineDay{}
	}
	h.respondSuccess(ctx, http.StatusOK, days)
}
