package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/oureon/trackr/pkg/httpcontext"
	summaryUC "github.com/oureon/trackr/usecase/summary"
)

type SummaryHandler struct {
	baseHandler
	uc *summaryUC.UseCase
}

func NewSummaryHandler(uc *summaryUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *SummaryHandler {
	return &SummaryHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary Daily summary
// @Tags summary
// @Router /api/v1/summary/daily [get]
func (h *SummaryHandler) Daily(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	summary, err := h.uc.Daily(stdCtx, userID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, summary)
}

// @Summary Weekly summary
// @Tags summary
// @Router /api/v1/summary/weekly [get]
func (h *SummaryHandler) Weekly(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	summary, err := h.uc.Weekly(stdCtx, userID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, summary)
}
