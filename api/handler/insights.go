package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/oureon/trackr/pkg/httpcontext"
	insightsUC "github.com/oureon/trackr/usecase/insights"
)

type InsightsHandler struct {
	baseHandler
	uc *insightsUC.UseCase
}

func NewInsightsHandler(uc *insightsUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *InsightsHandler {
	return &InsightsHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary Weekly insights
// @Tags insights
// @Router /api/v1/insights/weekly [get]
func (h *InsightsHandler) Weekly(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	insights, err := h.uc.Weekly(stdCtx, userID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, insights)
}
