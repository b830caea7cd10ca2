package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/valyala/fasthttp"

	"github.com/oureon/trackr/api/transport"
	"github.com/oureon/trackr/domain"
	"github.com/oureon/trackr/pkg/clock"
	"github.com/oureon/trackr/repository/memory"
	taskUC "github.com/oureon/trackr/usecase/task"
)

func newTaskHandler(t *testing.T) (*TaskHandler, *taskUC.UseCase) {
	t.Helper()
	uc := taskUC.New(memory.NewTaskStore(), nil, clock.Fixed(time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)), time.UTC, nil)
	return NewTaskHandler(uc, nil, nil), uc
}

func authedCtx(userID string) *fasthttp.RequestCtx {
	ctx := &fasthttp.RequestCtx{}
	ctx.Request.Header.Set("X-User-ID", userID)
	return ctx
}

func TestDeleteTaskRespondsNoContentWithoutBody(t *testing.T) {
	h, uc := newTaskHandler(t)

	created, err := uc.Create(context.Background(), "u1", taskUC.CreateParams{Title: "obsolete"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	ctx := authedCtx("u1")
	ctx.SetUserValue("id", created.ID)
	h.DeleteTask(ctx)

	if got := ctx.Response.StatusCode(); got != http.StatusNoContent {
		t.Errorf("status = %d, want 204", got)
	}
	if body := ctx.Response.Body(); len(body) != 0 {
		t.Errorf("body = %q, want empty on 204", body)
	}
}

func TestDeleteTaskUnknownID(t *testing.T) {
	h, _ := newTaskHandler(t)

	ctx := authedCtx("u1")
	ctx.SetUserValue("id", "missing")
	h.DeleteTask(ctx)

	if got := ctx.Response.StatusCode(); got != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", got)
	}
	var envelope transport.Envelope
	if err := json.Unmarshal(ctx.Response.Body(), &envelope); err != nil {
		t.Fatalf("unmarshal body: %v", err)
	}
	if envelope.Status != "error" || envelope.Code != string(domain.ErrCodeNotFound) {
		t.Errorf("envelope = %+v, want error with NOT_FOUND code", envelope)
	}
}
