package handler

import (
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/taskify/backend/api/transport"
	"github.com/taskify/backend/domain"
	"github.com/taskify/backend/pkg/httpcontext"
	taskUC "github.com/taskify/backend/usecase/task"
)

type TaskHandler struct {
	baseHandler
	uc *taskUC.UseCase
}

func NewTaskHandler(uc *taskUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary Create task
// @Tags tasks
// @Router /api/v1/tasks [post]
func (h *TaskHandler) CreateTask(ctx *fasthttp.RequestCtx) {
	var req transport.TaskCreateRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondError(ctx, domain.ErrInvalidPayload)
		return
	}

	task := &domain.Task{
		Title:       req.Title,
		Description: req.Description,
		Status:      domain.Status(req.Status),
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	created, err := h.uc.CreateTask(stdCtx, task)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, created)
}

// @Summary List tasks
// @Tags tasks
// @Router /api/v1/tasks [get]
func (h *TaskHandler) GetTasks(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	tasks, err := h.uc.ListTasks(stdCtx)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	if tasks == nil {
		tasks = []domain.Task{}
	}
	h.respondSuccess(ctx, http.StatusOK, tasks)
}

// @Summary Get task by id
// @Tags tasks
// @Router /api/v1/tasks/{id} [get]
func (h *TaskHandler) GetTask(ctx *fasthttp.RequestCtx) {
	id, ok := h.taskID(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	task, err := h.uc.GetTask(stdCtx, id)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, task)
}

// @Summary Partially update task
// @Tags tasks
// @Router /api/v1/tasks/{id} [put]
func (h *TaskHandler) UpdateTask(ctx *fasthttp.RequestCtx) {
	id, ok := h.taskID(ctx)
	if !ok {
		return
	}

	var req transport.TaskUpdateRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondError(ctx, domain.ErrInvalidPayload)
		return
	}

	patch := domain.TaskPatch{
		Title:       req.Title,
		Description: req.Description,
	}
	if req.Status != nil {
		status := domain.Status(*req.Status)
		patch.Status = &status
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	updated, err := h.uc.UpdateTask(stdCtx, id, patch)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, updated)
}

// @Summary Update task status
// @Tags tasks
// @Router /api/v1/tasks/{id}/status [patch]
func (h *TaskHandler) UpdateTaskStatus(ctx *fasthttp.RequestCtx) {
	id, ok := h.taskID(ctx)
	if !ok {
		return
	}

	var req transport.StatusUpdateRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondError(ctx, domain.ErrInvalidPayload)
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	updated, err := h.uc.UpdateStatus(stdCtx, id, domain.Status(req.Status))
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, updated)
}

// @Summary Delete task
// @Tags tasks
// @Router /api/v1/tasks/{id} [delete]
func (h *TaskHandler) DeleteTask(ctx *fasthttp.RequestCtx) {
	id, ok := h.taskID(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.DeleteTask(stdCtx, id); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusNoContent, nil)
}

// @Summary Filter tasks by status
// @Tags tasks
// @Router /api/v1/tasks/filter/{status} [get]
func (h *TaskHandler) FilterTasks(ctx *fasthttp.RequestCtx) {
	status, _ := ctx.UserValue("status").(string)

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	tasks, err := h.uc.FilterByStatus(stdCtx, domain.Status(status))
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	if tasks == nil {
		tasks = []domain.Task{}
	}
	h.respondSuccess(ctx, http.StatusOK, tasks)
}

// @Summary Search tasks by text
// @Tags tasks
// @Router /api/v1/tasks/search [get]
func (h *TaskHandler) SearchTasks(ctx *fasthttp.RequestCtx) {
	query := string(ctx.QueryArgs().Peek("q"))

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	tasks, err := h.uc.SearchTasks(stdCtx, query)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, tasks)
}

func (h *TaskHandler) taskID(ctx *fasthttp.RequestCtx) (string, bool) {
	id, _ := ctx.UserValue("id").(string)
	if id == "" {
		h.respondError(ctx, domain.ErrInvalidTaskID)
		return "", false
	}
	return id, true
}
