package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/gehrmanng/taskplanner/internal/auth"
	"github.com/gehrmanng/taskplanner/internal/domain"
	"github.com/gehrmanng/taskplanner/internal/logger"
	"github.com/gehrmanng/taskplanner/internal/service"
	"github.com/gehrmanng/taskplanner/internal/service/serviceutils"
	"github.com/gehrmanng/taskplanner/pkg/taskexport"
)

type TaskListHandler struct {
	svc service.TaskListService
}

func NewTaskListHandler(svc service.TaskListService) *TaskListHandler {
	return &TaskListHandler{svc: svc}
}

type saveRequest struct {
	TaskList domain.TaskList `json:"taskList"`
}

type saveTasksRequest struct {
	TaskListID string        `json:"taskListId"`
	Tasks      []domain.Task `json:"tasks"`
}

type watcherRequest struct {
	TaskListID string `json:"taskListId"`
}

// ListHandler handles GET /api/v1/task-lists
func (h *TaskListHandler) ListHandler(c echo.Context) error {
	ctx := c.Request().Context()
	userID := auth.UserID(c)

	lists, err := h.svc.List(ctx, userID)
	if err != nil {
		logger.ErrorLog(ctx, "failed to list task lists for %s: %v", userID, err)
		return serviceutils.ResponseForError(c, "failed to list task lists", err)
	}
	return serviceutils.ResponseSuccess(c, http.StatusOK, "", lists)
}

// ListSharedHandler handles GET /api/v1/task-lists/shared
func (h *TaskListHandler) ListSharedHandler(c echo.Context) error {
	ctx := c.Request().Context()
	userID := auth.UserID(c)

	lists, err := h.svc.ListShared(ctx, userID)
	if err != nil {
		logger.ErrorLog(ctx, "failed to list shared task lists for %s: %v", userID, err)
		return serviceutils.ResponseForError(c, "failed to list shared task lists", err)
	}
	return serviceutils.ResponseSuccess(c, http.StatusOK, "", lists)
}

// SaveHandler handles POST /api/v1/task-lists
func (h *TaskListHandler) SaveHandler(c echo.Context) error {
	ctx := c.Request().Context()
	userID := auth.UserID(c)

	var req saveRequest
	if err := c.Bind(&req); err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "invalid request body", err)
	}

	saved, err := h.svc.Save(ctx, userID, &req.TaskList)
	if err != nil {
		logger.ErrorLog(ctx, "failed to save task list for %s: %v", userID, err)
		return serviceutils.ResponseForError(c, "failed to save task list", err)
	}
	return serviceutils.ResponseSuccess(c, http.StatusOK, "task list saved", saved)
}

// SaveTasksHandler handles PUT /api/v1/task-lists/tasks
func (h *TaskListHandler) SaveTasksHandler(c echo.Context) error {
	ctx := c.Request().Context()
	userID := auth.UserID(c)

	var req saveTasksRequest
	if err := c.Bind(&req); err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "invalid request body", err)
	}
	if req.TaskListID == "" {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "taskListId is required", nil)
	}

	if err := h.svc.SaveTasks(ctx, userID, req.TaskListID, req.Tasks); err != nil {
		logger.ErrorLog(ctx, "failed to save tasks of %s for %s: %v", req.TaskListID, userID, err)
		return serviceutils.ResponseForError(c, "failed to save tasks", err)
	}
	return serviceutils.ResponseSuccess(c, http.StatusOK, "tasks saved", nil)
}

// RemoveHandler handles DELETE /api/v1/task-lists?tl=<id>
func (h *TaskListHandler) RemoveHandler(c echo.Context) error {
	ctx := c.Request().Context()
	userID := auth.UserID(c)

	id := c.QueryParam("tl")
	if id == "" {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "tl is required", nil)
	}

	if err := h.svc.Remove(ctx, userID, id); err != nil {
		logger.ErrorLog(ctx, "failed to remove task list %s for %s: %v", id, userID, err)
		return serviceutils.ResponseForError(c, "failed to remove task list", err)
	}
	return serviceutils.ResponseSuccess(c, http.StatusOK, "task list removed", nil)
}

// ExportTasksHandler handles GET /api/v1/task-lists/export?tl=<id>&format=csv|xlsx
func (h *TaskListHandler) ExportTasksHandler(c echo.Context) error {
	ctx := c.Request().Context()
	userID := auth.UserID(c)

	id := c.QueryParam("tl")
	if id == "" {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "tl is required", nil)
	}

	list, err := h.svc.Get(ctx, userID, id)
	if err != nil {
		logger.ErrorLog(ctx, "failed to export task list %s for %s: %v", id, userID, err)
		return serviceutils.ResponseForError(c, "failed to export task list", err)
	}

	format := c.QueryParam("format")
	if format == "" {
		format = "csv"
	}

	var (
		data        []byte
		contentType string
		filename    string
	)
	switch format {
	case "csv":
		data, err = taskexport.ToCSV(list.Tasks)
		contentType = "text/csv"
		filename = fmt.Sprintf("tasks_%s.csv", id)
	case "xlsx":
		data, err = taskexport.ToXLSX(list.Title, list.Tasks)
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
		filename = fmt.Sprintf("tasks_%s.xlsx", id)
	default:
		return serviceutils.ResponseError(c, http.StatusBadRequest, "unknown export format", nil)
	}
	if err != nil {
		logger.ErrorLog(ctx, "failed to render %s export of %s: %v", format, id, err)
		return serviceutils.ResponseError(c, http.StatusInternalServerError, "failed to render export", err)
	}

	c.Response().Header().Set(echo.HeaderContentType, contentType)
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Response().Header().Set(echo.HeaderContentLength, strconv.Itoa(len(data)))
	_, err = c.Response().Write(data)
	return err
}

// AddWatcherHandler handles POST /api/v1/task-lists/watchers
func (h *TaskListHandler) AddWatcherHandler(c echo.Context) error {
	ctx := c.Request().Context()
	userID := auth.UserID(c)

	var req watcherRequest
	if err := c.Bind(&req); err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "invalid request body", err)
	}
	if req.TaskListID == "" {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "taskListId is required", nil)
	}

	if err := h.svc.AddWatcher(ctx, userID, req.TaskListID); err != nil {
		logger.ErrorLog(ctx, "failed to add watcher %s to %s: %v", userID, req.TaskListID, err)
		return serviceutils.ResponseForError(c, "failed to add watcher", err)
	}
	return serviceutils.ResponseSuccess(c, http.StatusOK, "watcher added", nil)
}

// RemoveWatcherHandler handles DELETE /api/v1/task-lists/watchers?tl=<id>
func (h *TaskListHandler) RemoveWatcherHandler(c echo.Context) error {
	ctx := c.Request().Context()
	userID := auth.UserID(c)

	id := c.QueryParam("tl")
	if id == "" {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "tl is required", nil)
	}

	if err := h.svc.RemoveWatcher(ctx, userID, id); err != nil {
		logger.ErrorLog(ctx, "failed to remove watcher %s from %s: %v", userID, id, err)
		return serviceutils.ResponseForError(c, "failed to remove watcher", err)
	}
	return serviceutils.ResponseSuccess(c, http.StatusOK, "watcher removed", nil)
}
