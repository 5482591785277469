package handler

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/gehrmanng/taskplanner/internal/auth"
	"github.com/gehrmanng/taskplanner/internal/logger"
	"github.com/gehrmanng/taskplanner/internal/notify"
	"github.com/gehrmanng/taskplanner/internal/service"
	"github.com/gehrmanng/taskplanner/internal/service/serviceutils"
)

type WSHandler struct {
	svc      service.TaskListService
	hub      *notify.Hub
	upgrader websocket.Upgrader
}

func NewWSHandler(svc service.TaskListService, hub *notify.Hub) *WSHandler {
	return &WSHandler{
		svc: svc,
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// SubscribeHandler handles GET /ws?tl=<id>. The caller must be able to view
// the list; the visibility check runs before the upgrade so failures still
// produce a JSON error response.
func (h *WSHandler) SubscribeHandler(c echo.Context) error {
	ctx := c.Request().Context()
	userID := auth.UserID(c)

	id := c.QueryParam("tl")
	if id == "" {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "tl is required", nil)
	}

	if _, err := h.svc.Get(ctx, userID, id); err != nil {
		logger.ErrorLog(ctx, "subscribe to %s denied for %s: %v", id, userID, err)
		return serviceutils.ResponseForError(c, "cannot subscribe to task list", err)
	}

	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// Upgrade already wrote an HTTP error to the client.
		logger.ErrorLog(ctx, "websocket upgrade failed for %s: %v", userID, err)
		return nil
	}

	client := notify.NewClient(h.hub, conn, userID, id)
	client.Serve()
	return nil
}
