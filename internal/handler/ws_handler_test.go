package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gehrmanng/taskplanner/internal/auth"
	"github.com/gehrmanng/taskplanner/internal/domain"
	"github.com/gehrmanng/taskplanner/internal/handler"
	"github.com/gehrmanng/taskplanner/internal/notify"
)

func startWSServer(t *testing.T, svc *stubService) (*httptest.Server, *notify.Hub) {
	t.Helper()

	hub := notify.NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)

	e := echo.New()
	wsHandler := handler.NewWSHandler(svc, hub)
	e.GET("/ws", wsHandler.SubscribeHandler, func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth.SetUserID(c, "u1")
			return next(c)
		}
	})

	server := httptest.NewServer(e)
	t.Cleanup(server.Close)
	return server, hub
}

func TestSubscribeReceivesPublishedEvents(t *testing.T) {
	svc := &stubService{list: &domain.TaskList{Owner: "u1", Title: "Groceries"}}
	server, hub := startWSServer(t, svc)

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws?tl=list-1"
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()
	defer resp.Body.Close()

	require.Eventually(t, func() bool {
		return hub.Subscribers("list-1") == 1
	}, time.Second, 5*time.Millisecond)

	hub.Publish("list-1", "tasks.updated", map[string]any{"taskListId": "list-1"})

	conn.SetReadDeadline(time.Now().Add(time.Second))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var event notify.Event
	require.NoError(t, json.Unmarshal(data, &event))
	assert.Equal(t, "tasks.updated", event.Event)
	assert.Equal(t, "list-1", event.TaskListID)
}

func TestSubscribeDeniedWithoutVisibility(t *testing.T) {
	svc := &stubService{err: domain.ErrForbidden}
	server, _ := startWSServer(t, svc)

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws?tl=list-1"
	_, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}
