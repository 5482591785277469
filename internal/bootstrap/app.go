package bootstrap

import (
	"context"
	"fmt"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/gehrmanng/taskplanner/internal/auth"
	"github.com/gehrmanng/taskplanner/internal/config"
	"github.com/gehrmanng/taskplanner/internal/handler"
	"github.com/gehrmanng/taskplanner/internal/logger"
	"github.com/gehrmanng/taskplanner/internal/notify"
	"github.com/gehrmanng/taskplanner/internal/repository"
	"github.com/gehrmanng/taskplanner/internal/service"
)

type App struct {
	Echo *echo.Echo
	DB   *mongo.Database
	Hub  *notify.Hub

	dbCleanup func()
	hubCancel context.CancelFunc
}

func NewApp() *App {
	return &App{
		Echo: echo.New(),
	}
}

func (a *App) Initialize(ctx context.Context) error {
	if err := config.LoadEnvConfig(); err != nil {
		return fmt.Errorf("failed to load env config: %w", err)
	}

	logger.InitLogging(config.DefaultEnvConfig.LOG_FILE_PATH)
	logger.InfoLog(ctx, "configuration loaded")

	db, cleanup, err := repository.Connect(ctx, config.DefaultEnvConfig.MONGO_URI, config.DefaultEnvConfig.MONGO_DB)
	if err != nil {
		return fmt.Errorf("failed to initialize MongoDB: %w", err)
	}
	a.DB = db
	a.dbCleanup = cleanup
	logger.InfoLog(ctx, "connected to MongoDB database %s", config.DefaultEnvConfig.MONGO_DB)

	a.Hub = notify.NewHub()
	hubCtx, cancel := context.WithCancel(context.Background())
	a.hubCancel = cancel
	go a.Hub.Run(hubCtx)

	repo := repository.NewTaskListRepository(db)
	resolver := repository.NewUserResolver(db)
	svc := service.NewTaskListService(repo, resolver, a.Hub)
	tlHandler := handler.NewTaskListHandler(svc)
	wsHandler := handler.NewWSHandler(svc, a.Hub)

	a.RegisterMiddlewares()
	a.RegisterRoutes(tlHandler, wsHandler)

	return nil
}

func (a *App) RegisterMiddlewares() {
	a.Echo.Use(middleware.Logger())
	a.Echo.Use(middleware.Recover())

	if origins := config.DefaultEnvConfig.CORS_ORIGINS; origins != "" {
		a.Echo.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins: strings.Split(origins, ","),
		}))
	} else {
		a.Echo.Use(middleware.CORS())
	}
}

func (a *App) RegisterRoutes(tlHandler *handler.TaskListHandler, wsHandler *handler.WSHandler) {
	authMW := auth.Middleware(config.DefaultEnvConfig.JWT_SECRET)

	api := a.Echo.Group("/api/v1", authMW)
	api.GET("/task-lists", tlHandler.ListHandler)
	api.GET("/task-lists/shared", tlHandler.ListSharedHandler)
	api.POST("/task-lists", tlHandler.SaveHandler)
	api.PUT("/task-lists/tasks", tlHandler.SaveTasksHandler)
	api.DELETE("/task-lists", tlHandler.RemoveHandler)
	api.GET("/task-lists/export", tlHandler.ExportTasksHandler)
	api.POST("/task-lists/watchers", tlHandler.AddWatcherHandler)
	api.DELETE("/task-lists/watchers", tlHandler.RemoveWatcherHandler)

	a.Echo.GET("/ws", wsHandler.SubscribeHandler, authMW)
}

func (a *App) Run() error {
	defer a.Shutdown()
	return a.Echo.Start(":" + config.DefaultEnvConfig.APP_PORT)
}

func (a *App) Shutdown() {
	if a.hubCancel != nil {
		a.hubCancel()
	}
	if a.dbCleanup != nil {
		a.dbCleanup()
	}
}
