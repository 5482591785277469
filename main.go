package main

import (
	"context"

	"github.com/gehrmanng/taskplanner/internal/bootstrap"
	"github.com/gehrmanng/taskplanner/internal/logger"
)

func main() {
	ctx := context.Background()

	app := bootstrap.NewApp()
	if err := app.Initialize(ctx); err != nil {
		logger.ErrorLog(ctx, "failed to initialize application: %v", err)
		panic(err)
	}

	if err := app.Run(); err != nil {
		logger.ErrorLog(ctx, "application failed: %v", err)
		panic(err)
	}
}
