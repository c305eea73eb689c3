package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/pixil98/corvax-lab/cmd/corvax/command"
	"github.com/pixil98/go-service"
)

func main() {
	ctx, quit := context.WithCancel(context.Background())
	defer quit()

	app, err := service.NewApp(&command.Config{}, command.WorkerBuilder(quit))
	if err != nil {
		slog.Error("creating application", "error", err)
		os.Exit(1)
	}

	err = app.Run(ctx)
	if err != nil {
		slog.Error("running application", "error", err)
		os.Exit(1)
	}

	slog.Info("exiting")
}
