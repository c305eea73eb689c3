package command

import (
	"fmt"
	"log/slog"

	"github.com/pixil98/corvax-lab/internal/driver"
	"github.com/pixil98/corvax-lab/internal/messaging"
	"github.com/pixil98/corvax-lab/internal/sim"
	"github.com/pixil98/corvax-lab/internal/terminal"
	"github.com/pixil98/go-service"
)

// WorkerBuilder returns a worker builder whose terminal calls quit when the
// player leaves.
func WorkerBuilder(quit func()) func(config interface{}) (service.WorkerList, error) {
	return func(config interface{}) (service.WorkerList, error) {
		cfg, ok := config.(*Config)
		if !ok {
			return nil, fmt.Errorf("unable to cast config")
		}
		return buildWorkers(cfg, quit)
	}
}

func buildWorkers(cfg *Config, quit func()) (service.WorkerList, error) {
	handler, err := cfg.Log.buildHandler()
	if err != nil {
		return nil, fmt.Errorf("creating log handler: %w", err)
	}
	slog.SetDefault(slog.New(handler))

	client, err := cfg.Server.buildClient()
	if err != nil {
		return nil, fmt.Errorf("creating game server client: %w", err)
	}

	w, err := cfg.Wallet.buildWallet()
	if err != nil {
		return nil, fmt.Errorf("creating wallet: %w", err)
	}

	catalog, err := cfg.Catalog.buildCatalog()
	if err != nil {
		return nil, fmt.Errorf("creating catalog: %w", err)
	}

	termOpts, err := cfg.Terminal.options()
	if err != nil {
		return nil, fmt.Errorf("creating terminal options: %w", err)
	}

	workers := service.WorkerList{}
	feedbackLog := terminal.NewFeedbackLog(cfg.Terminal.LogSize)

	// Without a bus the log is fed directly.
	var sink sim.FeedbackSink = feedbackLog
	if cfg.Nats.Enabled {
		ns, err := cfg.Nats.buildNatsServer()
		if err != nil {
			return nil, fmt.Errorf("creating nats server: %w", err)
		}
		workers["nats"] = ns
		sink = messaging.NewFeedbackPublisher(ns)
		termOpts = append(termOpts, terminal.WithFeedbackBus(ns, ns.Ready()))
	}

	simulation := sim.NewSimulation(client, w,
		sim.WithCatalog(catalog),
		sim.WithFeedbackSink(sink),
	)
	simulation.Login()

	frame, err := parseInterval(cfg.FrameInterval, driver.DefaultFrameInterval)
	if err != nil {
		return nil, fmt.Errorf("parsing frame_interval: %w", err)
	}
	effects, err := parseInterval(cfg.EffectsInterval, driver.DefaultEffectsInterval)
	if err != nil {
		return nil, fmt.Errorf("parsing effects_interval: %w", err)
	}

	workers["driver"] = driver.NewDriver(
		driver.WithSchedule(frame, simulation),
		driver.WithSchedule(effects, simulation.Effects()),
	)

	termOpts = append(termOpts,
		terminal.WithFeedbackLog(feedbackLog),
		terminal.WithFrameInterval(frame),
		terminal.WithOnQuit(quit),
	)
	workers["terminal"] = terminal.NewTerminal(simulation, termOpts...)

	return workers, nil
}
