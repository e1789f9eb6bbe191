package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/pflag"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/worker"

	"github.com/samirrijal/bubblepoint/internal/adapters/catalog"
	natsadapter "github.com/samirrijal/bubblepoint/internal/adapters/nats"
	"github.com/samirrijal/bubblepoint/internal/core/domain"
	"github.com/samirrijal/bubblepoint/internal/core/ports"
	"github.com/samirrijal/bubblepoint/internal/core/thermo"
	"github.com/samirrijal/bubblepoint/internal/core/usecases"
	"github.com/samirrijal/bubblepoint/internal/pkg/config"
	"github.com/samirrijal/bubblepoint/internal/pkg/logging"
	"github.com/samirrijal/bubblepoint/internal/pkg/report"
	"github.com/samirrijal/bubblepoint/internal/workflows"
)

// sweeper runs the isotherm worker. With --start it instead submits one
// sweep to the task queue and prints the resulting table.
func main() {
	flags := pflag.NewFlagSet("sweeper", pflag.ExitOnError)
	start := flags.Bool("start", false, "start an isotherm workflow instead of running the worker")
	temperature := flags.Float64("t", usecases.DefaultTemperature, "temperature in °C for --start")
	points := flags.Int("points", usecases.DefaultIsothermPoints, "number of x1 intervals for --start")
	publish := flags.Bool("publish", true, "publish the finished isotherm to NATS")
	flags.String("temporal.host_port", "", "Temporal frontend address")
	flags.String("temporal.task_queue", "", "Temporal task queue")
	_ = flags.Parse(os.Args[1:])

	cfg, err := config.LoadWithFlags("bubblepoint-sweeper", flags)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logging.Setup(cfg.Log.Level, cfg.Log.Format)

	c, err := client.Dial(client.Options{
		HostPort:  cfg.Temporal.HostPort,
		Namespace: cfg.Temporal.Namespace,
		Logger:    slog.Default(),
	})
	if err != nil {
		log.Fatalf("temporal client: %v", err)
	}
	defer c.Close()

	if *start {
		runSweep(c, cfg, workflows.IsothermInput{
			Temperature: *temperature,
			Points:      *points,
			Component1:  domain.ComponentID(cfg.Mixture.Component1),
			Component2:  domain.ComponentID(cfg.Mixture.Component2),
			Publish:     *publish,
		})
		return
	}

	var publisher ports.ResultPublisher
	if cfg.NATS.URL != "" {
		pub, err := natsadapter.NewPublisher(cfg.NATS.URL)
		if err != nil {
			slog.Warn("nats unavailable, isotherms will not be published", "error", err)
		} else {
			publisher = pub
			defer pub.Close()
		}
	}

	svc := usecases.NewBubblePointService(catalog.New(), thermo.NewSolver(cfg.Solver.Options()), nil, publisher).
		WithDefaultMixture(domain.ComponentID(cfg.Mixture.Component1), domain.ComponentID(cfg.Mixture.Component2))

	w := worker.New(c, cfg.Temporal.TaskQueue, worker.Options{})
	w.RegisterWorkflow(workflows.IsothermWorkflow)
	(&workflows.IsothermActivities{BubblePoints: svc}).Register(w)

	slog.Info("sweeper worker started", "task_queue", cfg.Temporal.TaskQueue)
	if err := w.Run(worker.InterruptCh()); err != nil {
		log.Fatalf("worker: %v", err)
	}
}

func runSweep(c client.Client, cfg *config.Config, input workflows.IsothermInput) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	run, err := c.ExecuteWorkflow(ctx, client.StartWorkflowOptions{
		TaskQueue: cfg.Temporal.TaskQueue,
	}, workflows.IsothermWorkflow, input)
	if err != nil {
		log.Fatalf("start workflow: %v", err)
	}
	slog.Info("isotherm workflow started", "workflow_id", run.GetID(), "run_id", run.GetRunID())

	var iso domain.Isotherm
	if err := run.Get(ctx, &iso); err != nil {
		log.Fatalf("isotherm workflow: %v", err)
	}
	if err := report.WriteIsotherm(os.Stdout, &iso); err != nil {
		log.Fatalf("write table: %v", err)
	}
}
