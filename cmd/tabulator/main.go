package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/spf13/pflag"

	natsadapter "github.com/samirrijal/bubblepoint/internal/adapters/nats"
	"github.com/samirrijal/bubblepoint/internal/core/domain"
	"github.com/samirrijal/bubblepoint/internal/pkg/config"
	"github.com/samirrijal/bubblepoint/internal/pkg/logging"
	"github.com/samirrijal/bubblepoint/internal/pkg/report"
)

// tabulator follows the published results stream and prints a results
// table for every calculation and every isotherm sweep.
func main() {
	flags := pflag.NewFlagSet("tabulator", pflag.ExitOnError)
	durable := flags.String("durable", "", "JetStream durable consumer name (empty: ephemeral)")
	flags.String("nats.url", "", "NATS server URL")
	_ = flags.Parse(os.Args[1:])

	cfg, err := config.LoadWithFlags("bubblepoint-tabulator", flags)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logging.Setup(cfg.Log.Level, cfg.Log.Format)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sub, err := natsadapter.NewSubscriber(cfg.NATS.URL, *durable)
	if err != nil {
		log.Fatalf("nats: %v", err)
	}
	defer sub.Close()

	out := bufio.NewWriter(os.Stdout)
	var mu sync.Mutex
	err = sub.SubscribeResults(ctx, func(ctx context.Context, r *domain.EquilibriumResult) error {
		mu.Lock()
		defer mu.Unlock()
		fmt.Fprintf(out, "== %s/%s ==\n", r.Component1, r.Component2)
		if err := report.WriteTable(out, r); err != nil {
			return err
		}
		fmt.Fprintln(out)
		return out.Flush()
	})
	if err != nil {
		log.Fatalf("subscribe results: %v", err)
	}
	err = sub.SubscribeIsotherms(ctx, func(ctx context.Context, iso *domain.Isotherm) error {
		mu.Lock()
		defer mu.Unlock()
		if err := report.WriteIsotherm(out, iso); err != nil {
			return err
		}
		fmt.Fprintln(out)
		return out.Flush()
	})
	if err != nil {
		log.Fatalf("subscribe isotherms: %v", err)
	}

	slog.Info("tabulator listening", "subjects", []string{natsadapter.ResultSubjects, natsadapter.IsothermSubjects})

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("received signal, shutting down tabulator", "signal", sig.String())
}
