package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"github.com/samirrijal/bubblepoint/internal/adapters/catalog"
	"github.com/samirrijal/bubblepoint/internal/core/domain"
	"github.com/samirrijal/bubblepoint/internal/core/thermo"
	"github.com/samirrijal/bubblepoint/internal/core/usecases"
	"github.com/samirrijal/bubblepoint/internal/pkg/config"
	"github.com/samirrijal/bubblepoint/internal/pkg/logging"
	"github.com/samirrijal/bubblepoint/internal/pkg/report"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "bubblepoint:", err)
		os.Exit(1)
	}
}

// run computes one bubble point (or an isotherm with --isotherm) and
// writes it to w as a table or JSON.
func run(args []string, w io.Writer) error {
	flags := pflag.NewFlagSet("bubblepoint", pflag.ContinueOnError)
	flags.SetOutput(io.Discard)
	temperature := flags.Float64P("temperature", "t", usecases.DefaultTemperature, "vaporization temperature in °C (0-100)")
	x1 := flags.Float64P("x1", "x", usecases.DefaultX1, "liquid mole fraction of component 1 (0-1)")
	isotherm := flags.IntP("isotherm", "i", 0, "sample the isotherm over this many x1 intervals instead")
	asJSON := flags.Bool("json", false, "print JSON instead of a table")
	flags.String("mixture.component1", "", "first component (default water)")
	flags.String("mixture.component2", "", "second component (default ethanol)")
	flags.Int("solver.max_iter", 0, "bisection iteration budget")
	flags.String("log.level", "", "log level")
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			fmt.Fprintln(w, "usage: bubblepoint [flags]")
			flags.SetOutput(w)
			flags.PrintDefaults()
			return nil
		}
		return err
	}

	cfg, err := config.LoadWithFlags("bubblepoint-cli", flags)
	if err != nil {
		return err
	}
	// Logs go to stderr so stdout stays a clean table.
	slog.SetDefault(logging.New(os.Stderr, cfg.Log.Level, "text"))

	svc := usecases.NewBubblePointService(catalog.New(), thermo.NewSolver(cfg.Solver.Options()), nil, nil).
		WithDefaultMixture(domain.ComponentID(cfg.Mixture.Component1), domain.ComponentID(cfg.Mixture.Component2))
	ctx := context.Background()

	if *isotherm > 0 {
		if err := usecases.ValidateTemperature(*temperature); err != nil {
			return err
		}
		iso, err := svc.Isotherm(ctx, *temperature, *isotherm, "", "")
		if err != nil {
			return err
		}
		if *asJSON {
			return json.NewEncoder(w).Encode(iso)
		}
		return report.WriteIsotherm(w, iso)
	}

	req := domain.BubblePointRequest{Temperature: *temperature, X1: *x1}
	if err := usecases.ValidateOperatingRange(req); err != nil {
		return err
	}
	result, err := svc.Calculate(ctx, req)
	if err != nil {
		return err
	}
	if *asJSON {
		return json.NewEncoder(w).Encode(result)
	}
	return report.WriteTable(w, result)
}
