package config_test

import (
	"strings"
	"testing"

	"github.com/spf13/pflag"

	"github.com/samirrijal/bubblepoint/internal/pkg/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load("bubblepoint-test")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("expected port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Solver.MaxIter != 100 || cfg.Solver.XTol != 2e-12 {
		t.Errorf("unexpected solver defaults: %+v", cfg.Solver)
	}
	if cfg.Mixture.Component1 != "water" || cfg.Mixture.Component2 != "ethanol" {
		t.Errorf("unexpected mixture defaults: %+v", cfg.Mixture)
	}
	if cfg.Telemetry.ServiceName != "bubblepoint-test" {
		t.Errorf("expected service name from argument, got %s", cfg.Telemetry.ServiceName)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("BUBBLEPOINT_SOLVER_MAX_ITER", "250")
	t.Setenv("BUBBLEPOINT_MIXTURE_COMPONENT1", "ethanol")
	t.Setenv("BUBBLEPOINT_MIXTURE_COMPONENT2", "water")

	cfg, err := config.Load("bubblepoint-test")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Solver.MaxIter != 250 {
		t.Errorf("expected max_iter 250, got %d", cfg.Solver.MaxIter)
	}
	if cfg.Mixture.Component1 != "ethanol" {
		t.Errorf("expected component1 ethanol, got %s", cfg.Mixture.Component1)
	}
}

func TestLoad_FlagOverride(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.Int("server.port", 8080, "")
	if err := fs.Parse([]string{"--server.port=9191"}); err != nil {
		t.Fatal(err)
	}

	cfg, err := config.LoadWithFlags("bubblepoint-test", fs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != 9191 {
		t.Errorf("expected port 9191, got %d", cfg.Server.Port)
	}
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	t.Setenv("BUBBLEPOINT_SERVER_PORT", "70000")
	t.Setenv("BUBBLEPOINT_MIXTURE_COMPONENT2", "water")

	_, err := config.Load("bubblepoint-test")
	if err == nil {
		t.Fatal("expected validation error")
	}
	msg := err.Error()
	for _, want := range []string{"server.port", "mixture"} {
		if !strings.Contains(msg, want) {
			t.Errorf("expected %q in error, got:\n%s", want, msg)
		}
	}
}
