package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/samirrijal/bubblepoint/internal/core/domain"
)

func TestRun_Table(t *testing.T) {
	var buf bytes.Buffer
	if err := run([]string{"-t", "50", "-x", "0.5"}, &buf); err != nil {
		t.Fatalf("run: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"50.00", "0.50", "0.1214", "0.0285", "0.0750"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %s:\n%s", want, out)
		}
	}
}

func TestRun_JSON(t *testing.T) {
	var buf bytes.Buffer
	if err := run([]string{"--temperature=100", "--x1=1", "--json"}, &buf); err != nil {
		t.Fatalf("run: %v", err)
	}
	var r domain.EquilibriumResult
	if err := json.Unmarshal(buf.Bytes(), &r); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}
	if r.PVap != r.PSat1 || r.Component1 != domain.Water {
		t.Errorf("expected pure water result, got %+v", r)
	}
}

func TestRun_SwappedMixture(t *testing.T) {
	var buf bytes.Buffer
	err := run([]string{"--json", "--mixture.component1=ethanol", "--mixture.component2=water", "-x", "1"}, &buf)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	var r domain.EquilibriumResult
	_ = json.Unmarshal(buf.Bytes(), &r)
	if r.Component1 != domain.Ethanol {
		t.Errorf("expected ethanol first, got %s", r.Component1)
	}
}

func TestRun_Isotherm(t *testing.T) {
	var buf bytes.Buffer
	if err := run([]string{"-t", "25", "-i", "4"}, &buf); err != nil {
		t.Fatalf("run: %v", err)
	}
	// title + header + 5 samples
	if lines := strings.Count(buf.String(), "\n"); lines != 7 {
		t.Errorf("expected 7 lines, got %d:\n%s", lines, buf.String())
	}
}

func TestRun_OutOfRange(t *testing.T) {
	tests := [][]string{
		{"-t", "150"},
		{"-x", "1.2"},
		{"-t", "-10", "-i", "3"},
		{"--mixture.component1=mercury"},
	}
	for _, args := range tests {
		var buf bytes.Buffer
		if err := run(args, &buf); err == nil {
			t.Errorf("run(%v): expected error", args)
		}
	}
}

func TestRun_Help(t *testing.T) {
	var buf bytes.Buffer
	if err := run([]string{"--help"}, &buf); err != nil {
		t.Fatalf("help should not fail: %v", err)
	}
	if !strings.Contains(buf.String(), "--temperature") {
		t.Errorf("expected flag listing, got:\n%s", buf.String())
	}
}
