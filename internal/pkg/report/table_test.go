package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/samirrijal/bubblepoint/internal/core/domain"
)

var sample = &domain.EquilibriumResult{
	Component1: domain.Water, Component2: domain.Ethanol,
	TV: 50, X1: 0.5, X2: 0.5,
	PSat1: 0.12144722115838989, PSat2: 0.02854752975787515,
	PMin: 0.02854752975787515, PMax: 0.07499737545813252, PVap: 0.07499737545813252,
}

func TestRows(t *testing.T) {
	rows := Rows(sample)
	if len(rows) != 8 {
		t.Fatalf("expected 8 rows, got %d", len(rows))
	}
	want := []string{"50.00", "0.50", "0.50", "0.1214", "0.0285", "0.0285", "0.0750", "0.0750"}
	for i, w := range want {
		if rows[i].Value != w {
			t.Errorf("row %d (%s): expected %s, got %s", i, rows[i].Label, w, rows[i].Value)
		}
	}
	if !strings.Contains(rows[3].Label, "Water") || !strings.Contains(rows[4].Label, "Ethanol") {
		t.Errorf("component names missing from labels: %q / %q", rows[3].Label, rows[4].Label)
	}
}

func TestRows_UnknownComponentFallsBackToID(t *testing.T) {
	r := *sample
	r.Component2 = "acetone"
	if rows := Rows(&r); !strings.Contains(rows[4].Label, "acetone") {
		t.Errorf("expected id in label, got %q", rows[4].Label)
	}
}

func TestWriteTable(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteTable(&buf, sample); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 9 {
		t.Fatalf("expected header plus 8 rows, got %d lines:\n%s", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[0], "Quantity") || !strings.HasSuffix(lines[8], "0.0750") {
		t.Errorf("unexpected table:\n%s", buf.String())
	}
}

func TestWriteIsotherm(t *testing.T) {
	iso := &domain.Isotherm{
		Component1: domain.Water, Component2: domain.Ethanol, Temperature: 50,
		Points: []domain.IsothermPoint{
			{X1: 0, PMin: 0.0285, PMax: 0.0285, PVap: 0.0285},
			{X1: 1, Y1: 1, PMin: 0.1214, PMax: 0.1214, PVap: 0.1214},
		},
	}
	var buf bytes.Buffer
	if err := WriteIsotherm(&buf, iso); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "Water/Ethanol at 50.00") || strings.Count(out, "\n") != 4 {
		t.Errorf("unexpected isotherm table:\n%s", out)
	}
}
