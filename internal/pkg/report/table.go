// Package report renders equilibrium results as plain-text tables.
package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/samirrijal/bubblepoint/internal/core/domain"
)

// Row is one labelled line of the results table.
type Row struct {
	Label string
	Value string
}

func componentName(id domain.ComponentID) string {
	if c, err := domain.LookupComponent(id); err == nil {
		return c.Name
	}
	return string(id)
}

// Rows returns the results table: temperature and compositions with two
// decimals, pressures in bar with four.
func Rows(r *domain.EquilibriumResult) []Row {
	n1, n2 := componentName(r.Component1), componentName(r.Component2)
	return []Row{
		{"Vaporization temperature (°C)", fmt.Sprintf("%.2f", r.TV)},
		{"Mole fraction of component 1 (x1)", fmt.Sprintf("%.2f", r.X1)},
		{"Mole fraction of component 2 (x2)", fmt.Sprintf("%.2f", r.X2)},
		{fmt.Sprintf("Saturation pressure of component 1 (%s) (bar)", n1), fmt.Sprintf("%.4f", r.PSat1)},
		{fmt.Sprintf("Saturation pressure of component 2 (%s) (bar)", n2), fmt.Sprintf("%.4f", r.PSat2)},
		{"Lower pressure bound (p_min) (bar)", fmt.Sprintf("%.4f", r.PMin)},
		{"Upper pressure bound (p_max) (bar)", fmt.Sprintf("%.4f", r.PMax)},
		{"Estimated vaporization pressure (bar)", fmt.Sprintf("%.4f", r.PVap)},
	}
}

// WriteTable writes r as a two-column table.
func WriteTable(w io.Writer, r *domain.EquilibriumResult) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Quantity\tValue")
	for _, row := range Rows(r) {
		fmt.Fprintf(tw, "%s\t%s\n", row.Label, row.Value)
	}
	return tw.Flush()
}

// WriteIsotherm writes one line per sampled composition.
func WriteIsotherm(w io.Writer, iso *domain.Isotherm) error {
	if _, err := fmt.Fprintf(w, "# %s/%s at %.2f °C\n",
		componentName(iso.Component1), componentName(iso.Component2), iso.Temperature); err != nil {
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "x1\ty1\tp_min\tp_max\tp_vap\t")
	for _, p := range iso.Points {
		fmt.Fprintf(tw, "%.2f\t%.4f\t%.4f\t%.4f\t%.4f\t\n", p.X1, p.Y1, p.PMin, p.PMax, p.PVap)
	}
	return tw.Flush()
}
