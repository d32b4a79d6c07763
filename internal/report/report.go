// Package report renders evaluation results for the command line:
// a line-item summary table, a bare E_med value for scripting, a debug
// dump with table-selection diagnostics, and JSON.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/murzabaevb/dttb/internal/fieldstrength"
)

// Styles for the text renderers
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	keyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	resultStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("46"))

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))
)

// unit maps result keys to the unit printed after the value. Keys
// without a unit (labels, mu) are absent.
var unit = map[string]string{
	"freq_mhz":           "MHz",
	"cn_required_db":     "dB",
	"pn_dbw":             "dBW",
	"ps_min_dbw":         "dBW",
	"g_dbd":              "dBd",
	"lf_db":              "dB",
	"aa_dbm2":            "dBm²",
	"phi_min_dbw_per_m2": "dB(W/m²)",
	"emin_dbuv_per_m":    "dB(µV/m)",
	"pmmn_db":            "dB",
	"lh_db":              "dB",
	"lb_db":              "dB",
	"sigma_total_db":     "dB",
	"cl_db":              "dB",
	"emed_dbuv_per_m":    "dB(µV/m)",
}

// WriteSummary writes the full line-item table in calculation order,
// ending with the E_med result row.
func WriteSummary(w io.Writer, r *fieldstrength.Result) {
	fmt.Fprintln(w, titleStyle.Render("DVB-T2 minimum field strength"))
	fmt.Fprintln(w, strings.Repeat("─", 48))

	fields := r.Fields()
	for _, f := range fields {
		line := fmt.Sprintf("%-22s %s", f.Key, formatValue(f))
		if f.Key == "emed_dbuv_per_m" {
			fmt.Fprintln(w, strings.Repeat("─", 48))
			fmt.Fprintln(w, resultStyle.Render(line))
			continue
		}
		fmt.Fprintln(w, keyStyle.Render(line))
	}
}

// WriteEmed writes only the final figure, one value per line, for use
// in shell pipelines.
func WriteEmed(w io.Writer, r *fieldstrength.Result) {
	fmt.Fprintf(w, "%.2f  # E_med [dB(uV/m)]\n", r.EmedDBuVPerM)
}

// WriteDebug writes the summary plus the table-selection diagnostics
// that explain where each operand came from.
func WriteDebug(w io.Writer, r *fieldstrength.Result, d fieldstrength.Diagnostics) {
	WriteSummary(w, r)

	fmt.Fprintln(w)
	fmt.Fprintln(w, sectionStyle.Render("Table selection"))
	fmt.Fprintf(w, "%-22s %v\n", "fading_model", d.Fading)
	fmt.Fprintf(w, "%-22s %v\n", "gain_category", d.Gain)
	fmt.Fprintf(w, "%-22s %v\n", "mmn_category", d.MMN)
	fmt.Fprintf(w, "%-22s %v\n", "height_loss_applies", d.HeightLossApplies)
	fmt.Fprintf(w, "%-22s %v\n", "building_loss_applies", d.BuildingLossApplies)

	fmt.Fprintln(w)
	fmt.Fprintln(w, sectionStyle.Render("Operands"))
	fmt.Fprintf(w, "%-22s %.2f dB\n", "noise_figure", d.NoiseFigureDB)
	fmt.Fprintf(w, "%-22s %.3e Hz\n", "noise_bandwidth", d.NoiseBandwidthHz)
	fmt.Fprintf(w, "%-22s %.2f dB\n", "sigma_building", d.SigmaBuildingDB)
	fmt.Fprintf(w, "%-22s %.2f dB\n", "sigma_macro", d.SigmaMacroDB)
	fmt.Fprintf(w, "%-22s %.2f\n", "location_probability", d.LocationProbability)

	if len(d.GainAnchors) > 0 {
		fmt.Fprintf(w, "%-22s %s\n", "gain_anchors", formatAnchors(d.GainAnchors))
	}
	if len(d.HeightLossAnchors) > 0 {
		fmt.Fprintf(w, "%-22s %s\n", "height_loss_anchors", formatAnchors(d.HeightLossAnchors))
	}
}

func formatAnchors(pts []fieldstrength.Point) string {
	parts := make([]string, len(pts))
	for i, p := range pts {
		parts[i] = fmt.Sprintf("(%g MHz, %g dB)", p.Key, p.Value)
	}
	return strings.Join(parts, " ")
}

// WriteJSON writes the result as indented JSON.
func WriteJSON(w io.Writer, r *fieldstrength.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

func formatValue(f fieldstrength.Field) string {
	switch v := f.Value.(type) {
	case float64:
		s := fmt.Sprintf("%10.3f", v)
		if u, ok := unit[f.Key]; ok {
			return s + " " + u
		}
		return s
	default:
		return fmt.Sprintf("%10v", v)
	}
}
