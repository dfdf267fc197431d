// SPDX-License-Identifier: MIT
// Package: fuzzar/report
//
// report.go — tabular rows, renderers, top-N listing and summary.

package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/katalvlaran/fuzzar/fuzzify"
	"github.com/katalvlaran/fuzzar/miner"
)

// ErrUnknownFormat is returned by ParseFormat for unsupported names.
var ErrUnknownFormat = errors.New("report: unknown format")

// DefaultTop is the listing length PrintTop uses when n ≤ 0.
const DefaultTop = 10

// Format selects a table rendering.
type Format int

const (
	Text Format = iota
	Markdown
	CSV
	HTML
	JSON
)

var formatNames = [...]string{"text", "markdown", "csv", "html", "json"}

// String returns the format name.
func (f Format) String() string {
	if f >= 0 && int(f) < len(formatNames) {
		return formatNames[f]
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// ParseFormat resolves a format name; "" means Text.
func ParseFormat(s string) (Format, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return Text, nil
	}
	for i, name := range formatNames {
		if s == name {
			return Format(i), nil
		}
	}
	return Text, fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// Row is the flat, printable form of a rule: items joined with " & ".
type Row struct {
	Antecedent      string  `json:"antecedent"`
	Consequent      string  `json:"consequent"`
	Support         float64 `json:"support"`
	Confidence      float64 `json:"confidence"`
	CertaintyFactor float64 `json:"certainty_factor"`
}

// Rows ranks a copy of rules and flattens it.
func Rows(rules []miner.Rule) []Row {
	ranked := rank(rules)
	out := make([]Row, len(ranked))
	for i, r := range ranked {
		out[i] = Row{
			Antecedent:      join(r.Antecedent, " & "),
			Consequent:      join(r.Consequent, " & "),
			Support:         r.Support,
			Confidence:      r.Confidence,
			CertaintyFactor: r.CertaintyFactor,
		}
	}
	return out
}

// Render writes rules to w as a table in format f.
func Render(w io.Writer, rules []miner.Rule, f Format) error {
	rows := Rows(rules)
	if f == JSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	}

	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Antecedent", "Consequent", "Support", "Confidence", "CF"})
	for _, r := range rows {
		t.AppendRow(table.Row{r.Antecedent, r.Consequent, num(r.Support), num(r.Confidence), num(r.CertaintyFactor)})
	}
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
	})

	var out string
	switch f {
	case Text:
		out = t.Render()
	case Markdown:
		out = t.RenderMarkdown()
	case CSV:
		out = t.RenderCSV()
	case HTML:
		out = t.RenderHTML()
	default:
		return fmt.Errorf("Render: %w: %s", ErrUnknownFormat, f)
	}
	_, err := io.WriteString(w, out+"\n")
	return err
}

// PrintTop writes the n best rules as numbered lines:
//
//	1. IF A is 'Low' AND B is 'High' => C is 'Low', support=0.50, conf=0.80, CF=0.60
func PrintTop(w io.Writer, rules []miner.Rule, n int) error {
	if n <= 0 {
		n = DefaultTop
	}
	ranked := rank(rules)
	if len(ranked) > n {
		ranked = ranked[:n]
	}

	if _, err := fmt.Fprintf(w, "Top %d fuzzy rules (ranked by CF):\n\n", n); err != nil {
		return err
	}
	for i, r := range ranked {
		_, err := fmt.Fprintf(w, "%d. IF %s => %s, support=%.2f, conf=%.2f, CF=%.2f\n",
			i+1, clause(r.Antecedent), clause(r.Consequent), r.Support, r.Confidence, r.CertaintyFactor)
		if err != nil {
			return err
		}
	}
	return nil
}

// WriteSummary writes the aggregates of s.
func WriteSummary(w io.Writer, s miner.Summary) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Rules found: %d\n", s.Count)
	if s.Count > 0 {
		fmt.Fprintf(&b, "Support          - mean: %.3f, min: %.3f, max: %.3f\n", s.SupportMean, s.SupportMin, s.SupportMax)
		fmt.Fprintf(&b, "Confidence       - mean: %.3f, min: %.3f, max: %.3f\n", s.ConfidenceMean, s.ConfidenceMin, s.ConfidenceMax)
		fmt.Fprintf(&b, "Certainty factor - mean: %.3f\n", s.CertaintyFactorMean)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func rank(rules []miner.Rule) []miner.Rule {
	out := make([]miner.Rule, len(rules))
	copy(out, rules)
	miner.Rank(out)
	return out
}

// join renders items as A='Low' & B='High'.
func join(items []fuzzify.Item, sep string) string {
	parts := make([]string, len(items))
	for i, it := range items {
		parts[i] = it.String()
	}
	return strings.Join(parts, sep)
}

// clause renders items as A is 'Low' AND B is 'High'.
func clause(items []fuzzify.Item) string {
	parts := make([]string, len(items))
	for i, it := range items {
		parts[i] = fmt.Sprintf("%s is '%s'", it.Variable, it.Label)
	}
	return strings.Join(parts, " AND ")
}

func num(v float64) string { return fmt.Sprintf("%.3f", v) }
