package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/Brickell-Research/perf/internal/models"
)

// htmlRenderer converts the markdown report to HTML. GFM is needed for the
// comparison tables.
var htmlRenderer = goldmark.New(goldmark.WithExtensions(extension.GFM))

// WriteJSON marshals the reports as indented JSON, one array across all
// compared pairs.
func WriteJSON(w io.Writer, reports []*models.ComparisonReport) error {
	data, err := json.MarshalIndent(reports, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling comparison reports: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// Markdown renders one report as a PR-comment style markdown fragment.
func Markdown(r *models.ComparisonReport) string {
	var b strings.Builder

	status := "✅ Passed"
	if !r.OverallPass {
		status = "❌ Failed"
	}

	b.WriteString("## Benchmark Comparison\n\n")
	b.WriteString(fmt.Sprintf("**Status:** %s | **Threshold:** %.1f%%\n\n", status, r.Threshold*100))
	b.WriteString(fmt.Sprintf("`%s` → `%s`\n\n", r.BaselinePath, r.CurrentPath))

	b.WriteString("| Benchmark | Baseline | Current | Change | Verdict |\n")
	b.WriteString("|-----------|----------|---------|--------|---------|\n")

	for _, c := range r.Comparisons {
		switch c.Status {
		case models.StatusMissingInBaseline:
			b.WriteString(fmt.Sprintf("| %s | — | %s | new | — |\n", c.Name, formatMs(*c.CurrentMean)))
		case models.StatusMissingInCurrent:
			b.WriteString(fmt.Sprintf("| %s | %s | — | removed | — |\n", c.Name, formatMs(*c.BaselineMean)))
		default:
			change := "—"
			if c.RelativeDelta != nil {
				change = fmt.Sprintf("%+.1f%%", *c.RelativeDelta*100)
			}
			b.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %s |\n",
				c.Name, formatMs(*c.BaselineMean), formatMs(*c.CurrentMean), change, c.Verdict))
		}
	}

	s := r.Summary
	b.WriteString(fmt.Sprintf("\n%d regression(s), %d improvement(s), %d stable, %d missing\n",
		s.Regressions, s.Improvements, s.Stable, s.MissingInCurrent+s.MissingInBaseline))

	return b.String()
}

// WriteHTML renders the reports' markdown through goldmark, producing an
// HTML fragment suitable for dashboards or CI artifact pages.
func WriteHTML(w io.Writer, reports []*models.ComparisonReport) error {
	var md strings.Builder
	for _, r := range reports {
		md.WriteString(Markdown(r))
		md.WriteString("\n")
	}
	if err := htmlRenderer.Convert([]byte(md.String()), w); err != nil {
		return fmt.Errorf("rendering HTML report: %w", err)
	}
	return nil
}
