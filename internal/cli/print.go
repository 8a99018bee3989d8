package cli

import (
	"fmt"
	"io"
	"math/big"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	jsoniter "github.com/json-iterator/go"

	"github.com/drueck/reboot/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func printReports(w io.Writer, reports []domain.Report, format domain.OutputFormat) error {
	switch format {
	case domain.FormatPlain, "":
		printPlain(w, reports)
		return nil
	case domain.FormatPretty:
		th := defaultTheme()
		for _, r := range reports {
			fmt.Fprintln(w, renderCard(th, r))
		}
		return nil
	case domain.FormatJSON:
		b, err := json.MarshalIndent(reports, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "%s\n", b)
		return err
	default:
		return fmt.Errorf("unsupported format %q (expected plain|pretty|json)", format)
	}
}

// printPlain writes one volume per line, followed by the drawing when one
// was requested.
func printPlain(w io.Writer, reports []domain.Report) {
	for _, r := range reports {
		fmt.Fprintln(w, r.Volume)
		if r.Rendering != "" {
			fmt.Fprint(w, r.Rendering)
		}
	}
}

func renderCard(th theme, r domain.Report) string {
	var sb strings.Builder

	sb.WriteString(th.Title.Render(r.Path))
	sb.WriteString("\n")
	sb.WriteString(th.Volume.Render(commas(r.Volume) + " lit"))
	sb.WriteString("\n\n")

	row := func(label, value string) {
		sb.WriteString(th.Label.Render(fmt.Sprintf("%-13s", label)))
		sb.WriteString(value)
		sb.WriteString("\n")
	}

	row("Dimensions", fmt.Sprintf("%dD", r.Dims))
	row("Instructions", fmt.Sprintf("%d applied / %d skipped", r.Applied, r.Skipped))
	row("Boxes", humanize.Comma(int64(r.Boxes)))
	if r.Region != nil {
		row("Region", r.Region.String())
	}
	if len(r.Bounds) > 0 {
		row("Bounds", formatBounds(r.Bounds))
	}
	row("Duration", r.Duration().Round(time.Microsecond).String())
	if r.ID != "" {
		row("Report", r.ID)
	}

	out := strings.TrimRight(sb.String(), "\n")
	if r.Rendering != "" {
		out = lipgloss.JoinVertical(lipgloss.Left, out, "", th.Grid.Render(strings.TrimRight(r.Rendering, "\n")))
	}
	return th.Card.Render(out)
}

func formatBounds(bounds []domain.Range) string {
	names := []string{"x", "y", "z"}
	parts := make([]string, len(bounds))
	for i, b := range bounds {
		name := fmt.Sprintf("a%d", i)
		if i < len(names) {
			name = names[i]
		}
		parts[i] = name + "=" + b.String()
	}
	return strings.Join(parts, ",")
}

// commas groups digits of a full-range uint64.
func commas(v uint64) string {
	return humanize.BigComma(new(big.Int).SetUint64(v))
}
