package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/drueck/reboot/internal/domain"
)

var reLine = regexp.MustCompile(`(?i)\bline\s+(\d+)\b`)

// printError writes a short headline for err followed by the full chain.
func printError(w io.Writer, err error) {
	msg := userMessage(err)
	if msg == "" {
		fmt.Fprintf(w, "Error: %v\n", err)
		return
	}
	fmt.Fprintf(w, "Error: %s\n  %v\n", msg, err)
}

// userMessage classifies err into a one-line headline. It returns "" when the
// error text is already the best description (flag and argument errors).
func userMessage(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, context.Canceled) {
		return "Interrupted"
	}

	var oe *domain.OpError
	if !errors.As(err, &oe) {
		return ""
	}

	base := ""
	if strings.TrimSpace(oe.Path) != "" {
		base = filepath.Base(oe.Path)
	}

	switch oe.Kind {
	case domain.KindNotFound:
		if strings.HasPrefix(oe.Op, "config.") {
			return "Config not found"
		}
		if base != "" {
			return "Input not found: " + base
		}
		return "Not found"

	case domain.KindParse:
		switch {
		case base != "" && oe.Line > 0:
			return fmt.Sprintf("Invalid instruction at %s line %d", base, oe.Line)
		case base != "":
			return "Invalid instruction file " + base
		default:
			return "Invalid range"
		}

	case domain.KindInvalidConfig:
		if base == "" {
			return "Invalid option"
		}
		if line := extractLine(err.Error()); line != "" {
			return "Invalid YAML at " + base + " line " + line
		}
		return "Invalid config " + base

	case domain.KindInvariant:
		if oe.Line > 0 {
			return fmt.Sprintf("Overlapping boxes after %s line %d (this is a bug)", base, oe.Line)
		}
		return "Overlapping boxes (this is a bug)"

	default:
		return "Unexpected error (run with --debug and see .reboot/logs)"
	}
}

func extractLine(s string) string {
	m := reLine.FindStringSubmatch(s)
	if len(m) == 2 {
		return m[1]
	}
	return ""
}
