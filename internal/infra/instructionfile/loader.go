package instructionfile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/drueck/reboot/internal/domain"
	"github.com/drueck/reboot/internal/ports"
)

var lineRE = regexp.MustCompile(
	`^(on|off) x=(-?\d+)\.\.(-?\d+),y=(-?\d+)\.\.(-?\d+)(?:,z=(-?\d+)\.\.(-?\d+))?$`,
)

// Loader reads instruction files from the filesystem.
type Loader struct{}

func NewLoader() *Loader {
	return &Loader{}
}

var _ ports.InstructionLoader = (*Loader)(nil)

func (l *Loader) LoadProgram(path string) (domain.Program, error) {
	f, err := os.Open(path)
	if err != nil {
		return domain.Program{}, &domain.OpError{
			Op:   "instructionfile.load",
			Kind: domain.KindNotFound,
			Path: path,
			Err:  err,
		}
	}
	defer f.Close()

	return Parse(f, path)
}

// Parse reads one instruction per line. Blank lines and lines starting with
// '#' are ignored. All instructions must have the same number of axes.
func Parse(r io.Reader, path string) (domain.Program, error) {
	prog := domain.Program{Path: path}

	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		ins, err := ParseLine(text)
		if err != nil {
			return domain.Program{}, parseError(path, lineNo, err)
		}
		ins.Line = lineNo

		switch {
		case prog.Dims == 0:
			prog.Dims = len(ins.Ranges)
		case prog.Dims != len(ins.Ranges):
			return domain.Program{}, parseError(path, lineNo,
				fmt.Errorf("%w: %d axes, earlier lines have %d", domain.ErrParse, len(ins.Ranges), prog.Dims))
		}

		prog.Instructions = append(prog.Instructions, ins)
	}
	if err := sc.Err(); err != nil {
		return domain.Program{}, &domain.OpError{
			Op:   "instructionfile.read",
			Kind: domain.KindExecution,
			Path: path,
			Line: lineNo,
			Err:  err,
		}
	}

	return prog, nil
}

// ParseLine parses `on x=A..B,y=C..D[,z=E..F]`. The returned instruction has
// no line number.
func ParseLine(s string) (domain.Instruction, error) {
	m := lineRE.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return domain.Instruction{}, fmt.Errorf("%w: malformed instruction %q", domain.ErrParse, s)
	}

	bounds := m[2:]
	if m[6] == "" {
		bounds = m[2:6]
	}

	ins := domain.Instruction{
		Op:     domain.Operation(m[1]),
		Ranges: make([]domain.Range, 0, len(bounds)/2),
	}
	for i := 0; i < len(bounds); i += 2 {
		lo, err := strconv.ParseInt(bounds[i], 10, 64)
		if err != nil {
			return domain.Instruction{}, fmt.Errorf("%w: %v", domain.ErrParse, err)
		}
		hi, err := strconv.ParseInt(bounds[i+1], 10, 64)
		if err != nil {
			return domain.Instruction{}, fmt.Errorf("%w: %v", domain.ErrParse, err)
		}
		r := domain.Range{Lo: lo, Hi: hi}
		if err := r.Validate(); err != nil {
			return domain.Instruction{}, err
		}
		ins.Ranges = append(ins.Ranges, r)
	}
	return ins, nil
}

func parseError(path string, line int, err error) error {
	if !errors.Is(err, domain.ErrParse) {
		err = fmt.Errorf("%w: %v", domain.ErrParse, err)
	}
	return &domain.OpError{
		Op:   "instructionfile.parse",
		Kind: domain.KindParse,
		Path: path,
		Line: line,
		Err:  err,
	}
}
