package instructionfile

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/drueck/reboot/internal/domain"
)

func TestParseLine(t *testing.T) {
	cases := []struct {
		in   string
		want domain.Instruction
	}{
		{
			in: "on x=10..12,y=10..12,z=10..12",
			want: domain.Instruction{Op: domain.OpOn, Ranges: []domain.Range{
				{Lo: 10, Hi: 12}, {Lo: 10, Hi: 12}, {Lo: 10, Hi: 12},
			}},
		},
		{
			in: "off x=-48..-32,y=26..41,z=-47..-37",
			want: domain.Instruction{Op: domain.OpOff, Ranges: []domain.Range{
				{Lo: -48, Hi: -32}, {Lo: 26, Hi: 41}, {Lo: -47, Hi: -37},
			}},
		},
		{
			in: "  on x=0..1,y=-1..3  ",
			want: domain.Instruction{Op: domain.OpOn, Ranges: []domain.Range{
				{Lo: 0, Hi: 1}, {Lo: -1, Hi: 3},
			}},
		},
	}
	for _, c := range cases {
		got, err := ParseLine(c.in)
		if err != nil {
			t.Errorf("ParseLine(%q): unexpected error %v", c.in, err)
			continue
		}
		if diff := cmp.Diff(c.want, got); diff != "" {
			t.Errorf("ParseLine(%q) mismatch (-want +got):\n%s", c.in, diff)
		}
	}
}

func TestParseLine_Invalid(t *testing.T) {
	cases := []string{
		"",
		"on",
		"toggle x=0..1,y=0..1",
		"on x=0..1",
		"on y=0..1,x=0..1",
		"on x=0..1,y=0..1,z=0..1,w=0..1",
		"on x=a..1,y=0..1",
		"on x=5..1,y=0..1",
		"on x=0..99999999999999999999,y=0..1",
	}
	for _, in := range cases {
		if _, err := ParseLine(in); !errors.Is(err, domain.ErrParse) {
			t.Errorf("ParseLine(%q): expected ErrParse, got %v", in, err)
		}
	}
}

func TestLoadProgram_3D(t *testing.T) {
	path := filepath.Join("testdata", "small.txt")
	prog, err := NewLoader().LoadProgram(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if prog.Path != path {
		t.Fatalf("expected path %q, got %q", path, prog.Path)
	}
	if prog.Dims != 3 {
		t.Fatalf("expected 3 dims, got %d", prog.Dims)
	}
	if len(prog.Instructions) != 4 {
		t.Fatalf("expected 4 instructions, got %d", len(prog.Instructions))
	}
	if got := prog.Instructions[2]; got.Op != domain.OpOff || got.Line != 3 {
		t.Fatalf("unexpected third instruction %+v", got)
	}
}

func TestLoadProgram_2DSkipsBlankAndComments(t *testing.T) {
	prog, err := NewLoader().LoadProgram(filepath.Join("testdata", "plane.txt"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if prog.Dims != 2 {
		t.Fatalf("expected 2 dims, got %d", prog.Dims)
	}
	if len(prog.Instructions) != 5 {
		t.Fatalf("expected 5 instructions, got %d", len(prog.Instructions))
	}
	if prog.Instructions[0].Line != 2 || prog.Instructions[2].Line != 5 {
		t.Fatalf("expected original line numbers, got %d and %d",
			prog.Instructions[0].Line, prog.Instructions[2].Line)
	}
}

func TestLoadProgram_Errors(t *testing.T) {
	cases := []struct {
		file string
		kind domain.ErrorKind
		line int
		msg  string
	}{
		{file: "mixed.txt", kind: domain.KindParse, line: 2, msg: "earlier lines have 2"},
		{file: "malformed.txt", kind: domain.KindParse, line: 2, msg: "malformed instruction"},
		{file: "reversed.txt", kind: domain.KindParse, line: 1, msg: "reversed"},
		{file: "missing.txt", kind: domain.KindNotFound},
	}
	for _, c := range cases {
		t.Run(c.file, func(t *testing.T) {
			path := filepath.Join("testdata", c.file)
			_, err := NewLoader().LoadProgram(path)
			if err == nil {
				t.Fatalf("expected error")
			}
			if !domain.IsKind(err, c.kind) {
				t.Fatalf("expected kind %s, got %v", c.kind, err)
			}

			var oe *domain.OpError
			if !errors.As(err, &oe) {
				t.Fatalf("expected OpError, got %T", err)
			}
			if oe.Path != path || oe.Line != c.line {
				t.Fatalf("expected %s:%d, got %s:%d", path, c.line, oe.Path, oe.Line)
			}
			if !strings.Contains(err.Error(), c.msg) {
				t.Fatalf("expected %q in %v", c.msg, err)
			}
		})
	}
}

func TestParse_Empty(t *testing.T) {
	prog, err := Parse(strings.NewReader("\n# nothing here\n"), "empty")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if prog.Dims != 0 || len(prog.Instructions) != 0 {
		t.Fatalf("expected empty program, got %+v", prog)
	}
}
