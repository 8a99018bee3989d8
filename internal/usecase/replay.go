package usecase

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"runtime"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/drueck/reboot/internal/boxset"
	"github.com/drueck/reboot/internal/domain"
	"github.com/drueck/reboot/internal/geometry"
	"github.com/drueck/reboot/internal/ports"
)

// Replay applies the instructions of a program, in order, to an initially
// empty box set and reports the lit volume.
type Replay struct {
	programs ports.InstructionLoader
	store    ports.ReportStore
	log      *slog.Logger
	now      func() time.Time

	region      *domain.Range
	check       bool
	render      bool
	renderLimit uint64
}

type ReplayOption func(*Replay)

// WithRegion clips every instruction to r on each axis.
func WithRegion(r *domain.Range) ReplayOption {
	return func(uc *Replay) { uc.region = r }
}

// WithInvariantCheck validates the set after every instruction.
func WithInvariantCheck(enabled bool) ReplayOption {
	return func(uc *Replay) { uc.check = enabled }
}

// WithRender draws 2D programs into Report.Rendering, up to limit cells.
func WithRender(enabled bool, limit uint64) ReplayOption {
	return func(uc *Replay) {
		uc.render = enabled
		uc.renderLimit = limit
	}
}

func WithLogger(l *slog.Logger) ReplayOption {
	return func(uc *Replay) {
		if l != nil {
			uc.log = l
		}
	}
}

// WithClock is useful for tests.
func WithClock(now func() time.Time) ReplayOption {
	return func(uc *Replay) { uc.now = now }
}

// NewReplay builds the use case. store may be nil, in which case reports are
// not persisted.
func NewReplay(pl ports.InstructionLoader, rs ports.ReportStore, opts ...ReplayOption) *Replay {
	uc := &Replay{
		programs: pl,
		store:    rs,
		log:      slog.New(slog.NewJSONHandler(io.Discard, nil)),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Execute replays the instruction file at path. On cancellation the partial
// report is returned along with ctx.Err().
func (uc *Replay) Execute(ctx context.Context, path string) (domain.Report, error) {
	prog, err := uc.programs.LoadProgram(path)
	if err != nil {
		return domain.Report{Path: path}, err
	}

	report := domain.Report{
		Path:         path,
		Dims:         prog.Dims,
		Instructions: len(prog.Instructions),
		Region:       uc.region,
		StartedAt:    uc.now(),
	}
	uc.log.Info("replay.start", "path", path, "dims", prog.Dims, "instructions", len(prog.Instructions))

	switch prog.Dims {
	case 0:
	case 2:
		var set *boxset.Set[geometry.Axes2]
		set, err = replay[geometry.Axes2](ctx, uc, prog, &report)
		if err == nil && uc.render {
			err = uc.renderInto(&report, set)
		}
	case 3:
		_, err = replay[geometry.Axes3](ctx, uc, prog, &report)
		if err == nil && uc.render {
			err = &domain.OpError{
				Op:   "replay.render",
				Kind: domain.KindInvalidConfig,
				Path: path,
				Err:  fmt.Errorf("%w: rendering needs a 2D program, got %d axes", domain.ErrInvalidConfig, prog.Dims),
			}
		}
	default:
		err = &domain.OpError{
			Op:   "replay.dims",
			Kind: domain.KindParse,
			Path: path,
			Err:  fmt.Errorf("%w: unsupported number of axes %d", domain.ErrParse, prog.Dims),
		}
	}

	report.EndedAt = uc.now()
	if err != nil {
		uc.log.Error("replay.failed", "path", path, "err", err)
		return report, err
	}

	uc.log.Info("replay.done",
		"path", path,
		"volume", report.Volume,
		"boxes", report.Boxes,
		"applied", report.Applied,
		"skipped", report.Skipped,
		"duration", report.Duration(),
	)

	if uc.store != nil {
		id, err := uc.store.SaveReport(report)
		if err != nil {
			return report, err
		}
		report.ID = id
	}
	return report, nil
}

// ExecuteAll replays every file concurrently, each into its own set, and
// returns the reports in the order of paths. The first failure cancels the
// remaining replays.
func (uc *Replay) ExecuteAll(ctx context.Context, paths []string) ([]domain.Report, error) {
	reports := make([]domain.Report, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, p := range paths {
		g.Go(func() error {
			r, err := uc.Execute(gctx, p)
			reports[i] = r
			return err
		})
	}

	err := g.Wait()
	return reports, err
}

func replay[A geometry.Axes](ctx context.Context, uc *Replay, prog domain.Program, report *domain.Report) (*boxset.Set[A], error) {
	var clip *geometry.Box[A]
	if uc.region != nil {
		c, err := uniformBox[A](*uc.region)
		if err != nil {
			return nil, &domain.OpError{Op: "replay.region", Kind: domain.KindInvalidConfig, Err: err}
		}
		clip = &c
	}

	debug := uc.log.Enabled(ctx, slog.LevelDebug)

	var set boxset.Set[A]
	for _, ins := range prog.Instructions {
		if err := ctx.Err(); err != nil {
			_ = fillReport(report, &set)
			return nil, err
		}

		box, err := toBox[A](ins.Ranges)
		if err != nil {
			return nil, &domain.OpError{
				Op:   "replay.box",
				Kind: domain.KindParse,
				Path: prog.Path,
				Line: ins.Line,
				Err:  fmt.Errorf("%w: %v", domain.ErrParse, err),
			}
		}

		if clip != nil {
			clipped, ok := box.Intersection(*clip)
			if !ok {
				report.Skipped++
				continue
			}
			box = clipped
		}

		switch ins.Op {
		case domain.OpOn:
			set.Add(box)
		case domain.OpOff:
			set.Subtract(box)
		default:
			return nil, &domain.OpError{
				Op:   "replay.op",
				Kind: domain.KindParse,
				Path: prog.Path,
				Line: ins.Line,
				Err:  fmt.Errorf("%w: unknown operation %q", domain.ErrParse, ins.Op),
			}
		}
		report.Applied++

		if debug {
			uc.log.Debug("replay.step", "line", ins.Line, "op", string(ins.Op), "box", box.String(), "members", set.Len())
		}

		if uc.check {
			if err := set.Validate(); err != nil {
				return nil, &domain.OpError{
					Op:   "replay.check",
					Kind: domain.KindInvariant,
					Path: prog.Path,
					Line: ins.Line,
					Err:  fmt.Errorf("%w: %v", domain.ErrInvariant, err),
				}
			}
		}
	}

	if err := fillReport(report, &set); err != nil {
		return nil, err
	}
	return &set, nil
}

// fillReport copies the set's totals into report. It fails when the lit
// volume does not fit in a uint64.
func fillReport[A geometry.Axes](report *domain.Report, set *boxset.Set[A]) error {
	v, ok := set.CheckedVolume()
	report.Volume = v
	report.Boxes = set.Len()
	report.Bounds = nil
	if b, found := set.Bounds(); found {
		for i := 0; i < b.Dims(); i++ {
			iv := b.Axis(i)
			report.Bounds = append(report.Bounds, domain.Range{Lo: iv.Min, Hi: iv.Max - 1})
		}
	}
	if !ok {
		return &domain.OpError{
			Op:   "replay.volume",
			Kind: domain.KindExecution,
			Path: report.Path,
			Err:  fmt.Errorf("%w: lit volume exceeds %d cells", domain.ErrExecution, uint64(math.MaxUint64)),
		}
	}
	return nil
}

func (uc *Replay) renderInto(report *domain.Report, set *boxset.Set[geometry.Axes2]) error {
	var sb strings.Builder
	if err := boxset.Render(&sb, set, uc.renderLimit); err != nil {
		return &domain.OpError{Op: "replay.render", Kind: domain.KindExecution, Path: report.Path, Err: err}
	}
	report.Rendering = sb.String()
	return nil
}

// toBox converts inclusive instruction ranges into a half-open box.
func toBox[A geometry.Axes](ranges []domain.Range) (geometry.Box[A], error) {
	var axes A
	if len(ranges) != len(axes) {
		return geometry.Box[A]{}, fmt.Errorf("expected %d ranges, got %d", len(axes), len(ranges))
	}
	for i := 0; i < len(axes); i++ {
		if err := ranges[i].Validate(); err != nil {
			return geometry.Box[A]{}, err
		}
		lo, hi := ranges[i].HalfOpen()
		axes[i] = geometry.Span(lo, hi)
	}
	return geometry.New(axes)
}

// uniformBox is the box spanning r on every axis.
func uniformBox[A geometry.Axes](r domain.Range) (geometry.Box[A], error) {
	var axes A
	ranges := make([]domain.Range, len(axes))
	for i := range ranges {
		ranges[i] = r
	}
	return toBox[A](ranges)
}
