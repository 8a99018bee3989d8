package cli

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/drueck/reboot/internal/domain"
	"github.com/drueck/reboot/internal/infra/config"
	"github.com/drueck/reboot/internal/infra/instructionfile"
	"github.com/drueck/reboot/internal/infra/logger"
	"github.com/drueck/reboot/internal/infra/runstore"
	"github.com/drueck/reboot/internal/ports"
	"github.com/drueck/reboot/internal/usecase"
)

const defaultFormat = domain.FormatPlain

type replayFlags struct {
	format     string
	region     string
	check      bool
	render     bool
	save       bool
	configPath string
}

func runReplay(cmd *cobra.Command, f replayFlags, debug bool, paths []string) error {
	st, err := loadSettings(f.configPath, config.NewFinder())
	if err != nil {
		return err
	}
	cfg := st.cfg
	if err := applyFlags(cmd, f, &cfg); err != nil {
		return err
	}

	if debug || cfg.Logs.Enabled {
		cleanup, lerr := logger.Setup(logger.Config{Root: st.root, Debug: debug})
		if lerr != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: logging disabled: %v\n", lerr)
		}
		if cleanup != nil {
			defer func() { _ = cleanup() }()
		}
	}

	// A nil logger leaves the use case and store on their discard default.
	var log *slog.Logger
	if logger.IsReady() == nil {
		log = logger.L()
		if debug {
			fmt.Fprintf(cmd.ErrOrStderr(), "debug log: %s\n", logger.Path())
		}
		log.Info("config.resolved",
			"file", st.file,
			"root", st.root,
			"format", string(cfg.Output.Format),
			"region", regionString(cfg.Replay.Region),
			"check", cfg.Replay.Check,
			"save", cfg.Runs.Save,
			"inputs", len(paths),
		)
	}

	var store ports.ReportStore
	if cfg.Runs.Save {
		store = runstore.NewJSONStore(st.root, cfg,
			runstore.WithIndex(true),
			runstore.WithLogger(log),
		)
	}

	uc := usecase.NewReplay(instructionfile.NewLoader(), store,
		usecase.WithRegion(cfg.Replay.Region),
		usecase.WithInvariantCheck(cfg.Replay.Check),
		usecase.WithRender(f.render, cfg.Replay.RenderLimit),
		usecase.WithLogger(log),
	)

	reports, err := uc.ExecuteAll(cmd.Context(), paths)
	if err != nil {
		return err
	}
	return printReports(cmd.OutOrStdout(), reports, cfg.Output.Format)
}

type settings struct {
	// root is the directory runs/ and .reboot/ are created under.
	root string
	// file is the configuration in effect; "" when running on defaults.
	file string
	cfg  domain.Config
}

// loadSettings resolves the configuration from --config, else from the
// nearest reboot.yaml above the working directory, else defaults rooted at
// the working directory.
func loadSettings(configPath string, locator ports.ConfigLocator) (settings, error) {
	if p := strings.TrimSpace(configPath); p != "" {
		abs, err := filepath.Abs(p)
		if err != nil {
			return settings{}, fmt.Errorf("invalid config path: %w", err)
		}
		return loadFile(abs)
	}

	wd, err := os.Getwd()
	if err != nil {
		return settings{}, fmt.Errorf("get working directory: %w", err)
	}

	file, err := locator.FindConfig(wd)
	if err != nil {
		if domain.IsKind(err, domain.KindNotFound) {
			return settings{root: wd, cfg: domain.DefaultConfig()}, nil
		}
		return settings{}, err
	}
	return loadFile(file)
}

func loadFile(path string) (settings, error) {
	cfg, err := config.LoadFile(path)
	if err != nil {
		return settings{}, err
	}
	return settings{root: filepath.Dir(path), file: path, cfg: cfg}, nil
}

func regionString(r *domain.Range) string {
	if r == nil {
		return ""
	}
	return r.String()
}

// applyFlags overrides cfg with the flags the user actually passed.
func applyFlags(cmd *cobra.Command, f replayFlags, cfg *domain.Config) error {
	flags := cmd.Flags()

	if flags.Changed("format") {
		format, err := domain.ParseFormat(f.format)
		if err != nil {
			return err
		}
		cfg.Output.Format = format
	}
	if flags.Changed("region") {
		if strings.TrimSpace(f.region) == "" {
			cfg.Replay.Region = nil
		} else {
			r, err := domain.ParseRange(f.region)
			if err != nil {
				return &domain.OpError{Op: "cli.region", Kind: domain.KindParse, Err: err}
			}
			cfg.Replay.Region = &r
		}
	}
	if flags.Changed("check") {
		cfg.Replay.Check = f.check
	}
	if flags.Changed("save") {
		cfg.Runs.Save = f.save
	}
	return nil
}
