package cli

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cmd := newRootCmd()
	if err := cmd.ExecuteContext(ctx); err != nil {
		printError(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var debug bool
	var f replayFlags

	cmd := &cobra.Command{
		Use:   "reboot [flags] <file>...",
		Short: "Replay on/off box instructions and report the lit volume",
		Long: "reboot reads files of lines like\n\n" +
			"  on x=10..12,y=10..12,z=10..12\n" +
			"  off x=9..11,y=9..11,z=9..11\n\n" +
			"applies them in order to an empty region and prints how many unit cells\n" +
			"remain lit. Ranges are inclusive; the z axis may be omitted for 2D input.\n\n" +
			"A file named like a subcommand (init, version) must be given as a path,\n" +
			"e.g. reboot ./init.",
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(cmd, f, debug, args)
		},
	}

	cmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable verbose logging to .reboot/logs/reboot.log")

	cmd.Flags().StringVar(&f.format, "format", string(defaultFormat), "Output format: plain|pretty|json")
	cmd.Flags().StringVar(&f.region, "region", "", "Clip every instruction to lo..hi on each axis (e.g. -50..50)")
	cmd.Flags().BoolVar(&f.check, "check", false, "Validate that members stay disjoint after every instruction")
	cmd.Flags().BoolVar(&f.render, "render", false, "Draw the lit cells of 2D input")
	cmd.Flags().BoolVar(&f.save, "save", false, "Save a JSON report under runs/")
	cmd.Flags().StringVarP(&f.configPath, "config", "c", "", "Path to reboot.yaml (optional; autodetected if omitted)")

	cmd.AddCommand(initCmd())
	cmd.AddCommand(versionCmd())
	return cmd
}
