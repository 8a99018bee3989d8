package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/drueck/reboot/internal/buildinfo"
	"github.com/drueck/reboot/internal/infra/config"
	"github.com/drueck/reboot/internal/infra/fsworkspace"
	"github.com/drueck/reboot/internal/ports"
)

func initCmd() *cobra.Command {
	return newInitCmd(fsworkspace.NewInitializer())
}

func newInitCmd(initializer ports.WorkspaceInitializer) *cobra.Command {
	var force bool

	c := &cobra.Command{
		Use:   "init [dir]",
		Short: "Create a reboot.yaml workspace (defaults to the current directory)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			root, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("invalid directory: %w", err)
			}
			if err := os.MkdirAll(root, 0o755); err != nil {
				return fmt.Errorf("create %s: %w", root, err)
			}

			if err := initializer.Init(root, force); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Initialized reboot workspace in %s\n", filepath.Join(root, config.FileName))
			return nil
		},
	}

	c.Flags().BoolVar(&force, "force", false, "Overwrite an existing reboot.yaml")
	return c
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), buildinfo.String())
		},
	}
}
