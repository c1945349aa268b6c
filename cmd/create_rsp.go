package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"filebundler/pkg/console"
	"filebundler/pkg/rsp"
	"filebundler/pkg/version"

	"github.com/spf13/cobra"
)

func newCreateRspCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "create-rsp",
		Short: "Interactively create a response file for the bundle command",
		Long: `create-rsp asks for each bundle option in turn and saves the answers as a
response file, one "--flag value" per line. Replay it with:

  filebundler bundle @bundle.rsp`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := console.NewPrinter(cmd.OutOrStdout())

			wd, err := os.Getwd()
			if err != nil {
				return report(p, fmt.Errorf("failed to get current directory: %w", err))
			}

			path, err := rsp.NewWizard(cmd.InOrStdin(), p, a.logger).Run(wd)
			if err != nil {
				return report(p, err)
			}

			shown := path
			if rel, err := filepath.Rel(wd, path); err == nil {
				shown = rel
			}
			p.Successf("Response file created: %s", path)
			p.Infof("Run it with: %s bundle @%s", version.AppName, shown)
			return nil
		},
	}
}
