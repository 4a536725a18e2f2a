package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"evolveapp-desktop/internal/appinfo"
)

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s\n", appinfo.Name, appinfo.Version)
			fmt.Fprintf(out, "  identifier: %s\n", appinfo.Identifier)
			fmt.Fprintf(out, "  platform:   %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
}
