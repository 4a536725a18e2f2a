package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"evolveapp-desktop/internal/diagnostics"
	"evolveapp-desktop/internal/domain"
)

var errProbeFailed = errors.New("platform check failed: WebView2 runtime is not installed")

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("4"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Width(22)
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	failStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
)

func newDoctorCommand(source func() diagnostics.ReportSource) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Print host diagnostics",
		Long:  "Collect the same diagnostics report the shell logs at startup and check platform prerequisites.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			report := source().Collect()

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if err := enc.Encode(report); err != nil {
					return fmt.Errorf("encode report: %w", err)
				}
			} else {
				printReport(cmd.OutOrStdout(), report)
			}

			if !report.WebView2Available {
				return errProbeFailed
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the report as JSON")
	return cmd
}

func printReport(w io.Writer, report domain.DiagnosticReport) {
	row := func(label, value string) {
		fmt.Fprintln(w, labelStyle.Render(label)+value)
	}

	fmt.Fprintln(w, titleStyle.Render("System Diagnostics"))
	row("App Version", report.AppVersion)
	row("OS", report.OS+" "+report.OSVersion)
	row("Architecture", report.Architecture)
	row("Total Memory", strconv.FormatUint(report.TotalMemoryMB, 10)+" MB")
	row("Available Memory", strconv.FormatUint(report.AvailableMemoryMB, 10)+" MB")
	if report.WebView2Available {
		row("WebView2", okStyle.Render("available"))
	} else {
		row("WebView2", failStyle.Render("missing")+" ("+diagnostics.WebView2DownloadURL+")")
	}
	row("Log Path", report.LogPath)
}
