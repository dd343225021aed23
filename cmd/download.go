package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/zovs/ironclaw/internal/output"
)

func newDownloadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "download [URL] [FILENAME]",
		Short: "Download a model artifact from a trusted origin",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			url, filename := args[0], args[1]
			gw, err := newGateway()
			if err != nil {
				output.PrintError(err.Error())
				os.Exit(1)
			}
			barWidth := min(output.TerminalWidth()-12, 40)
			sink := func(percent float64) {
				fmt.Printf("\r\033[K%s", output.ProgressBar(percent, barWidth))
			}
			if err := gw.DownloadModel(cmd.Context(), url, filename, sink); err != nil {
				fmt.Println()
				output.PrintError(err.Error())
				os.Exit(1)
			}
			fmt.Println()
			output.PrintSuccess(fmt.Sprintf("Downloaded %s", filename))
		},
	}
	return cmd
}
