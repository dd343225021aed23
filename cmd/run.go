package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zovs/ironclaw/internal/output"
)

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run [COMMAND...]",
		Short: "Run an operator command through the platform shell",
		Args:  cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			gw, err := newGateway()
			if err != nil {
				output.PrintError(err.Error())
				os.Exit(1)
			}
			stdout, err := gw.RunCommand(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				fmt.Fprint(os.Stderr, err.Error())
				os.Exit(1)
			}
			fmt.Print(stdout)
		},
	}
}
