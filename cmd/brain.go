package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/zovs/ironclaw/internal/output"
	"github.com/zovs/ironclaw/internal/sidecar"
)

func newBrainCmd() *cobra.Command {
	var workerPath string
	cmd := &cobra.Command{
		Use:   "brain",
		Short: "Supervise the gca-brain worker and relay its output to the log",
		Run: func(cmd *cobra.Command, args []string) {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			worker := sidecar.New(workerPath)
			if err := worker.Run(ctx); err != nil && ctx.Err() == nil {
				output.PrintError(err.Error())
				os.Exit(1)
			}
		},
	}
	cmd.Flags().StringVar(&workerPath, "worker", "gca-brain", "Path to the worker binary")
	return cmd
}
