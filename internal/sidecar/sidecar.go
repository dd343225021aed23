// Package sidecar supervises the long-running brain worker and relays its
// output lines to the log. Restart policy stays with the host.
package sidecar

import (
	"bufio"
	"context"
	"fmt"
	"os/exec"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Sidecar struct {
	path   string
	args   []string
	logger zerolog.Logger
}

func New(path string, args ...string) *Sidecar {
	return &Sidecar{
		path:   path,
		args:   args,
		logger: log.With().Str("op", "sidecar").Logger(),
	}
}

// SetLogger overrides the destination for relayed lines.
func (s *Sidecar) SetLogger(logger zerolog.Logger) {
	s.logger = logger
}

// Run spawns the worker and blocks until it exits or ctx is cancelled.
// Every stdout line is relayed at info level, every stderr line at warn.
func (s *Sidecar) Run(ctx context.Context) error {
	cmd := exec.CommandContext(ctx, s.path, s.args...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("error opening stdout pipe: %v", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return fmt.Errorf("error opening stderr pipe: %v", err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("error spawning worker %s: %v", s.path, err)
	}
	s.logger.Info().Msgf("Worker %s started (pid %d)", s.path, cmd.Process.Pid)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		scanner := bufio.NewScanner(stdout)
		for scanner.Scan() {
			s.logger.Info().Str("stream", "stdout").Msg(scanner.Text())
		}
	}()
	go func() {
		defer wg.Done()
		scanner := bufio.NewScanner(stderr)
		for scanner.Scan() {
			s.logger.Warn().Str("stream", "stderr").Msg(scanner.Text())
		}
	}()
	wg.Wait()

	if err := cmd.Wait(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("worker exited: %v", err)
	}
	return nil
}
