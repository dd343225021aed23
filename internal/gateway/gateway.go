// Package gateway is the invocation surface of the backend: one method per
// front-end operation, request/response, no session state. Each call is
// independent and may run concurrently with any other; the design carries no
// cross-invocation locking (see the store package for the accepted races).
package gateway

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/zovs/ironclaw/internal/fetch"
	"github.com/zovs/ironclaw/internal/policy"
	"github.com/zovs/ironclaw/internal/shellexec"
	"github.com/zovs/ironclaw/internal/store"
)

// ProgressSink receives percent values in [0, 100] during a download. It is
// called synchronously from the streaming loop and only when the origin
// declared a total size; a percent of an unknown total is never fabricated.
type ProgressSink func(percent float64)

type Gateway struct {
	policy *policy.Policy
	store  *store.Store
	client *fetch.Client
	exec   *shellexec.Executor

	// AWSProfile selects a shared-config profile for s3:// origins.
	AWSProfile string
}

func New(p *policy.Policy, s *store.Store, client *fetch.Client, exec *shellexec.Executor) *Gateway {
	return &Gateway{
		policy: p,
		store:  s,
		client: client,
		exec:   exec,
	}
}

// CheckModelExists never fails; unsafe names simply report false.
func (g *Gateway) CheckModelExists(filename string) bool {
	return g.store.ModelExists(filename)
}

// DownloadModel validates the request, then streams the artifact into the
// models directory, emitting percent progress to sink. No retries; a failed
// transfer leaves the partial file in place and the artifact must be treated
// as not-confirmed-complete.
func (g *Gateway) DownloadModel(ctx context.Context, url, filename string, sink ProgressSink) error {
	logger := g.opLogger("download")
	if err := g.policy.ValidateDownloadRequest(url, filename); err != nil {
		logger.Warn().Err(err).Msgf("Rejected download of %s", filename)
		return err
	}
	if err := g.store.EnsureModelsDir(); err != nil {
		return err
	}

	dest := g.store.ModelPath(filename)
	progress := percentBridge(sink)
	logger.Info().Msgf("Starting download of %s", filename)

	var err error
	if strings.HasPrefix(url, "s3://") {
		err = fetch.S3(ctx, url, dest, g.AWSProfile, progress)
	} else {
		err = fetch.HTTP(ctx, url, dest, g.client, progress)
	}
	if err != nil {
		logger.Error().Err(err).Msgf("Download of %s failed", filename)
		return err
	}
	logger.Info().Msgf("Download of %s complete", filename)
	return nil
}

// SaveActiveSoul persists the selected soul name in the settings document.
func (g *Gateway) SaveActiveSoul(name string) error {
	logger := g.opLogger("save-soul")
	if err := g.store.SaveActiveSoul(name); err != nil {
		logger.Warn().Err(err).Msg("Saving active soul failed")
		return err
	}
	logger.Info().Msgf("Active soul set to %s", name)
	return nil
}

// ActiveSoul reads back the persisted soul name, if any.
func (g *Gateway) ActiveSoul() (string, bool) {
	return g.store.ActiveSoul()
}

// RunCommand executes an operator command through the shell executor and
// returns captured stdout. The error payload carries captured stderr, or the
// guardrail message when the command was blocked before spawning.
func (g *Gateway) RunCommand(ctx context.Context, command string) (string, error) {
	logger := g.opLogger("run-command")
	out, err := g.exec.Run(ctx, command)
	if err != nil {
		logger.Warn().Err(err).Msg("Command failed")
		return "", err
	}
	return out, nil
}

func (g *Gateway) opLogger(op string) zerolog.Logger {
	return log.With().Str("op", op).Str("invocation", uuid.NewString()[:8]).Logger()
}

// percentBridge converts byte progress to percent events. A missing total
// skips emission entirely, and a panicking sink is dropped rather than
// allowed to abort the transfer.
func percentBridge(sink ProgressSink) fetch.ProgressFunc {
	if sink == nil {
		return nil
	}
	return func(written, total int64) {
		if total <= 0 {
			return
		}
		defer func() {
			_ = recover()
		}()
		percent := 100 * float64(written) / float64(total)
		if percent > 100 {
			percent = 100
		}
		sink(percent)
	}
}
