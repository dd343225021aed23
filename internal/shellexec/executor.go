// Package shellexec runs operator-supplied command lines through the
// platform shell, with a regex guardrail gate in front of the spawn.
package shellexec

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/rs/zerolog/log"
)

// Executor spawns one independent subprocess per call and holds no shared
// state. No timeout or output cap is applied; callers bound the run through
// ctx if they need to.
type Executor struct {
	guard *Guardrail
}

func New(guard *Guardrail) *Executor {
	return &Executor{guard: guard}
}

// Run passes command whole to the platform shell (sh -c / cmd /C) and
// returns captured stdout. On failure the error carries captured stderr, or
// a generic message when stderr is empty or not valid UTF-8.
func (e *Executor) Run(ctx context.Context, command string) (string, error) {
	if e.guard != nil {
		if err := e.guard.Check(command); err != nil {
			return "", err
		}
	}

	cmd := shellCommand(ctx, command)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	log.Debug().Str("op", "shellexec").Msgf("Running shell command: %s", command)
	if err := cmd.Run(); err != nil {
		errText := stderr.String()
		if errText == "" || !utf8.ValidString(errText) {
			return "", fmt.Errorf("command failed: %v", err)
		}
		return "", errors.New(errText)
	}

	out := stdout.Bytes()
	if !utf8.Valid(out) {
		return "", fmt.Errorf("command output is not valid UTF-8")
	}
	return string(out), nil
}
