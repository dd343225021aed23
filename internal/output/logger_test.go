package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog/log"
)

func TestSetLogOutputRedirectsLogs(t *testing.T) {
	var buf bytes.Buffer
	SetLogOutput(&buf)
	defer InitLogger(false)

	log.Info().Str("op", "test").Msg("gateway online")
	if !strings.Contains(buf.String(), "gateway online") {
		t.Fatalf("expected log line in redirected output, got %q", buf.String())
	}
}
