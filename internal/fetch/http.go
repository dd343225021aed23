package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/zovs/ironclaw/internal/output"
)

// RemoteStatusError is returned when the origin answers with a non-2xx
// status. The transfer is aborted before the destination file is created.
type RemoteStatusError struct {
	Code int
}

func (e *RemoteStatusError) Error() string {
	return fmt.Sprintf("unexpected status code: %d", e.Code)
}

// TransferError wraps a mid-stream network or write failure. The partially
// written file is left on disk; the caller decides what to do with it.
type TransferError struct {
	Err error
}

func (e *TransferError) Error() string {
	return fmt.Sprintf("transfer failed: %v", e.Err)
}

func (e *TransferError) Unwrap() error { return e.Err }

// HTTP streams a GET response body to outputPath, reporting cumulative
// progress after each chunk. No retries are performed; a failed transfer
// leaves whatever was flushed in place and must be re-initiated by the
// caller. The loop checks ctx between chunks, so cancellation also leaves a
// consistent partial file.
func HTTP(ctx context.Context, url, outputPath string, client *Client, progress ProgressFunc) error {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return fmt.Errorf("error creating GET request: %v", err)
	}
	req.Header.Set("Connection", "keep-alive")
	resp, err := client.Do(req)
	if err != nil {
		return &TransferError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &RemoteStatusError{Code: resp.StatusCode}
	}

	total := resp.ContentLength
	if total < 0 {
		log.Debug().Str("op", "fetch/http").Msgf("No content length declared for %s", url)
		total = 0
	}

	outFile, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("error creating output file: %v", err)
	}
	defer outFile.Close()

	var written int64
	buffer := make([]byte, DefaultBufferSize)
	for {
		if err := ctx.Err(); err != nil {
			return &TransferError{Err: err}
		}
		bytesRead, readErr := resp.Body.Read(buffer)
		if bytesRead > 0 {
			if _, writeErr := outFile.Write(buffer[:bytesRead]); writeErr != nil {
				return &TransferError{Err: writeErr}
			}
			written += int64(bytesRead)
			if progress != nil {
				progress(written, total)
			}
		}
		if readErr != nil {
			if readErr == io.EOF {
				break
			}
			return &TransferError{Err: readErr}
		}
	}
	outFile.Sync()
	log.Debug().Str("op", "fetch/http").Msgf("Streamed %s to %s", output.FormatBytes(uint64(written)), outputPath)
	return nil
}
