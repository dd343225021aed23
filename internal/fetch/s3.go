package fetch

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog/log"

	"github.com/zovs/ironclaw/internal/output"
)

// ParseS3URL splits an s3://bucket/key URL into bucket and key.
func ParseS3URL(url string) (bucket, key string, err error) {
	trimmed, ok := strings.CutPrefix(url, "s3://")
	if !ok {
		return "", "", fmt.Errorf("not an s3 url: %s", url)
	}
	bucket, key, ok = strings.Cut(trimmed, "/")
	if !ok || bucket == "" || key == "" {
		return "", "", fmt.Errorf("invalid s3 url (expected s3://bucket/key): %s", url)
	}
	return bucket, key, nil
}

// S3 streams an object from an S3 origin to outputPath with the same chunk
// loop and progress semantics as HTTP. Credentials come from the AWS shared
// config chain; an optional profile selects a named entry.
func S3(ctx context.Context, url, outputPath, profile string, progress ProgressFunc) error {
	bucket, key, err := ParseS3URL(url)
	if err != nil {
		return err
	}
	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithSharedConfigProfile(profile),
		config.WithRetryMode("adaptive"),
	)
	if err != nil {
		return fmt.Errorf("error loading AWS config: %v", err)
	}
	client := s3.NewFromConfig(cfg)

	log.Info().Str("op", "fetch/s3").Msgf("Starting object download for s3://%s/%s", bucket, key)
	result, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return &TransferError{Err: err}
	}
	defer result.Body.Close()

	var total int64
	if result.ContentLength != nil {
		total = *result.ContentLength
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
		bytesRead, readErr := result.Body.Read(buffer)
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
	log.Debug().Str("op", "fetch/s3").Msgf("Streamed %s to %s", output.FormatBytes(uint64(written)), outputPath)
	return nil
}
