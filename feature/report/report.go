package report

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"renting-scraper/core/storage"
	"renting-scraper/feature/property/diff"

	"github.com/minio/minio-go/v7"
)

// Report is the archived record of one reconciliation run.
type Report struct {
	GeneratedAt time.Time    `json:"generatedAt"`
	Summary     diff.Summary `json:"summary"`
	Diffs       []diff.Diff  `json:"diffs"`
}

// Upload serializes the run result and stores it in the bucket under
// reports/<timestamp>.json, creating the bucket on first use. It
// returns the object name.
func Upload(ctx context.Context, client storage.Client, bucket string, result *diff.Result) (string, error) {
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return "", fmt.Errorf("failed to check report bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return "", fmt.Errorf("failed to create report bucket: %w", err)
		}
	}

	rep := Report{
		GeneratedAt: time.Now().UTC(),
		Summary:     result.Summary,
		Diffs:       result.Diffs,
	}

	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal run report: %w", err)
	}

	objectName := fmt.Sprintf("reports/%s.json", rep.GeneratedAt.Format("2006-01-02T15-04-05Z"))
	_, err = client.PutObject(
		ctx,
		bucket,
		objectName,
		bytes.NewReader(data),
		int64(len(data)),
		minio.PutObjectOptions{ContentType: "application/json"},
	)
	if err != nil {
		return "", fmt.Errorf("failed to upload run report: %w", err)
	}

	return objectName, nil
}
