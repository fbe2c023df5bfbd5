package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"gorm.io/gorm"

	"kintai.app/kintai/core"
	"kintai.app/kintai/infrastructure/communication"
	"kintai.app/kintai/infrastructure/filesystem"
	"kintai.app/kintai/lambdas/importrecords/helper"
)

// Uploaded objects are keyed as <ownerId>/<filename>.csv; the prefix decides
// which tenant the rows land in.
func ownerFromKey(key string) (string, error) {
	parts := strings.SplitN(key, "/", 2)
	if len(parts) < 2 || parts[0] == "" {
		return "", fmt.Errorf("object key %q has no owner prefix", key)
	}
	return parts[0], nil
}

func importObject(ctx context.Context, dm *core.DatabaseManager, bucket, key string) (helper.ImportStats, error) {
	var buf bytes.Buffer
	if err := filesystem.ReadFile(bucket, key, ctx, &buf); err != nil {
		return helper.ImportStats{}, fmt.Errorf("failed to read %s: %w", key, err)
	}

	ownerID, err := ownerFromKey(key)
	if err != nil {
		return helper.ImportStats{}, err
	}

	rows, err := helper.ParseLegacyCSV(&buf)
	if err != nil {
		return helper.ImportStats{}, fmt.Errorf("failed to parse %s: %w", key, err)
	}
	fmt.Printf("[INFO] parsed %d rows from %s\n", len(rows), key)

	var stats helper.ImportStats
	err = dm.Exec(ctx, func(db *gorm.DB) error {
		stats = helper.ImportRows(db, ownerID, rows)
		return nil
	})
	return stats, err
}

func HandleRequest(ctx context.Context, event events.S3Event) error {
	dm, err := core.New(os.Getenv("DSN"), 2)
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}
	defer dm.Close()

	slack := communication.ConnectSlack()
	hasError := false

	for _, record := range event.Records {
		bucket := record.S3.Bucket.Name
		key := record.S3.Object.Key
		fmt.Printf("[INFO] importing s3://%s/%s\n", bucket, key)

		stats, err := importObject(ctx, dm, bucket, key)
		if err != nil {
			fmt.Printf("[ERROR] %v\n", err)
			hasError = true
			continue
		}
		fmt.Printf("[INFO] imported %d rows, skipped %d\n", stats.Imported, stats.Skipped)
	}

	if hasError {
		if slack != nil {
			slack.Error("Error occurred while importing attendance records")
		}
		return fmt.Errorf("error while importing attendance records")
	}
	return nil
}

func main() {
	lambda.Start(HandleRequest)
}
