package jobs

import (
	"fmt"
	"leaguedash/pkg/logger"
	"log"
	"time"
)

// ShipLogs uploads the accumulated log file to the S3 bucket under a dated
// key. The file is truncated after a successful upload, and also after a
// failed one so a broken bucket doesn't grow the file forever.
func ShipLogs(appLogger *logger.Logger) error {
	objectKey := fmt.Sprintf("scheduler/%s.log", time.Now().Format("2006-01-02-15-04"))
	if err := appLogger.UploadToS3Bucket(objectKey); err != nil {
		appLogger.CleanFile()
		return fmt.Errorf("couldn't send the log to s3: %w", err)
	}

	log.Printf("Successfully sent log to s3 with key: %s", objectKey)
	return nil
}
