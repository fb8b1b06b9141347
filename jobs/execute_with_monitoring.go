package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/getsentry/sentry-go"

	"github.com/navikt/isdialogmote-sub002/utils"
)

func executeWithMonitoring(ctx context.Context, jobName string, runner jobRunner) error {
	logger := utils.LoggerFromContext(ctx)
	logger.InfoContext(ctx, fmt.Sprintf("Start job %s", jobName))

	checkinId := sentry.CaptureCheckIn(
		&sentry.CheckIn{
			MonitorSlug: jobName,
			Status:      sentry.CheckInStatusInProgress,
		},
		nil,
	)

	start := time.Now()
	err := runJob(ctx, jobName, runner)
	if err != nil {
		if checkinId != nil {
			sentry.CaptureCheckIn(
				&sentry.CheckIn{
					ID:          *checkinId,
					MonitorSlug: jobName,
					Status:      sentry.CheckInStatusError,
					Duration:    time.Since(start),
				},
				nil,
			)
		}
		utils.LogAndReportSentryError(ctx, err)
		return errors.Wrapf(err, "error executing job %s", jobName)
	}

	if checkinId != nil {
		sentry.CaptureCheckIn(
			&sentry.CheckIn{
				ID:          *checkinId,
				MonitorSlug: jobName,
				Status:      sentry.CheckInStatusOK,
				Duration:    time.Since(start),
			},
			nil,
		)
	}

	logger.InfoContext(ctx, fmt.Sprintf("Done executing job %s", jobName))
	return nil
}
