package cmd

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/navikt/isdialogmote-sub002/infra"
	"github.com/navikt/isdialogmote-sub002/jobs"
	"github.com/navikt/isdialogmote-sub002/utils"
)

// RunJobScheduler runs the periodic jobs on cron expressions, for deployments without the task queue.
func RunJobScheduler(apiVersion string) error {
	config := readAppConfig()

	logger := utils.NewLogger(config.loggingFormat)
	ctx := utils.StoreLoggerInContext(context.Background(), logger)

	infra.SetupSentry(config.sentryDsn, config.env, apiVersion)
	defer sentry.Flush(3 * time.Second)

	utils.RegisterMetrics(prometheus.DefaultRegisterer)

	deps, err := setupDependencies(ctx, config, logger, apiVersion)
	defer deps.close(context.WithoutCancel(ctx))
	if err != nil {
		utils.LogAndReportSentryError(ctx, err)
		return err
	}
	ctx = utils.StoreOpenTelemetryTracerInContext(ctx, deps.telemetry.Tracer)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	jobs.RunScheduler(ctx, config.jobs, deps.usecases)

	logger.InfoContext(ctx, "job scheduler stopped")
	return nil
}
