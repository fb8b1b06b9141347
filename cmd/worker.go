package cmd

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/getsentry/sentry-go"
	"github.com/jackc/pgx/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"
	"golang.org/x/sync/errgroup"

	"github.com/navikt/isdialogmote-sub002/api"
	"github.com/navikt/isdialogmote-sub002/infra"
	"github.com/navikt/isdialogmote-sub002/jobs"
	"github.com/navikt/isdialogmote-sub002/repositories"
	"github.com/navikt/isdialogmote-sub002/utils"
)

const (
	workerMaxConcurrency = 4
	softStopTimeout      = 5 * time.Second
	hardStopTimeout      = 10 * time.Second
)

func RunWorker(apiVersion string) error {
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

	if err := repositories.RunTaskQueueMigrations(ctx, deps.pool, logger); err != nil {
		utils.LogAndReportSentryError(ctx, err)
		return err
	}

	workers := river.NewWorkers()
	jobs.AddWorkers(workers, deps.usecases)
	riverClient, err := river.NewClient(riverpgxv5.New(deps.pool), &river.Config{
		Logger:            logger,
		FetchPollInterval: time.Second,
		Queues: map[string]river.QueueConfig{
			jobs.JOBS_QUEUE: {MaxWorkers: workerMaxConcurrency},
		},
		PeriodicJobs: jobs.PeriodicJobs(config.jobs),
		// Must be larger than the time it takes to process a job.
		RescueStuckJobsAfter: jobs.JOB_MAX_DURATION + time.Minute,
		Middleware:           jobs.Middlewares(logger, deps.telemetry.Tracer),
		Workers:              workers,
	})
	if err != nil {
		utils.LogAndReportSentryError(ctx, err)
		return err
	}

	apiConfig := api.Configuration{
		Env:           config.env,
		AppName:       appName,
		Version:       apiVersion,
		Port:          config.probePort,
		ProfilingMode: config.profilingMode,
		GcpProjectId:  config.gcpProjectId,
	}
	router := api.InitRouterMiddlewares(ctx, apiConfig, deps.telemetry)
	server := api.NewServer(ctx, router, apiConfig, deps.usecases, prometheus.DefaultGatherer)

	signalCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// river gets its own context: a cancelled start context would skip the soft stop
	if err := riverClient.Start(context.WithoutCancel(ctx)); err != nil {
		utils.LogAndReportSentryError(ctx, err)
		return err
	}

	g, gCtx := errgroup.WithContext(signalCtx)
	g.Go(func() error {
		logger.InfoContext(ctx, "starting probe server", "port", config.probePort)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrap(err, "probe server failed")
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), softStopTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	g.Go(func() error {
		<-gCtx.Done()
		return cleanStop(context.WithoutCancel(ctx), riverClient)
	})

	if err := g.Wait(); err != nil {
		utils.LogAndReportSentryError(ctx, err)
		return err
	}
	logger.InfoContext(ctx, "worker stopped")
	return nil
}

// cleanStop tries to stop gracefully by allowing a chance for jobs to finish. If that does not work within
// the soft stop timeout, it cancels the context of all active jobs.
func cleanStop(ctx context.Context, riverClient *river.Client[pgx.Tx]) error {
	logger := utils.LoggerFromContext(ctx)
	logger.InfoContext(ctx, "Received SIGINT/SIGTERM; initiating soft stop (try to wait for jobs to finish)")

	softStopCtx, softStopCtxCancel := context.WithTimeout(ctx, softStopTimeout)
	defer softStopCtxCancel()

	err := riverClient.Stop(softStopCtx)
	if err == nil {
		logger.InfoContext(ctx, "Soft stop succeeded")
		return nil
	}
	if !errors.Is(err, context.DeadlineExceeded) && !errors.Is(err, context.Canceled) {
		return errors.Wrap(err, "soft stop failed")
	}

	logger.InfoContext(ctx, "Soft stop timeout; initiating hard stop (cancel everything)")
	hardStopCtx, hardStopCtxCancel := context.WithTimeout(ctx, hardStopTimeout)
	defer hardStopCtxCancel()

	// As long as all jobs respect context cancellation, StopAndCancel will always work.
	err = riverClient.StopAndCancel(hardStopCtx)
	if err != nil && errors.Is(err, context.DeadlineExceeded) {
		logger.InfoContext(ctx, "Hard stop timeout; ignoring stop procedure and exiting unsafely")
		return nil
	}
	return err
}
