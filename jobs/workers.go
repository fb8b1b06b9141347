package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/riverqueue/river"

	"github.com/navikt/isdialogmote-sub002/infra"
	"github.com/navikt/isdialogmote-sub002/models"
	"github.com/navikt/isdialogmote-sub002/usecases"
	"github.com/navikt/isdialogmote-sub002/utils"
)

const (
	JOBS_QUEUE       = river.QueueDefault
	JOB_MAX_DURATION = 10 * time.Minute

	DEFAULT_JOURNALFORING_INTERVAL       = 1 * time.Minute
	DEFAULT_STATUS_ENDRING_INTERVAL      = 1 * time.Minute
	DEFAULT_VARSEL_DELIVERY_INTERVAL     = 5 * time.Minute
	DEFAULT_OUTDATED_DIALOGMOTE_INTERVAL = 24 * time.Hour
)

type jobRunner interface {
	RunOnce(ctx context.Context) (models.JobResult, error)
}

// runJob runs one pass of a periodic job. Failed rows are picked up again by the next pass: only a listing
// failure fails the job.
func runJob(ctx context.Context, name string, runner jobRunner) error {
	logger := utils.LoggerFromContext(ctx)

	start := time.Now()
	result, err := runner.RunOnce(ctx)
	utils.MetricJobDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())
	if err != nil {
		return err
	}

	if result.Updated > 0 || result.Failed > 0 {
		logger.InfoContext(ctx, fmt.Sprintf("%s job processed %d rows, %d failed", name, result.Updated, result.Failed),
			"updated", result.Updated,
			"failed", result.Failed)
	}
	return nil
}

func periodicJob(interval time.Duration, args river.JobArgs) *river.PeriodicJob {
	return river.NewPeriodicJob(
		river.PeriodicInterval(interval),
		func() (river.JobArgs, *river.InsertOpts) {
			return args, &river.InsertOpts{
				Queue: JOBS_QUEUE,
				UniqueOpts: river.UniqueOpts{
					ByQueue:  true,
					ByPeriod: interval,
				},
			}
		},
		&river.PeriodicJobOpts{RunOnStart: true},
	)
}

func intervalOrDefault(interval, defaultInterval time.Duration) time.Duration {
	if interval <= 0 {
		return defaultInterval
	}
	return interval
}

// PeriodicJobs lists the jobs the river client enqueues on its own.
func PeriodicJobs(config infra.JobsConfig) []*river.PeriodicJob {
	return []*river.PeriodicJob{
		periodicJob(intervalOrDefault(config.JournalforingInterval, DEFAULT_JOURNALFORING_INTERVAL),
			models.JournalforingArgs{}),
		periodicJob(intervalOrDefault(config.StatusEndringInterval, DEFAULT_STATUS_ENDRING_INTERVAL),
			models.StatusEndringPublishArgs{}),
		periodicJob(intervalOrDefault(config.VarselDeliveryInterval, DEFAULT_VARSEL_DELIVERY_INTERVAL),
			models.VarselDeliveryArgs{}),
		periodicJob(intervalOrDefault(config.OutdatedDialogmoteInterval, DEFAULT_OUTDATED_DIALOGMOTE_INTERVAL),
			models.OutdatedDialogmoteArgs{}),
	}
}

// AddWorkers registers a worker for every periodic job.
func AddWorkers(workers *river.Workers, uc usecases.Usecases) {
	river.AddWorker(workers, NewJournalforingWorker(uc.NewJournalforingReconciler()))
	river.AddWorker(workers, NewStatusEndringWorker(uc.NewStatusEndringPublisher()))
	river.AddWorker(workers, NewVarselDeliveryWorker(uc.NewDeliveryReconciler()))
	river.AddWorker(workers, NewOutdatedDialogmoteWorker(uc.NewOutdatedSweeper()))
}

type JournalforingWorker struct {
	river.WorkerDefaults[models.JournalforingArgs]

	reconciler jobRunner
}

func NewJournalforingWorker(reconciler jobRunner) *JournalforingWorker {
	return &JournalforingWorker{reconciler: reconciler}
}

func (w *JournalforingWorker) Timeout(job *river.Job[models.JournalforingArgs]) time.Duration {
	return JOB_MAX_DURATION
}

func (w *JournalforingWorker) Work(ctx context.Context, job *river.Job[models.JournalforingArgs]) error {
	return runJob(ctx, job.Kind, w.reconciler)
}

type StatusEndringWorker struct {
	river.WorkerDefaults[models.StatusEndringPublishArgs]

	publisher jobRunner
}

func NewStatusEndringWorker(publisher jobRunner) *StatusEndringWorker {
	return &StatusEndringWorker{publisher: publisher}
}

func (w *StatusEndringWorker) Timeout(job *river.Job[models.StatusEndringPublishArgs]) time.Duration {
	return JOB_MAX_DURATION
}

func (w *StatusEndringWorker) Work(ctx context.Context, job *river.Job[models.StatusEndringPublishArgs]) error {
	return runJob(ctx, job.Kind, w.publisher)
}

type VarselDeliveryWorker struct {
	river.WorkerDefaults[models.VarselDeliveryArgs]

	reconciler jobRunner
}

func NewVarselDeliveryWorker(reconciler jobRunner) *VarselDeliveryWorker {
	return &VarselDeliveryWorker{reconciler: reconciler}
}

func (w *VarselDeliveryWorker) Timeout(job *river.Job[models.VarselDeliveryArgs]) time.Duration {
	return JOB_MAX_DURATION
}

func (w *VarselDeliveryWorker) Work(ctx context.Context, job *river.Job[models.VarselDeliveryArgs]) error {
	return runJob(ctx, job.Kind, w.reconciler)
}

// OutdatedDialogmoteWorker closes the dialogmoter left open a month after their tid.
type OutdatedDialogmoteWorker struct {
	river.WorkerDefaults[models.OutdatedDialogmoteArgs]

	sweeper jobRunner
}

func NewOutdatedDialogmoteWorker(sweeper jobRunner) *OutdatedDialogmoteWorker {
	return &OutdatedDialogmoteWorker{sweeper: sweeper}
}

func (w *OutdatedDialogmoteWorker) Timeout(job *river.Job[models.OutdatedDialogmoteArgs]) time.Duration {
	return JOB_MAX_DURATION
}

func (w *OutdatedDialogmoteWorker) Work(ctx context.Context, job *river.Job[models.OutdatedDialogmoteArgs]) error {
	return runJob(ctx, job.Kind, w.sweeper)
}
