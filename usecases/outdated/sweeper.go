package outdated

import (
	"context"
	"fmt"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"

	"github.com/navikt/isdialogmote-sub002/models"
	"github.com/navikt/isdialogmote-sub002/repositories"
	"github.com/navikt/isdialogmote-sub002/repositories/clock"
	"github.com/navikt/isdialogmote-sub002/usecases/executor_factory"
	"github.com/navikt/isdialogmote-sub002/utils"
)

const (
	DefaultCutoffMonths = 1
	DefaultBatchSize    = 100
)

type outdatedRepository interface {
	ListOutdatedDialogmoter(ctx context.Context, exec repositories.Executor, cutoff time.Time, limit int) ([]models.OutdatedDialogmote, error)
	IncrementSweepAttempts(ctx context.Context, tx repositories.Transaction, dialogmoteId int64) error
}

type dialogmoteCloser interface {
	CloseDialogmote(ctx context.Context, dialogmoteUuid uuid.UUID, cutoff time.Time) error
}

// Sweeper closes the open dialogmoter whose tid is older than the cutoff. Finalized and cancelled
// dialogmoter are never selected. A dialogmote that could not be closed is tried again after the others.
type Sweeper struct {
	executorFactory    executor_factory.ExecutorFactory
	transactionFactory executor_factory.TransactionFactory
	repository         outdatedRepository
	closer             dialogmoteCloser
	clock              clock.Clock
	cutoffMonths       int
	batchSize          int
}

func NewSweeper(
	executorFactory executor_factory.ExecutorFactory,
	transactionFactory executor_factory.TransactionFactory,
	repository outdatedRepository,
	closer dialogmoteCloser,
	clock clock.Clock,
	cutoffMonths int,
	batchSize int,
) Sweeper {
	if cutoffMonths <= 0 {
		cutoffMonths = DefaultCutoffMonths
	}
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return Sweeper{
		executorFactory:    executorFactory,
		transactionFactory: transactionFactory,
		repository:         repository,
		closer:             closer,
		clock:              clock,
		cutoffMonths:       cutoffMonths,
		batchSize:          batchSize,
	}
}

func (s Sweeper) Cutoff() time.Time {
	return s.clock.Now().AddDate(0, -s.cutoffMonths, 0)
}

func (s Sweeper) RunOnce(ctx context.Context) (models.JobResult, error) {
	logger := utils.LoggerFromContext(ctx).With("job", "outdated_dialogmote")
	ctx = utils.StoreLoggerInContext(ctx, logger)

	cutoff := s.Cutoff()
	dialogmoter, err := s.repository.ListOutdatedDialogmoter(ctx, s.executorFactory.NewExecutor(), cutoff, s.batchSize)
	if err != nil {
		return models.JobResult{}, errors.Wrap(err, "could not list outdated dialogmoter")
	}

	var result models.JobResult
	for _, dialogmote := range dialogmoter {
		if err := s.closer.CloseDialogmote(ctx, dialogmote.Uuid, cutoff); err != nil {
			result.Failed++
			logger.WarnContext(ctx, fmt.Sprintf("could not close dialogmote %s with tid %s: %v",
				dialogmote.Uuid, dialogmote.Tid.Format(time.RFC3339), err))
			s.recordAttempt(ctx, dialogmote)
			continue
		}
		result.Updated++
	}

	utils.MetricJobRows.WithLabelValues("outdated_dialogmote", "updated").Add(float64(result.Updated))
	utils.MetricJobRows.WithLabelValues("outdated_dialogmote", "failed").Add(float64(result.Failed))
	logger.InfoContext(ctx, fmt.Sprintf("outdated dialogmoter: %d closed, %d failed", result.Updated, result.Failed))
	return result, nil
}

func (s Sweeper) recordAttempt(ctx context.Context, dialogmote models.OutdatedDialogmote) {
	err := s.transactionFactory.Transaction(ctx, func(tx repositories.Transaction) error {
		return s.repository.IncrementSweepAttempts(ctx, tx, dialogmote.Id)
	})
	if err != nil {
		utils.LoggerFromContext(ctx).WarnContext(ctx, fmt.Sprintf(
			"could not record the failed close of dialogmote %s: %v", dialogmote.Uuid, err))
	}
}
