package statusendring

import (
	"context"
	"fmt"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/hashicorp/go-set/v2"

	"github.com/navikt/isdialogmote-sub002/models"
	"github.com/navikt/isdialogmote-sub002/repositories"
	"github.com/navikt/isdialogmote-sub002/repositories/clock"
	"github.com/navikt/isdialogmote-sub002/usecases/executor_factory"
	"github.com/navikt/isdialogmote-sub002/utils"
)

const DefaultBatchSize = 100

type statusEndringRepository interface {
	ListUnpublishedStatusEndringer(ctx context.Context, exec repositories.Executor, limit int) ([]models.StatusEndringToPublish, error)
	MarkStatusEndringPublished(ctx context.Context, tx repositories.Transaction, statusEndringId int64, publishedAt time.Time) error
	IncrementStatusEndringPublishAttempts(ctx context.Context, tx repositories.Transaction, statusEndringId int64) error
}

type statusEndringProducer interface {
	PublishStatusEndring(ctx context.Context, endring models.KDialogmoteStatusEndring) error
}

// Publisher publishes the status endringer of a dialogmote in the order they were created. A crash
// between the publication and the write of published_at publishes the endring again on the next run.
// Dialogmoter whose oldest unpublished endring keeps failing are listed after the others.
type Publisher struct {
	executorFactory    executor_factory.ExecutorFactory
	transactionFactory executor_factory.TransactionFactory
	repository         statusEndringRepository
	producer           statusEndringProducer
	clock              clock.Clock
	batchSize          int
}

func NewPublisher(
	executorFactory executor_factory.ExecutorFactory,
	transactionFactory executor_factory.TransactionFactory,
	repository statusEndringRepository,
	producer statusEndringProducer,
	clock clock.Clock,
	batchSize int,
) Publisher {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return Publisher{
		executorFactory:    executorFactory,
		transactionFactory: transactionFactory,
		repository:         repository,
		producer:           producer,
		clock:              clock,
		batchSize:          batchSize,
	}
}

func (p Publisher) RunOnce(ctx context.Context) (models.JobResult, error) {
	logger := utils.LoggerFromContext(ctx).With("job", "status_endring_publish")

	endringer, err := p.repository.ListUnpublishedStatusEndringer(ctx, p.executorFactory.NewExecutor(), p.batchSize)
	if err != nil {
		return models.JobResult{}, errors.Wrap(err, "could not list unpublished status endringer")
	}

	var result models.JobResult
	// the later endringer of a dialogmote wait for the one that failed
	blocked := set.New[uuid.UUID](0)
	for _, endring := range endringer {
		if blocked.Contains(endring.DialogmoteUuid) {
			continue
		}
		err := p.publish(ctx, endring)
		if err != nil {
			result.Failed++
			blocked.Insert(endring.DialogmoteUuid)
			logger.WarnContext(ctx, fmt.Sprintf("could not publish status endring %s of dialogmote %s: %v",
				endring.StatusEndring.Uuid, endring.DialogmoteUuid, err))
			p.recordAttempt(ctx, endring)
			continue
		}
		result.Updated++
	}

	utils.MetricJobRows.WithLabelValues("status_endring_publish", "updated").Add(float64(result.Updated))
	utils.MetricJobRows.WithLabelValues("status_endring_publish", "failed").Add(float64(result.Failed))
	logger.InfoContext(ctx, fmt.Sprintf("status endring publish: %d published, %d failed", result.Updated, result.Failed))
	return result, nil
}

func (p Publisher) publish(ctx context.Context, endring models.StatusEndringToPublish) error {
	if err := p.producer.PublishStatusEndring(ctx, models.NewKDialogmoteStatusEndring(endring)); err != nil {
		return err
	}
	return p.transactionFactory.Transaction(ctx, func(tx repositories.Transaction) error {
		return p.repository.MarkStatusEndringPublished(ctx, tx, endring.StatusEndring.Id, p.clock.Now())
	})
}

func (p Publisher) recordAttempt(ctx context.Context, endring models.StatusEndringToPublish) {
	err := p.transactionFactory.Transaction(ctx, func(tx repositories.Transaction) error {
		return p.repository.IncrementStatusEndringPublishAttempts(ctx, tx, endring.StatusEndring.Id)
	})
	if err != nil {
		utils.LoggerFromContext(ctx).WarnContext(ctx, fmt.Sprintf(
			"could not record the failed publication of status endring %s: %v", endring.StatusEndring.Uuid, err))
	}
}
