package varsel

import (
	"context"
	"fmt"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/navikt/isdialogmote-sub002/models"
	"github.com/navikt/isdialogmote-sub002/repositories"
	"github.com/navikt/isdialogmote-sub002/repositories/clock"
	"github.com/navikt/isdialogmote-sub002/usecases/executor_factory"
	"github.com/navikt/isdialogmote-sub002/utils"
)

const (
	DefaultDeliveryBatchSize   = 20
	DefaultDeliveryGracePeriod = 10 * time.Minute
)

type undeliveredVarselRepository interface {
	ListUndeliveredVarsler(
		ctx context.Context,
		exec repositories.Executor,
		participantType models.ParticipantType,
		createdBefore time.Time,
		limit int,
	) ([]models.VarselDelivery, error)
	MarkVarselDelivered(
		ctx context.Context,
		tx repositories.Transaction,
		participantType models.ParticipantType,
		varselId int64,
		deliveredAt time.Time,
	) error
	IncrementVarselDeliveryAttempts(
		ctx context.Context,
		tx repositories.Transaction,
		participantType models.ParticipantType,
		varselId int64,
	) error
}

// DeliveryReconciler delivers the varsler whose delivery failed when they were dispatched. A varsel that
// fails again has its attempts counted and is listed after the varsler that failed less.
type DeliveryReconciler struct {
	executorFactory     executor_factory.ExecutorFactory
	transactionFactory  executor_factory.TransactionFactory
	repository          undeliveredVarselRepository
	pdfStore            pdfStore
	narmesteLederLookup narmesteLederLookup
	channels            Channels
	clock               clock.Clock
	batchSize           int
	gracePeriod         time.Duration
}

func NewDeliveryReconciler(
	executorFactory executor_factory.ExecutorFactory,
	transactionFactory executor_factory.TransactionFactory,
	repository undeliveredVarselRepository,
	pdfStore pdfStore,
	narmesteLederLookup narmesteLederLookup,
	channels Channels,
	clock clock.Clock,
	batchSize int,
	gracePeriod time.Duration,
) DeliveryReconciler {
	if batchSize <= 0 {
		batchSize = DefaultDeliveryBatchSize
	}
	if gracePeriod <= 0 {
		gracePeriod = DefaultDeliveryGracePeriod
	}
	return DeliveryReconciler{
		executorFactory:     executorFactory,
		transactionFactory:  transactionFactory,
		repository:          repository,
		pdfStore:            pdfStore,
		narmesteLederLookup: narmesteLederLookup,
		channels:            channels,
		clock:               clock,
		batchSize:           batchSize,
		gracePeriod:         gracePeriod,
	}
}

func (r DeliveryReconciler) RunOnce(ctx context.Context) (models.JobResult, error) {
	logger := utils.LoggerFromContext(ctx).With("job", "varsel_delivery")
	ctx = utils.StoreLoggerInContext(ctx, logger)

	var result models.JobResult
	var firstErr error
	createdBefore := r.clock.Now().Add(-r.gracePeriod)
	for _, participantType := range models.ParticipantTypes {
		deliveries, err := r.repository.ListUndeliveredVarsler(ctx, r.executorFactory.NewExecutor(),
			participantType, createdBefore, r.batchSize)
		if err != nil {
			if firstErr == nil {
				firstErr = errors.Wrapf(err, "could not list undelivered %s varsler", participantType)
			}
			continue
		}

		for _, delivery := range deliveries {
			rowCtx := repositories.WithCallId(ctx, "isdialogmote-"+delivery.VarselUuid.String())
			if err := r.redeliver(rowCtx, delivery); err != nil {
				result.Failed++
				utils.MetricVarselDeliveryFailed.WithLabelValues(string(delivery.Channel)).Inc()
				logger.WarnContext(ctx, fmt.Sprintf("could not deliver varsel %s through %s: %v",
					delivery.VarselUuid, delivery.Channel, err))
				r.recordAttempt(ctx, delivery)
				continue
			}
			result.Updated++
		}
	}

	logger.InfoContext(ctx, fmt.Sprintf("varsel delivery: %d delivered, %d failed", result.Updated, result.Failed))
	return result, firstErr
}

func (r DeliveryReconciler) redeliver(ctx context.Context, delivery models.VarselDelivery) error {
	pdf, err := r.pdfStore.GetPdf(ctx, delivery.PdfId)
	if err != nil {
		return err
	}
	delivery.Pdf = pdf

	// the narmeste leder is not stored with the varsel, and may have changed since it was created
	if delivery.Channel == models.DeliveryChannelNarmesteLeder {
		leder, err := r.narmesteLederLookup.ActiveNarmesteLeder(ctx, delivery.Personident, delivery.Virksomhetsnummer)
		if err != nil {
			return err
		}
		if leder == nil {
			delivery.Channel = models.DeliveryChannelAltinn
		}
		delivery.NarmesteLeder = leder
	}

	channel, err := r.channels.For(delivery.Channel)
	if err != nil {
		return err
	}
	if err := channel.Deliver(ctx, delivery); err != nil {
		return err
	}
	return r.transactionFactory.Transaction(ctx, func(tx repositories.Transaction) error {
		return r.repository.MarkVarselDelivered(ctx, tx, delivery.ParticipantType, delivery.VarselId, r.clock.Now())
	})
}

func (r DeliveryReconciler) recordAttempt(ctx context.Context, delivery models.VarselDelivery) {
	err := r.transactionFactory.Transaction(ctx, func(tx repositories.Transaction) error {
		return r.repository.IncrementVarselDeliveryAttempts(ctx, tx, delivery.ParticipantType, delivery.VarselId)
	})
	if err != nil {
		utils.LoggerFromContext(ctx).WarnContext(ctx, fmt.Sprintf(
			"could not record the failed delivery of varsel %s: %v", delivery.VarselUuid, err))
	}
}
