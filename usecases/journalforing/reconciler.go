package journalforing

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"

	"github.com/navikt/isdialogmote-sub002/models"
	"github.com/navikt/isdialogmote-sub002/repositories"
	"github.com/navikt/isdialogmote-sub002/usecases/executor_factory"
	"github.com/navikt/isdialogmote-sub002/utils"
)

const DefaultBatchSize = 20

type journalforingRepository interface {
	ListVarslerToJournalfor(
		ctx context.Context,
		exec repositories.Executor,
		participantType models.ParticipantType,
		limit int,
	) ([]models.VarselJournalforing, error)
	SetVarselJournalpostId(
		ctx context.Context,
		tx repositories.Transaction,
		participantType models.ParticipantType,
		varselId int64,
		journalpostId int,
	) error
	ListReferaterToJournalfor(ctx context.Context, exec repositories.Executor, limit int) ([]models.ReferatJournalforing, error)
	SetReferatJournalpostId(ctx context.Context, tx repositories.Transaction, referatId int64, journalpostId int) error
	IncrementVarselJournalforingAttempts(
		ctx context.Context,
		tx repositories.Transaction,
		participantType models.ParticipantType,
		varselId int64,
	) error
	IncrementReferatJournalforingAttempts(ctx context.Context, tx repositories.Transaction, referatId int64) error
}

type archive interface {
	Archive(ctx context.Context, request models.JournalpostRequest) (int, error)
}

type pdfReader interface {
	GetPdf(ctx context.Context, pdfId uuid.UUID) ([]byte, error)
}

type personNameLookup interface {
	PersonName(ctx context.Context, personident string) (string, error)
}

type organizationNameLookup interface {
	OrganizationName(ctx context.Context, virksomhetsnummer string) (string, error)
}

// Reconciler archives every varsel and every ferdigstilt referat that has no journalpost yet.
// The journalpost id is written back in a transaction per row: a row archived once is never
// selected again. A failed row has its attempts counted and is listed after the rows that never failed.
type Reconciler struct {
	executorFactory    executor_factory.ExecutorFactory
	transactionFactory executor_factory.TransactionFactory
	repository         journalforingRepository
	archive            archive
	pdfReader          pdfReader
	personNames        personNameLookup
	organizationNames  organizationNameLookup
	batchSize          int
}

func NewReconciler(
	executorFactory executor_factory.ExecutorFactory,
	transactionFactory executor_factory.TransactionFactory,
	repository journalforingRepository,
	archive archive,
	pdfReader pdfReader,
	personNames personNameLookup,
	organizationNames organizationNameLookup,
	batchSize int,
) Reconciler {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return Reconciler{
		executorFactory:    executorFactory,
		transactionFactory: transactionFactory,
		repository:         repository,
		archive:            archive,
		pdfReader:          pdfReader,
		personNames:        personNames,
		organizationNames:  organizationNames,
		batchSize:          batchSize,
	}
}

func (r Reconciler) RunOnce(ctx context.Context) (models.JobResult, error) {
	logger := utils.LoggerFromContext(ctx).With("job", "journalforing")
	ctx = utils.StoreLoggerInContext(ctx, logger)

	var result models.JobResult
	var firstErr error
	for _, participantType := range models.ParticipantTypes {
		participantResult, err := r.journalforVarsler(ctx, logger, participantType)
		result = result.Add(participantResult)
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}

	referatResult, err := r.journalforReferater(ctx, logger)
	result = result.Add(referatResult)
	if err != nil && firstErr == nil {
		firstErr = err
	}

	logger.InfoContext(ctx, fmt.Sprintf("journalforing: %d archived, %d failed", result.Updated, result.Failed))
	return result, firstErr
}

func (r Reconciler) journalforVarsler(
	ctx context.Context,
	logger *slog.Logger,
	participantType models.ParticipantType,
) (models.JobResult, error) {
	varsler, err := r.repository.ListVarslerToJournalfor(ctx, r.executorFactory.NewExecutor(), participantType, r.batchSize)
	if err != nil {
		return models.JobResult{}, errors.Wrapf(err, "could not list %s varsler to journalfor", participantType)
	}

	var result models.JobResult
	for _, varsel := range varsler {
		rowCtx := repositories.WithCallId(ctx, callId(varsel.VarselUuid))
		if err := r.journalforVarsel(rowCtx, varsel); err != nil {
			result.Failed++
			logger.WarnContext(ctx, fmt.Sprintf("could not journalfor %s varsel %s: %v",
				participantType, varsel.VarselUuid, err))
			r.recordAttempt(ctx, logger, func(tx repositories.Transaction) error {
				return r.repository.IncrementVarselJournalforingAttempts(ctx, tx, participantType, varsel.VarselId)
			})
			continue
		}
		result.Updated++
	}
	utils.MetricJobRows.WithLabelValues("journalforing", "updated").Add(float64(result.Updated))
	utils.MetricJobRows.WithLabelValues("journalforing", "failed").Add(float64(result.Failed))
	return result, nil
}

func (r Reconciler) journalforVarsel(ctx context.Context, varsel models.VarselJournalforing) error {
	var mottakerNavn string
	switch varsel.ParticipantType {
	case models.ParticipantTypeArbeidsgiver:
		mottakerNavn = r.organizationName(ctx, varsel.Virksomhetsnummer)
	case models.ParticipantTypeBehandler:
		mottakerNavn = varsel.BehandlerNavn
		if mottakerNavn == "" {
			mottakerNavn = models.UnknownRecipientName
		}
	default:
		mottakerNavn = r.personName(ctx, varsel.Personident)
	}

	pdf, err := r.pdfReader.GetPdf(ctx, varsel.PdfId)
	if err != nil {
		return err
	}
	journalpostId, err := r.archive.Archive(ctx, models.NewVarselJournalpostRequest(varsel, mottakerNavn, pdf))
	if err != nil {
		return err
	}
	return r.transactionFactory.Transaction(ctx, func(tx repositories.Transaction) error {
		return r.repository.SetVarselJournalpostId(ctx, tx, varsel.ParticipantType, varsel.VarselId, journalpostId)
	})
}

func (r Reconciler) journalforReferater(ctx context.Context, logger *slog.Logger) (models.JobResult, error) {
	referater, err := r.repository.ListReferaterToJournalfor(ctx, r.executorFactory.NewExecutor(), r.batchSize)
	if err != nil {
		return models.JobResult{}, errors.Wrap(err, "could not list referater to journalfor")
	}

	var result models.JobResult
	for _, referat := range referater {
		rowCtx := repositories.WithCallId(ctx, callId(referat.ReferatUuid))
		if err := r.journalforReferat(rowCtx, referat); err != nil {
			result.Failed++
			logger.WarnContext(ctx, fmt.Sprintf("could not journalfor referat %s: %v", referat.ReferatUuid, err))
			r.recordAttempt(ctx, logger, func(tx repositories.Transaction) error {
				return r.repository.IncrementReferatJournalforingAttempts(ctx, tx, referat.ReferatId)
			})
			continue
		}
		result.Updated++
	}
	utils.MetricJobRows.WithLabelValues("journalforing", "updated").Add(float64(result.Updated))
	utils.MetricJobRows.WithLabelValues("journalforing", "failed").Add(float64(result.Failed))
	return result, nil
}

func (r Reconciler) journalforReferat(ctx context.Context, referat models.ReferatJournalforing) error {
	mottakerNavn := r.personName(ctx, referat.Personident)

	pdf, err := r.pdfReader.GetPdf(ctx, referat.PdfId)
	if err != nil {
		return err
	}
	journalpostId, err := r.archive.Archive(ctx, models.NewReferatJournalpostRequest(referat, mottakerNavn, pdf))
	if err != nil {
		return err
	}
	return r.transactionFactory.Transaction(ctx, func(tx repositories.Transaction) error {
		return r.repository.SetReferatJournalpostId(ctx, tx, referat.ReferatId, journalpostId)
	})
}

func (r Reconciler) recordAttempt(ctx context.Context, logger *slog.Logger, increment func(tx repositories.Transaction) error) {
	if err := r.transactionFactory.Transaction(ctx, increment); err != nil {
		logger.WarnContext(ctx, fmt.Sprintf("could not record the failed journalforing attempt: %v", err))
	}
}

func callId(rowUuid uuid.UUID) string {
	return "isdialogmote-" + rowUuid.String()
}

func (r Reconciler) personName(ctx context.Context, personident string) string {
	name, err := r.personNames.PersonName(ctx, personident)
	if err != nil || name == "" {
		if err != nil {
			utils.LoggerFromContext(ctx).WarnContext(ctx, fmt.Sprintf("person name lookup failed: %v", err))
		}
		return models.UnknownRecipientName
	}
	return name
}

func (r Reconciler) organizationName(ctx context.Context, virksomhetsnummer string) string {
	name, err := r.organizationNames.OrganizationName(ctx, virksomhetsnummer)
	if err != nil || name == "" {
		if err != nil {
			utils.LoggerFromContext(ctx).WarnContext(ctx, fmt.Sprintf("organization name lookup failed: %v", err))
		}
		return models.UnknownRecipientName
	}
	return name
}
