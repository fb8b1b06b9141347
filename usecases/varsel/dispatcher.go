package varsel

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"

	"github.com/navikt/isdialogmote-sub002/models"
	"github.com/navikt/isdialogmote-sub002/repositories"
	"github.com/navikt/isdialogmote-sub002/repositories/clock"
	"github.com/navikt/isdialogmote-sub002/usecases/executor_factory"
	"github.com/navikt/isdialogmote-sub002/utils"
)

type varselRepository interface {
	CreateVarsel(ctx context.Context, tx repositories.Transaction, input models.VarselCreate) (models.Varsel, error)
	MarkVarselDelivered(
		ctx context.Context,
		tx repositories.Transaction,
		participantType models.ParticipantType,
		varselId int64,
		deliveredAt time.Time,
	) error
}

type pdfRenderer interface {
	RenderPdf(ctx context.Context, template string, components []models.DocumentComponent) ([]byte, error)
}

type pdfStore interface {
	StorePdf(ctx context.Context, pdf []byte) (uuid.UUID, error)
	GetPdf(ctx context.Context, pdfId uuid.UUID) ([]byte, error)
}

type consentLookup interface {
	HasDigitalConsent(ctx context.Context, personident string) (bool, error)
}

type narmesteLederLookup interface {
	ActiveNarmesteLeder(ctx context.Context, personident string, virksomhetsnummer string) (*models.NarmesteLeder, error)
}

// DeliveryChannel hands a varsel over to the system that notifies the participant.
type DeliveryChannel interface {
	Deliver(ctx context.Context, delivery models.VarselDelivery) error
}

// Dispatcher notifies the participants of a dialogmote of a lifecycle event. The varsel is stored
// before it is delivered: a failed delivery is retried by the DeliveryReconciler.
type Dispatcher struct {
	transactionFactory  executor_factory.TransactionFactory
	repository          varselRepository
	renderer            pdfRenderer
	pdfStore            pdfStore
	consentLookup       consentLookup
	narmesteLederLookup narmesteLederLookup
	channels            Channels
	clock               clock.Clock
}

func NewDispatcher(
	transactionFactory executor_factory.TransactionFactory,
	repository varselRepository,
	renderer pdfRenderer,
	pdfStore pdfStore,
	consentLookup consentLookup,
	narmesteLederLookup narmesteLederLookup,
	channels Channels,
	clock clock.Clock,
) Dispatcher {
	return Dispatcher{
		transactionFactory:  transactionFactory,
		repository:          repository,
		renderer:            renderer,
		pdfStore:            pdfStore,
		consentLookup:       consentLookup,
		narmesteLederLookup: narmesteLederLookup,
		channels:            channels,
		clock:               clock,
	}
}

// Dispatch never fails: every participant is handled on its own and the failures are counted in the result.
func (d Dispatcher) Dispatch(ctx context.Context, event models.DialogmoteEvent) models.DispatchResult {
	logger := utils.LoggerFromContext(ctx).With(
		"dialogmote_uuid", event.Dialogmote.Uuid.String(),
		"varsel_type", string(event.Type))

	var result models.DispatchResult
	for _, participant := range event.Dialogmote.Participants() {
		if !event.Eligible(participant) {
			continue
		}
		participantLogger := logger.With("participant_type", string(participant.ParticipantType()))

		varsel, delivery, err := d.createVarsel(ctx, participantLogger, event, participant)
		if err != nil {
			result.Failed++
			participantLogger.WarnContext(ctx, fmt.Sprintf("could not create varsel: %v", err))
			continue
		}
		result.Created++
		utils.MetricVarselCreated.
			WithLabelValues(string(participant.ParticipantType()), string(varsel.Channel)).Inc()

		if err := d.deliver(ctx, delivery); err != nil {
			result.Failed++
			utils.MetricVarselDeliveryFailed.WithLabelValues(string(delivery.Channel)).Inc()
			participantLogger.WarnContext(ctx, fmt.Sprintf("could not deliver varsel %s through %s: %v",
				varsel.Uuid, delivery.Channel, err))
			continue
		}
		result.Delivered++
	}

	logger.InfoContext(ctx, fmt.Sprintf("dispatched varsler: %d created, %d delivered, %d failed",
		result.Created, result.Delivered, result.Failed))
	return result
}

func (d Dispatcher) createVarsel(
	ctx context.Context,
	logger *slog.Logger,
	event models.DialogmoteEvent,
	participant models.Participant,
) (models.Varsel, models.VarselDelivery, error) {
	document := event.Documents[participant.ParticipantType()]

	pdf := document.Pdf
	if len(pdf) == 0 {
		var err error
		pdf, err = d.renderer.RenderPdf(ctx,
			models.PdfTemplate(event.Type, participant.ParticipantType()), document.Components)
		if err != nil {
			return models.Varsel{}, models.VarselDelivery{}, errors.Wrap(err, "could not render pdf")
		}
	}
	pdfId := document.PdfId
	if pdfId == uuid.Nil || len(document.Pdf) == 0 {
		var err error
		pdfId, err = d.pdfStore.StorePdf(ctx, pdf)
		if err != nil {
			return models.Varsel{}, models.VarselDelivery{}, err
		}
	}

	delivery := d.selectChannel(ctx, logger, event.Dialogmote, participant)

	varsel, err := executor_factory.TransactionReturnValue(ctx, d.transactionFactory,
		func(tx repositories.Transaction) (models.Varsel, error) {
			return d.repository.CreateVarsel(ctx, tx, models.VarselCreate{
				Uuid:               uuid.New(),
				ParticipantType:    participant.ParticipantType(),
				ParticipantId:      participant.ParticipantId(),
				Type:               event.Type,
				PdfId:              pdfId,
				Fritekst:           document.Fritekst,
				DocumentComponents: document.Components,
				Channel:            delivery.Channel,
			})
		})
	if err != nil {
		return models.Varsel{}, models.VarselDelivery{}, err
	}

	delivery.VarselId = varsel.Id
	delivery.VarselUuid = varsel.Uuid
	delivery.Type = varsel.Type
	delivery.PdfId = pdfId
	delivery.Pdf = pdf
	delivery.Fritekst = document.Fritekst
	delivery.CreatedAt = varsel.CreatedAt
	return varsel, delivery, nil
}

// selectChannel picks the delivery channel of the participant. A failed lookup falls back to the
// channel that needs no lookup.
func (d Dispatcher) selectChannel(
	ctx context.Context,
	logger *slog.Logger,
	dialogmote models.Dialogmote,
	participant models.Participant,
) models.VarselDelivery {
	delivery := models.VarselDelivery{
		ParticipantType:   participant.ParticipantType(),
		DialogmoteUuid:    dialogmote.Uuid,
		Personident:       dialogmote.Arbeidstaker.Personident,
		Virksomhetsnummer: dialogmote.Arbeidsgiver.Virksomhetsnummer,
	}

	switch p := participant.(type) {
	case models.Arbeidstaker:
		delivery.Channel = models.DeliveryChannelPaper
		consent, err := d.consentLookup.HasDigitalConsent(ctx, p.Personident)
		if err != nil {
			logEnrichmentFailure(ctx, logger, errors.Wrap(err, "consent lookup failed, sending on paper"))
		} else if consent {
			delivery.Channel = models.DeliveryChannelDigital
		}
	case models.Arbeidsgiver:
		delivery.Channel = models.DeliveryChannelAltinn
		leder, err := d.narmesteLederLookup.ActiveNarmesteLeder(ctx, dialogmote.Arbeidstaker.Personident, p.Virksomhetsnummer)
		if err != nil {
			logEnrichmentFailure(ctx, logger, errors.Wrap(err, "narmeste leder lookup failed, sending to altinn"))
		} else if leder != nil {
			delivery.Channel = models.DeliveryChannelNarmesteLeder
			delivery.NarmesteLeder = leder
		}
	case models.Behandler:
		delivery.Channel = models.DeliveryChannelDialogmelding
		delivery.BehandlerRef = p.BehandlerRef
	}
	return delivery
}

func (d Dispatcher) deliver(ctx context.Context, delivery models.VarselDelivery) error {
	channel, err := d.channels.For(delivery.Channel)
	if err != nil {
		return err
	}
	if err := channel.Deliver(ctx, delivery); err != nil {
		return err
	}
	return d.transactionFactory.Transaction(ctx, func(tx repositories.Transaction) error {
		return d.repository.MarkVarselDelivered(ctx, tx, delivery.ParticipantType, delivery.VarselId, d.clock.Now())
	})
}

func logEnrichmentFailure(ctx context.Context, logger *slog.Logger, err error) {
	logger.WarnContext(ctx, err.Error(), "enrichment_failure", true)
}
