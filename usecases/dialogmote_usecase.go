package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/guregu/null/v5"

	"github.com/navikt/isdialogmote-sub002/models"
	"github.com/navikt/isdialogmote-sub002/pure_utils"
	"github.com/navikt/isdialogmote-sub002/repositories"
	"github.com/navikt/isdialogmote-sub002/repositories/clock"
	"github.com/navikt/isdialogmote-sub002/usecases/executor_factory"
	"github.com/navikt/isdialogmote-sub002/utils"
)

// SystemIdent is the actor of the transitions nobody asked for.
const SystemIdent = "isdialogmote"

var validate = validator.New(validator.WithRequiredStructEnabled())

type dialogmoteRepository interface {
	CreateDialogmote(ctx context.Context, tx repositories.Transaction, input models.DialogmoteCreate) (models.DialogmoteIdentity, error)
	GetDialogmote(ctx context.Context, exec repositories.Executor, dialogmoteUuid uuid.UUID) (models.Dialogmote, error)
	GetDialogmoteForUpdate(ctx context.Context, tx repositories.Transaction, dialogmoteUuid uuid.UUID) (models.Dialogmote, error)
	ListDialogmoterForPersonident(ctx context.Context, exec repositories.Executor, personident string) ([]models.Dialogmote, error)
	ListDialogmoterForVirksomhet(ctx context.Context, exec repositories.Executor, virksomhetsnummer string) ([]models.Dialogmote, error)
	UpdateDialogmoteStatus(ctx context.Context, tx repositories.Transaction, dialogmoteId int64, status models.DialogmoteStatus) error
	UpdateTildeltVeileder(ctx context.Context, tx repositories.Transaction, dialogmoteId int64, veilederIdent string) error
	UpdateBehandlerReferatFlags(ctx context.Context, tx repositories.Transaction, behandlerId int64, deltatt, mottarReferat bool) error
	CreateTidSted(ctx context.Context, tx repositories.Transaction, dialogmoteId int64, tidSted models.NewTidSted) error

	CreateReferat(ctx context.Context, tx repositories.Transaction, input models.ReferatCreate) error
	UpdateReferat(ctx context.Context, tx repositories.Transaction, referatId int64, input models.ReferatCreate) error

	CreateStatusEndring(ctx context.Context, tx repositories.Transaction, input models.StatusEndringCreate) error

	GetVarsel(
		ctx context.Context,
		exec repositories.Executor,
		participantType models.ParticipantType,
		varselUuid uuid.UUID,
	) (models.Varsel, error)
	MarkVarselRead(
		ctx context.Context,
		tx repositories.Transaction,
		participantType models.ParticipantType,
		varselUuid uuid.UUID,
		lestDato time.Time,
	) error
	SetVarselSvar(
		ctx context.Context,
		tx repositories.Transaction,
		participantType models.ParticipantType,
		varselUuid uuid.UUID,
		svar models.Svar,
	) error
}

type varselDispatcher interface {
	Dispatch(ctx context.Context, event models.DialogmoteEvent) models.DispatchResult
}

type referatRenderer interface {
	RenderPdf(ctx context.Context, template string, components []models.DocumentComponent) ([]byte, error)
}

type referatPdfStore interface {
	StorePdf(ctx context.Context, pdf []byte) (uuid.UUID, error)
}

type tilfelleLookup interface {
	TilfelleStart(ctx context.Context, personident string) (*time.Time, error)
}

type DialogmoteUsecase struct {
	executorFactory    executor_factory.ExecutorFactory
	transactionFactory executor_factory.TransactionFactory
	repository         dialogmoteRepository
	dispatcher         varselDispatcher
	renderer           referatRenderer
	pdfStore           referatPdfStore
	tilfelleLookup     tilfelleLookup
	clock              clock.Clock
}

func NewDialogmoteUsecase(
	executorFactory executor_factory.ExecutorFactory,
	transactionFactory executor_factory.TransactionFactory,
	repository dialogmoteRepository,
	dispatcher varselDispatcher,
	renderer referatRenderer,
	pdfStore referatPdfStore,
	tilfelleLookup tilfelleLookup,
	clock clock.Clock,
) DialogmoteUsecase {
	return DialogmoteUsecase{
		executorFactory:    executorFactory,
		transactionFactory: transactionFactory,
		repository:         repository,
		dispatcher:         dispatcher,
		renderer:           renderer,
		pdfStore:           pdfStore,
		tilfelleLookup:     tilfelleLookup,
		clock:              clock,
	}
}

func validateInput(input any) error {
	if err := validate.Struct(input); err != nil {
		return errors.Wrap(models.BadParameterError, err.Error())
	}
	return nil
}

func (usecase DialogmoteUsecase) CreateDialogmote(
	ctx context.Context,
	veilederIdent string,
	input models.CreateDialogmoteInput,
) (models.Dialogmote, error) {
	switch {
	case input.Personident == "":
		return models.Dialogmote{}, models.ErrMissingArbeidstaker
	case input.Virksomhetsnummer == "":
		return models.Dialogmote{}, models.ErrMissingArbeidsgiver
	case input.TidSted.Tid.IsZero():
		return models.Dialogmote{}, models.ErrMissingTidSted
	}
	if err := validateInput(input); err != nil {
		return models.Dialogmote{}, err
	}

	tilfelleStart := usecase.lookupTilfelleStart(ctx, input.Personident)

	create := models.DialogmoteCreate{
		Uuid:                 uuid.New(),
		Status:               models.DialogmoteStatusInvited,
		CreatedBy:            veilederIdent,
		TildeltVeilederIdent: veilederIdent,
		TildeltEnhet:         input.TildeltEnhet,
		Arbeidstaker:         models.ArbeidstakerCreate{Personident: input.Personident},
		Arbeidsgiver: models.ArbeidsgiverCreate{
			Virksomhetsnummer: input.Virksomhetsnummer,
			LederNavn:         null.NewString(input.ArbeidsgiverLederNavn, input.ArbeidsgiverLederNavn != ""),
			LederEpost:        null.NewString(input.ArbeidsgiverLederEpost, input.ArbeidsgiverLederEpost != ""),
		},
		TidSted: input.TidSted,
	}
	documents := map[models.ParticipantType]models.VarselDocument{
		models.ParticipantTypeArbeidstaker: varselDocument(input.ArbeidstakerInnkalling),
		models.ParticipantTypeArbeidsgiver: varselDocument(input.ArbeidsgiverInnkalling),
	}
	if b := input.Behandler; b != nil {
		create.Behandler = &models.BehandlerCreate{
			BehandlerRef:    b.BehandlerRef,
			BehandlerNavn:   b.BehandlerNavn,
			BehandlerKontor: b.BehandlerKontor,
			BehandlerType:   b.BehandlerType,
			Personident:     null.NewString(b.Personident, b.Personident != ""),
			MottarReferat:   true,
		}
		documents[models.ParticipantTypeBehandler] = varselDocument(b.Innkalling)
	}

	identity, err := executor_factory.TransactionReturnValue(ctx, usecase.transactionFactory,
		func(tx repositories.Transaction) (models.DialogmoteIdentity, error) {
			identity, err := usecase.repository.CreateDialogmote(ctx, tx, create)
			if err != nil {
				return models.DialogmoteIdentity{}, err
			}
			err = usecase.repository.CreateStatusEndring(ctx, tx, models.StatusEndringCreate{
				Uuid:          uuid.New(),
				DialogmoteId:  identity.Id,
				Status:        models.DialogmoteStatusInvited,
				CreatedBy:     veilederIdent,
				TilfelleStart: tilfelleStart,
			})
			return identity, err
		})
	if err != nil {
		return models.Dialogmote{}, err
	}
	utils.MetricDialogmoteStatusTransition.WithLabelValues(string(models.DialogmoteStatusInvited)).Inc()

	return usecase.dispatchAndReload(ctx, models.VarselTypeInvited, identity.Uuid, documents)
}

func (usecase DialogmoteUsecase) CancelDialogmote(
	ctx context.Context,
	veilederIdent string,
	input models.CancelDialogmoteInput,
) (models.Dialogmote, error) {
	if err := validateInput(input); err != nil {
		return models.Dialogmote{}, err
	}

	dialogmote, err := usecase.transition(ctx, veilederIdent, input.DialogmoteUuid, models.DialogmoteStatusCancelled, nil)
	if err != nil {
		return models.Dialogmote{}, err
	}

	documents := participantDocuments(dialogmote, input.Arbeidstaker, input.Arbeidsgiver, input.Behandler)
	return usecase.dispatchAndReload(ctx, models.VarselTypeCancelled, dialogmote.Uuid, documents)
}

func (usecase DialogmoteUsecase) RescheduleDialogmote(
	ctx context.Context,
	veilederIdent string,
	input models.RescheduleDialogmoteInput,
) (models.Dialogmote, error) {
	if input.TidSted.Tid.IsZero() {
		return models.Dialogmote{}, models.ErrMissingTidSted
	}
	if err := validateInput(input); err != nil {
		return models.Dialogmote{}, err
	}

	dialogmote, err := usecase.transition(ctx, veilederIdent, input.DialogmoteUuid, models.DialogmoteStatusRescheduled,
		func(tx repositories.Transaction, dialogmote models.Dialogmote) error {
			return usecase.repository.CreateTidSted(ctx, tx, dialogmote.Id, input.TidSted)
		})
	if err != nil {
		return models.Dialogmote{}, err
	}

	documents := participantDocuments(dialogmote, input.Arbeidstaker, input.Arbeidsgiver, input.Behandler)
	return usecase.dispatchAndReload(ctx, models.VarselTypeRescheduled, dialogmote.Uuid, documents)
}

// FinalizeDialogmote writes the final referat, which replaces the draft if there is one, and sends it to the participants.
func (usecase DialogmoteUsecase) FinalizeDialogmote(
	ctx context.Context,
	veilederIdent string,
	input models.FinalizeDialogmoteInput,
) (models.Dialogmote, error) {
	if err := validateInput(input); err != nil {
		return models.Dialogmote{}, err
	}

	current, err := usecase.repository.GetDialogmote(ctx, usecase.executorFactory.NewExecutor(), input.DialogmoteUuid)
	if err != nil {
		return models.Dialogmote{}, err
	}
	if err := models.ValidateTransition(current.Status, models.DialogmoteStatusFinalized); err != nil {
		return models.Dialogmote{}, err
	}

	pdf, pdfId, err := usecase.renderReferat(ctx, input.Referat)
	if err != nil {
		return models.Dialogmote{}, err
	}

	dialogmote, err := usecase.transition(ctx, veilederIdent, input.DialogmoteUuid, models.DialogmoteStatusFinalized,
		func(tx repositories.Transaction, dialogmote models.Dialogmote) error {
			referat := referatCreate(dialogmote.Id, veilederIdent, input.Referat, dialogmote.Behandler != nil)
			referat.PdfId = &pdfId
			referat.Ferdigstilt = true

			if draft, ok := dialogmote.DraftReferat(); ok {
				if err := usecase.repository.UpdateReferat(ctx, tx, draft.Id, referat); err != nil {
					return err
				}
			} else if err := usecase.repository.CreateReferat(ctx, tx, referat); err != nil {
				return err
			}

			if dialogmote.Behandler != nil {
				return usecase.repository.UpdateBehandlerReferatFlags(ctx, tx, dialogmote.Behandler.Id,
					input.Referat.BehandlerDeltatt, input.Referat.BehandlerMottarReferat)
			}
			return nil
		})
	if err != nil {
		return models.Dialogmote{}, err
	}

	return usecase.dispatchAndReload(ctx, models.VarselTypeMinutes, dialogmote.Uuid, referatDocuments(dialogmote, pdf, pdfId))
}

// AmendReferat adds a corrected referat to a finalized dialogmote. The status does not change.
func (usecase DialogmoteUsecase) AmendReferat(
	ctx context.Context,
	veilederIdent string,
	input models.AmendReferatInput,
) (models.Dialogmote, error) {
	if err := validateInput(input); err != nil {
		return models.Dialogmote{}, err
	}

	current, err := usecase.repository.GetDialogmote(ctx, usecase.executorFactory.NewExecutor(), input.DialogmoteUuid)
	if err != nil {
		return models.Dialogmote{}, err
	}
	if current.Status != models.DialogmoteStatusFinalized {
		return models.Dialogmote{}, errors.Wrapf(models.ErrDialogmoteNotFinalized,
			"dialogmote %s is %s", current.Uuid, current.Status)
	}

	pdf, pdfId, err := usecase.renderReferat(ctx, input.Referat)
	if err != nil {
		return models.Dialogmote{}, err
	}

	dialogmote, err := executor_factory.TransactionReturnValue(ctx, usecase.transactionFactory,
		func(tx repositories.Transaction) (models.Dialogmote, error) {
			dialogmote, err := usecase.repository.GetDialogmoteForUpdate(ctx, tx, input.DialogmoteUuid)
			if err != nil {
				return models.Dialogmote{}, err
			}
			if dialogmote.Status != models.DialogmoteStatusFinalized {
				return models.Dialogmote{}, errors.Wrapf(models.ErrDialogmoteNotFinalized,
					"dialogmote %s is %s", dialogmote.Uuid, dialogmote.Status)
			}

			referat := referatCreate(dialogmote.Id, veilederIdent, input.Referat, dialogmote.Behandler != nil)
			referat.PdfId = &pdfId
			referat.Ferdigstilt = true
			referat.Endring = true
			referat.Begrunnelse = null.StringFrom(input.Begrunnelse)
			if err := usecase.repository.CreateReferat(ctx, tx, referat); err != nil {
				return models.Dialogmote{}, err
			}

			if dialogmote.Behandler != nil {
				err := usecase.repository.UpdateBehandlerReferatFlags(ctx, tx, dialogmote.Behandler.Id,
					input.Referat.BehandlerDeltatt, input.Referat.BehandlerMottarReferat)
				if err != nil {
					return models.Dialogmote{}, err
				}
				dialogmote.Behandler.Deltatt = input.Referat.BehandlerDeltatt
				dialogmote.Behandler.MottarReferat = input.Referat.BehandlerMottarReferat
			}
			return dialogmote, nil
		})
	if err != nil {
		return models.Dialogmote{}, err
	}

	return usecase.dispatchAndReload(ctx, models.VarselTypeMinutes, dialogmote.Uuid, referatDocuments(dialogmote, pdf, pdfId))
}

// SaveReferatDraft writes the referat of an open dialogmote without sending it. It can be saved any number of times.
func (usecase DialogmoteUsecase) SaveReferatDraft(
	ctx context.Context,
	veilederIdent string,
	input models.SaveReferatDraftInput,
) (models.Dialogmote, error) {
	if err := validateInput(input); err != nil {
		return models.Dialogmote{}, err
	}

	err := usecase.transactionFactory.Transaction(ctx, func(tx repositories.Transaction) error {
		dialogmote, err := usecase.repository.GetDialogmoteForUpdate(ctx, tx, input.DialogmoteUuid)
		if err != nil {
			return err
		}
		if !dialogmote.Status.IsOpen() {
			return errors.Wrapf(models.ErrDialogmoteNotOpen, "dialogmote %s is %s", dialogmote.Uuid, dialogmote.Status)
		}

		referat := referatCreate(dialogmote.Id, veilederIdent, input.Referat, dialogmote.Behandler != nil)
		if draft, ok := dialogmote.DraftReferat(); ok {
			return usecase.repository.UpdateReferat(ctx, tx, draft.Id, referat)
		}
		return usecase.repository.CreateReferat(ctx, tx, referat)
	})
	if err != nil {
		return models.Dialogmote{}, err
	}
	return usecase.GetDialogmote(ctx, input.DialogmoteUuid)
}

// ChangeTildeltVeileder assigns an open dialogmote to another veileder. It is not a status change.
func (usecase DialogmoteUsecase) ChangeTildeltVeileder(ctx context.Context, input models.ChangeTildeltVeilederInput) error {
	if err := validateInput(input); err != nil {
		return err
	}

	return usecase.transactionFactory.Transaction(ctx, func(tx repositories.Transaction) error {
		dialogmote, err := usecase.repository.GetDialogmoteForUpdate(ctx, tx, input.DialogmoteUuid)
		if err != nil {
			return err
		}
		if !dialogmote.Status.IsOpen() {
			return errors.Wrapf(models.ErrDialogmoteNotOpen, "dialogmote %s is %s", dialogmote.Uuid, dialogmote.Status)
		}
		return usecase.repository.UpdateTildeltVeileder(ctx, tx, dialogmote.Id, input.VeilederIdent)
	})
}

// CloseDialogmote is the automatic closing of a dialogmote that took place before the cutoff
// without being finalized. Nobody is notified.
func (usecase DialogmoteUsecase) CloseDialogmote(ctx context.Context, dialogmoteUuid uuid.UUID, cutoff time.Time) error {
	current, err := usecase.repository.GetDialogmote(ctx, usecase.executorFactory.NewExecutor(), dialogmoteUuid)
	if err != nil {
		return err
	}
	if err := models.ValidateClose(current, cutoff); err != nil {
		return err
	}
	tilfelleStart := usecase.lookupTilfelleStart(ctx, current.Arbeidstaker.Personident)

	err = usecase.transactionFactory.Transaction(ctx, func(tx repositories.Transaction) error {
		dialogmote, err := usecase.repository.GetDialogmoteForUpdate(ctx, tx, dialogmoteUuid)
		if err != nil {
			return err
		}
		if err := models.ValidateClose(dialogmote, cutoff); err != nil {
			return err
		}
		return usecase.persistStatus(ctx, tx, dialogmote, models.DialogmoteStatusClosed, SystemIdent, tilfelleStart)
	})
	if err != nil {
		return err
	}
	utils.MetricDialogmoteStatusTransition.WithLabelValues(string(models.DialogmoteStatusClosed)).Inc()
	return nil
}

func (usecase DialogmoteUsecase) GetDialogmote(ctx context.Context, dialogmoteUuid uuid.UUID) (models.Dialogmote, error) {
	return usecase.repository.GetDialogmote(ctx, usecase.executorFactory.NewExecutor(), dialogmoteUuid)
}

func (usecase DialogmoteUsecase) ListDialogmoterForPerson(ctx context.Context, personident string) ([]models.Dialogmote, error) {
	return usecase.repository.ListDialogmoterForPersonident(ctx, usecase.executorFactory.NewExecutor(), personident)
}

func (usecase DialogmoteUsecase) ListDialogmoterForVirksomhet(ctx context.Context, virksomhetsnummer string) ([]models.Dialogmote, error) {
	return usecase.repository.ListDialogmoterForVirksomhet(ctx, usecase.executorFactory.NewExecutor(), virksomhetsnummer)
}

// ListVarslerForPerson returns the varsler sent to the arbeidstaker in all its dialogmoter.
func (usecase DialogmoteUsecase) ListVarslerForPerson(ctx context.Context, personident string) ([]models.Varsel, error) {
	dialogmoter, err := usecase.ListDialogmoterForPerson(ctx, personident)
	if err != nil {
		return nil, err
	}
	return pure_utils.FlatMap(dialogmoter, func(d models.Dialogmote) []models.Varsel {
		return d.Arbeidstaker.Varsler
	}), nil
}

// MarkVarselRead sets the lest dato of a varsel. Reading it again keeps the first lest dato.
func (usecase DialogmoteUsecase) MarkVarselRead(
	ctx context.Context,
	participantType models.ParticipantType,
	varselUuid uuid.UUID,
) (models.Varsel, error) {
	if err := participantType.Validate(); err != nil {
		return models.Varsel{}, err
	}
	return executor_factory.TransactionReturnValue(ctx, usecase.transactionFactory,
		func(tx repositories.Transaction) (models.Varsel, error) {
			if _, err := usecase.repository.GetVarsel(ctx, tx, participantType, varselUuid); err != nil {
				return models.Varsel{}, err
			}
			if err := usecase.repository.MarkVarselRead(ctx, tx, participantType, varselUuid, usecase.clock.Now()); err != nil {
				return models.Varsel{}, err
			}
			return usecase.repository.GetVarsel(ctx, tx, participantType, varselUuid)
		})
}

// RespondToVarsel stores the svar of a participant to an innkalling or an endring. A varsel is answered once.
func (usecase DialogmoteUsecase) RespondToVarsel(
	ctx context.Context,
	participantType models.ParticipantType,
	varselUuid uuid.UUID,
	svar models.Svar,
) (models.Varsel, error) {
	if err := participantType.Validate(); err != nil {
		return models.Varsel{}, err
	}
	if err := validateInput(svar); err != nil {
		return models.Varsel{}, err
	}
	if svar.Tidspunkt.IsZero() {
		svar.Tidspunkt = usecase.clock.Now()
	}

	return executor_factory.TransactionReturnValue(ctx, usecase.transactionFactory,
		func(tx repositories.Transaction) (models.Varsel, error) {
			varsel, err := usecase.repository.GetVarsel(ctx, tx, participantType, varselUuid)
			if err != nil {
				return models.Varsel{}, err
			}
			if !varsel.Type.IsAnswerable() {
				return models.Varsel{}, errors.Wrapf(models.ErrVarselNotAnswerable, "varsel %s is %s", varselUuid, varsel.Type)
			}
			if varsel.Svar != nil {
				return models.Varsel{}, errors.Wrapf(models.ErrVarselAlreadyAnswered, "varsel %s", varselUuid)
			}
			if err := usecase.repository.SetVarselSvar(ctx, tx, participantType, varselUuid, svar); err != nil {
				return models.Varsel{}, err
			}
			return usecase.repository.GetVarsel(ctx, tx, participantType, varselUuid)
		})
}

// transition moves the dialogmote to a new status in one transaction with the status endring and
// whatever apply writes. The tilfelle start is looked up before the transaction.
func (usecase DialogmoteUsecase) transition(
	ctx context.Context,
	actor string,
	dialogmoteUuid uuid.UUID,
	to models.DialogmoteStatus,
	apply func(tx repositories.Transaction, dialogmote models.Dialogmote) error,
) (models.Dialogmote, error) {
	current, err := usecase.repository.GetDialogmote(ctx, usecase.executorFactory.NewExecutor(), dialogmoteUuid)
	if err != nil {
		return models.Dialogmote{}, err
	}
	if err := models.ValidateTransition(current.Status, to); err != nil {
		return models.Dialogmote{}, err
	}
	tilfelleStart := usecase.lookupTilfelleStart(ctx, current.Arbeidstaker.Personident)

	dialogmote, err := executor_factory.TransactionReturnValue(ctx, usecase.transactionFactory,
		func(tx repositories.Transaction) (models.Dialogmote, error) {
			dialogmote, err := usecase.repository.GetDialogmoteForUpdate(ctx, tx, dialogmoteUuid)
			if err != nil {
				return models.Dialogmote{}, err
			}
			if err := models.ValidateTransition(dialogmote.Status, to); err != nil {
				return models.Dialogmote{}, err
			}
			if apply != nil {
				if err := apply(tx, dialogmote); err != nil {
					return models.Dialogmote{}, err
				}
			}
			if err := usecase.persistStatus(ctx, tx, dialogmote, to, actor, tilfelleStart); err != nil {
				return models.Dialogmote{}, err
			}
			dialogmote.Status = to
			return dialogmote, nil
		})
	if err != nil {
		return models.Dialogmote{}, err
	}
	utils.MetricDialogmoteStatusTransition.WithLabelValues(string(to)).Inc()
	return dialogmote, nil
}

func (usecase DialogmoteUsecase) persistStatus(
	ctx context.Context,
	tx repositories.Transaction,
	dialogmote models.Dialogmote,
	to models.DialogmoteStatus,
	actor string,
	tilfelleStart null.Time,
) error {
	if err := usecase.repository.UpdateDialogmoteStatus(ctx, tx, dialogmote.Id, to); err != nil {
		return err
	}
	return usecase.repository.CreateStatusEndring(ctx, tx, models.StatusEndringCreate{
		Uuid:          uuid.New(),
		DialogmoteId:  dialogmote.Id,
		Status:        to,
		CreatedBy:     actor,
		TilfelleStart: tilfelleStart,
	})
}

// lookupTilfelleStart never fails: the status endring is written without tilfelle start if the lookup fails.
func (usecase DialogmoteUsecase) lookupTilfelleStart(ctx context.Context, personident string) null.Time {
	start, err := usecase.tilfelleLookup.TilfelleStart(ctx, personident)
	if err != nil {
		err = errors.Mark(errors.Wrap(err, "tilfelle start lookup failed"), models.EnrichmentFailure)
		utils.LoggerFromContext(ctx).WarnContext(ctx, err.Error())
		return null.Time{}
	}
	return null.TimeFromPtr(start)
}

// dispatchAndReload notifies the participants after the transaction is committed: a failed
// delivery does not fail the request.
func (usecase DialogmoteUsecase) dispatchAndReload(
	ctx context.Context,
	varselType models.VarselType,
	dialogmoteUuid uuid.UUID,
	documents map[models.ParticipantType]models.VarselDocument,
) (models.Dialogmote, error) {
	dialogmote, err := usecase.GetDialogmote(ctx, dialogmoteUuid)
	if err != nil {
		return models.Dialogmote{}, err
	}

	result := usecase.dispatcher.Dispatch(ctx, models.DialogmoteEvent{
		Type:       varselType,
		Dialogmote: dialogmote,
		Documents:  documents,
	})
	if result.Failed > 0 {
		utils.LoggerFromContext(ctx).InfoContext(ctx, fmt.Sprintf(
			"%d varsler of dialogmote %s are left to the delivery reconciler", result.Failed, dialogmoteUuid))
	}

	return usecase.GetDialogmote(ctx, dialogmoteUuid)
}

func (usecase DialogmoteUsecase) renderReferat(ctx context.Context, referat models.ReferatInput) ([]byte, uuid.UUID, error) {
	pdf, err := usecase.renderer.RenderPdf(ctx,
		models.PdfTemplate(models.VarselTypeMinutes, models.ParticipantTypeArbeidstaker), referat.DocumentComponents)
	if err != nil {
		return nil, uuid.Nil, errors.Wrap(err, "could not render referat")
	}
	pdfId, err := usecase.pdfStore.StorePdf(ctx, pdf)
	if err != nil {
		return nil, uuid.Nil, err
	}
	return pdf, pdfId, nil
}

func varselDocument(input models.DocumentInput) models.VarselDocument {
	return models.VarselDocument{Fritekst: input.Fritekst, Components: input.Components}
}

// participantDocuments gives every participant of the dialogmote a document. The behandler gets an
// empty one when the veileder wrote nothing for it.
func participantDocuments(
	dialogmote models.Dialogmote,
	arbeidstaker models.DocumentInput,
	arbeidsgiver models.DocumentInput,
	behandler *models.DocumentInput,
) map[models.ParticipantType]models.VarselDocument {
	documents := map[models.ParticipantType]models.VarselDocument{
		models.ParticipantTypeArbeidstaker: varselDocument(arbeidstaker),
		models.ParticipantTypeArbeidsgiver: varselDocument(arbeidsgiver),
	}
	if dialogmote.Behandler != nil {
		document := models.DocumentInput{}
		if behandler != nil {
			document = *behandler
		}
		documents[models.ParticipantTypeBehandler] = varselDocument(document)
	}
	return documents
}

func referatDocuments(
	dialogmote models.Dialogmote,
	pdf []byte,
	pdfId uuid.UUID,
) map[models.ParticipantType]models.VarselDocument {
	documents := make(map[models.ParticipantType]models.VarselDocument)
	for _, participant := range dialogmote.Participants() {
		documents[participant.ParticipantType()] = models.VarselDocument{Pdf: pdf, PdfId: pdfId}
	}
	return documents
}

func referatCreate(dialogmoteId int64, veilederIdent string, input models.ReferatInput, hasBehandler bool) models.ReferatCreate {
	return models.ReferatCreate{
		Uuid:                uuid.New(),
		DialogmoteId:        dialogmoteId,
		CreatedBy:           veilederIdent,
		Situasjon:           input.Situasjon,
		Konklusjon:          input.Konklusjon,
		ArbeidstakerOppgave: input.ArbeidstakerOppgave,
		ArbeidsgiverOppgave: input.ArbeidsgiverOppgave,
		BehandlerOppgave:    null.NewString(input.BehandlerOppgave, hasBehandler && input.BehandlerOppgave != ""),
		NarmesteLederNavn:   input.NarmesteLederNavn,
		Andredeltakere:      input.Andredeltakere,
		DocumentComponents:  input.DocumentComponents,
	}
}
