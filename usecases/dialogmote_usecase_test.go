package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"gocloud.dev/blob/memblob"

	"github.com/navikt/isdialogmote-sub002/mocks"
	"github.com/navikt/isdialogmote-sub002/models"
	"github.com/navikt/isdialogmote-sub002/repositories"
	"github.com/navikt/isdialogmote-sub002/repositories/clock"
	"github.com/navikt/isdialogmote-sub002/usecases/varsel"
)

const (
	testVeilederIdent      = "Z990099"
	testPersonident        = "12345678912"
	testFailingPersonident = "10987654321"
	testVirksomhetsnummer  = "912345678"
)

type DialogmoteUsecaseTestSuite struct {
	suite.Suite
	ctx           context.Context
	clock         *clock.Mock
	store         *mocks.FakeStore
	renderer      *mocks.PdfRenderer
	consent       *mocks.ConsentLookup
	narmesteLeder *mocks.NarmesteLederLookup
	tilfelle      *mocks.TilfelleLookup
	digital       *mocks.DeliveryChannel
	paper         *mocks.DeliveryChannel
	leder         *mocks.DeliveryChannel
	altinn        *mocks.DeliveryChannel
	dialogmelding *mocks.DeliveryChannel

	tilfelleStart time.Time
	usecase       DialogmoteUsecase
}

func (suite *DialogmoteUsecaseTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.clock = clock.NewMock(time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC))
	suite.store = mocks.NewFakeStore(suite.clock)
	suite.tilfelleStart = time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC)

	bucket := memblob.OpenBucket(nil)
	suite.T().Cleanup(func() { _ = bucket.Close() })
	pdfRepository := repositories.NewPdfRepository(bucket)

	suite.renderer = new(mocks.PdfRenderer)
	suite.renderer.On("RenderPdf", mock.Anything, mock.Anything, mock.Anything).Return([]byte("%PDF-1.7"), nil).Maybe()

	suite.consent = new(mocks.ConsentLookup)
	suite.consent.On("HasDigitalConsent", mock.Anything, mock.Anything).Return(true, nil).Maybe()

	suite.narmesteLeder = new(mocks.NarmesteLederLookup)
	suite.narmesteLeder.On("ActiveNarmesteLeder", mock.Anything, mock.Anything, mock.Anything).Return(nil, nil).Maybe()

	suite.tilfelle = new(mocks.TilfelleLookup)
	suite.tilfelle.On("TilfelleStart", mock.Anything, testPersonident).Return(&suite.tilfelleStart, nil).Maybe()
	suite.tilfelle.On("TilfelleStart", mock.Anything, testFailingPersonident).
		Return(nil, errors.New("isoppfolgingstilfelle timed out")).Maybe()

	suite.digital = suite.channel()
	suite.paper = suite.channel()
	suite.leder = suite.channel()
	suite.altinn = suite.channel()
	suite.dialogmelding = suite.channel()

	dispatcher := varsel.NewDispatcher(
		suite.store,
		suite.store,
		suite.renderer,
		pdfRepository,
		suite.consent,
		suite.narmesteLeder,
		varsel.Channels{
			Digital:       suite.digital,
			Paper:         suite.paper,
			NarmesteLeder: suite.leder,
			Altinn:        suite.altinn,
			Dialogmelding: suite.dialogmelding,
		},
		suite.clock,
	)
	suite.usecase = NewDialogmoteUsecase(
		suite.store,
		suite.store,
		suite.store,
		dispatcher,
		suite.renderer,
		pdfRepository,
		suite.tilfelle,
		suite.clock,
	)
}

func (suite *DialogmoteUsecaseTestSuite) channel() *mocks.DeliveryChannel {
	channel := new(mocks.DeliveryChannel)
	channel.On("Deliver", mock.Anything, mock.Anything).Return(nil).Maybe()
	return channel
}

func (suite *DialogmoteUsecaseTestSuite) createInput(tid time.Time, withBehandler bool) models.CreateDialogmoteInput {
	input := models.CreateDialogmoteInput{
		Personident:       testPersonident,
		Virksomhetsnummer: testVirksomhetsnummer,
		TildeltEnhet:      "0314",
		TidSted: models.NewTidSted{
			Sted:      "Nav Sagene",
			Tid:       tid,
			Videolink: "https://video.nav.no/abc",
		},
		ArbeidstakerInnkalling: models.DocumentInput{Fritekst: "Velkommen til dialogmøte"},
		ArbeidsgiverInnkalling: models.DocumentInput{Fritekst: "Velkommen til dialogmøte"},
	}
	if withBehandler {
		input.Behandler = &models.NewBehandler{
			BehandlerRef:  "behandler-ref-1",
			BehandlerNavn: "Lege Legesen",
			BehandlerType: "FASTLEGE",
		}
	}
	return input
}

func (suite *DialogmoteUsecaseTestSuite) create(withBehandler bool) models.Dialogmote {
	dialogmote, err := suite.usecase.CreateDialogmote(suite.ctx, testVeilederIdent,
		suite.createInput(suite.clock.Now().AddDate(0, 0, 14), withBehandler))
	suite.Require().NoError(err)
	return dialogmote
}

func referatInput(behandlerMottarReferat bool) models.ReferatInput {
	return models.ReferatInput{
		Situasjon:              "Arbeidstaker er delvis sykmeldt",
		Konklusjon:             "Gradert sykmelding videreføres",
		ArbeidstakerOppgave:    "Prøve ut nye arbeidsoppgaver",
		ArbeidsgiverOppgave:    "Tilrettelegge arbeidsplassen",
		NarmesteLederNavn:      "Leder Ledersen",
		Andredeltakere:         []models.ReferatDeltaker{{Funksjon: "HR", Navn: "Hanne"}},
		BehandlerDeltatt:       true,
		BehandlerMottarReferat: behandlerMottarReferat,
	}
}

func (suite *DialogmoteUsecaseTestSuite) statuses(dialogmote models.Dialogmote) []models.DialogmoteStatus {
	var statuses []models.DialogmoteStatus
	for _, endring := range suite.store.StatusEndringer(dialogmote.Id) {
		statuses = append(statuses, endring.Status)
	}
	return statuses
}

func varselTypes(varsler []models.Varsel) []models.VarselType {
	var types []models.VarselType
	for _, v := range varsler {
		types = append(types, v.Type)
	}
	return types
}

func (suite *DialogmoteUsecaseTestSuite) TestCreateDialogmote() {
	tid := suite.clock.Now().AddDate(0, 0, 14)

	dialogmote, err := suite.usecase.CreateDialogmote(suite.ctx, testVeilederIdent, suite.createInput(tid, true))

	suite.Require().NoError(err)
	suite.Equal(models.DialogmoteStatusInvited, dialogmote.Status)
	suite.Equal(testVeilederIdent, dialogmote.TildeltVeilederIdent)
	suite.Equal("0314", dialogmote.TildeltEnhet)
	current, ok := dialogmote.CurrentTidSted()
	suite.Require().True(ok)
	suite.True(tid.Equal(current.Tid))
	suite.Equal("https://video.nav.no/abc", current.Videolink.String)

	suite.Require().NotNil(dialogmote.Behandler)
	suite.True(dialogmote.Behandler.MottarReferat)

	endringer := suite.store.StatusEndringer(dialogmote.Id)
	suite.Require().Len(endringer, 1)
	suite.Equal(models.DialogmoteStatusInvited, endringer[0].Status)
	suite.Equal(testVeilederIdent, endringer[0].CreatedBy)
	suite.True(suite.tilfelleStart.Equal(endringer[0].TilfelleStart.Time))

	suite.Require().Len(dialogmote.Arbeidstaker.Varsler, 1)
	arbeidstakerVarsel := dialogmote.Arbeidstaker.Varsler[0]
	suite.Equal(models.VarselTypeInvited, arbeidstakerVarsel.Type)
	suite.Equal(models.DeliveryChannelDigital, arbeidstakerVarsel.Channel)
	suite.Equal("Velkommen til dialogmøte", arbeidstakerVarsel.Fritekst)
	suite.True(arbeidstakerVarsel.DeliveredAt.Valid)

	suite.Require().Len(dialogmote.Arbeidsgiver.Varsler, 1)
	suite.Equal(models.DeliveryChannelAltinn, dialogmote.Arbeidsgiver.Varsler[0].Channel)
	suite.Require().Len(dialogmote.Behandler.Varsler, 1)
	suite.Equal(models.DeliveryChannelDialogmelding, dialogmote.Behandler.Varsler[0].Channel)

	suite.renderer.AssertCalled(suite.T(), "RenderPdf", mock.Anything, "innkalling-arbeidstaker", mock.Anything)
	suite.renderer.AssertCalled(suite.T(), "RenderPdf", mock.Anything, "innkalling-arbeidsgiver", mock.Anything)
	suite.renderer.AssertCalled(suite.T(), "RenderPdf", mock.Anything, "innkalling-behandler", mock.Anything)
	suite.digital.AssertNumberOfCalls(suite.T(), "Deliver", 1)
	suite.altinn.AssertNumberOfCalls(suite.T(), "Deliver", 1)
	suite.dialogmelding.AssertNumberOfCalls(suite.T(), "Deliver", 1)
	suite.paper.AssertNotCalled(suite.T(), "Deliver", mock.Anything, mock.Anything)
}

func (suite *DialogmoteUsecaseTestSuite) TestCreateDialogmote_missing_participants() {
	input := suite.createInput(suite.clock.Now().AddDate(0, 0, 14), false)
	input.Virksomhetsnummer = ""
	_, err := suite.usecase.CreateDialogmote(suite.ctx, testVeilederIdent, input)
	suite.ErrorIs(err, models.ErrMissingArbeidsgiver)
	suite.ErrorIs(err, models.BadParameterError)

	input = suite.createInput(suite.clock.Now().AddDate(0, 0, 14), false)
	input.Personident = ""
	_, err = suite.usecase.CreateDialogmote(suite.ctx, testVeilederIdent, input)
	suite.ErrorIs(err, models.ErrMissingArbeidstaker)

	input = suite.createInput(time.Time{}, false)
	_, err = suite.usecase.CreateDialogmote(suite.ctx, testVeilederIdent, input)
	suite.ErrorIs(err, models.ErrMissingTidSted)

	dialogmoter, err := suite.usecase.ListDialogmoterForPerson(suite.ctx, testPersonident)
	suite.Require().NoError(err)
	suite.Empty(dialogmoter)
}

func (suite *DialogmoteUsecaseTestSuite) TestCreateDialogmote_invalid_input() {
	input := suite.createInput(suite.clock.Now().AddDate(0, 0, 14), false)
	input.Personident = "123"

	_, err := suite.usecase.CreateDialogmote(suite.ctx, testVeilederIdent, input)

	suite.ErrorIs(err, models.BadParameterError)
	suite.renderer.AssertNotCalled(suite.T(), "RenderPdf", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *DialogmoteUsecaseTestSuite) TestCreateDialogmote_rolled_back_when_status_endring_fails() {
	suite.store.Failures["CreateStatusEndring"] = errors.New("connection reset")

	_, err := suite.usecase.CreateDialogmote(suite.ctx, testVeilederIdent,
		suite.createInput(suite.clock.Now().AddDate(0, 0, 14), false))

	suite.Require().Error(err)
	dialogmoter, err := suite.usecase.ListDialogmoterForPerson(suite.ctx, testPersonident)
	suite.Require().NoError(err)
	suite.Empty(dialogmoter)
	suite.digital.AssertNotCalled(suite.T(), "Deliver", mock.Anything, mock.Anything)
}

func (suite *DialogmoteUsecaseTestSuite) TestCreateDialogmote_without_tilfelle_start() {
	input := suite.createInput(suite.clock.Now().AddDate(0, 0, 14), false)
	input.Personident = testFailingPersonident

	dialogmote, err := suite.usecase.CreateDialogmote(suite.ctx, testVeilederIdent, input)

	suite.Require().NoError(err)
	endringer := suite.store.StatusEndringer(dialogmote.Id)
	suite.Require().Len(endringer, 1)
	suite.False(endringer[0].TilfelleStart.Valid)
}

func (suite *DialogmoteUsecaseTestSuite) TestCreateDialogmote_failed_delivery_is_left_to_the_reconciler() {
	suite.altinn.ExpectedCalls = nil
	suite.altinn.On("Deliver", mock.Anything, mock.Anything).Return(errors.New("altinn unavailable"))

	dialogmote := suite.create(false)

	suite.Equal(models.DialogmoteStatusInvited, dialogmote.Status)
	suite.Require().Len(dialogmote.Arbeidsgiver.Varsler, 1)
	suite.False(dialogmote.Arbeidsgiver.Varsler[0].DeliveredAt.Valid)
	suite.True(dialogmote.Arbeidstaker.Varsler[0].DeliveredAt.Valid)
}

func (suite *DialogmoteUsecaseTestSuite) TestCreateDialogmote_narmeste_leder_channel() {
	suite.narmesteLeder.ExpectedCalls = nil
	suite.narmesteLeder.On("ActiveNarmesteLeder", mock.Anything, testPersonident, testVirksomhetsnummer).
		Return(&models.NarmesteLeder{Personident: "01010112345", Virksomhetsnummer: testVirksomhetsnummer, Navn: "Leder"}, nil)
	suite.consent.ExpectedCalls = nil
	suite.consent.On("HasDigitalConsent", mock.Anything, testPersonident).Return(false, errors.New("krr down"))

	dialogmote := suite.create(false)

	suite.Equal(models.DeliveryChannelNarmesteLeder, dialogmote.Arbeidsgiver.Varsler[0].Channel)
	suite.Equal(models.DeliveryChannelPaper, dialogmote.Arbeidstaker.Varsler[0].Channel)
	suite.leder.AssertCalled(suite.T(), "Deliver", mock.Anything, mock.MatchedBy(func(d models.VarselDelivery) bool {
		return d.NarmesteLeder != nil && d.NarmesteLeder.Personident == "01010112345"
	}))
	suite.paper.AssertNumberOfCalls(suite.T(), "Deliver", 1)
}

func (suite *DialogmoteUsecaseTestSuite) TestRescheduleDialogmote() {
	dialogmote := suite.create(true)
	suite.clock.Advance(time.Hour)
	newTid := suite.clock.Now().AddDate(0, 0, 3)

	rescheduled, err := suite.usecase.RescheduleDialogmote(suite.ctx, testVeilederIdent, models.RescheduleDialogmoteInput{
		DialogmoteUuid: dialogmote.Uuid,
		TidSted:        models.NewTidSted{Sted: "Nav Grünerløkka", Tid: newTid},
		Arbeidstaker:   models.DocumentInput{Fritekst: "Ny tid"},
		Arbeidsgiver:   models.DocumentInput{Fritekst: "Ny tid"},
	})

	suite.Require().NoError(err)
	suite.Equal(models.DialogmoteStatusRescheduled, rescheduled.Status)
	suite.Len(rescheduled.TidStedHistory, 2)
	current, _ := rescheduled.CurrentTidSted()
	suite.True(newTid.Equal(current.Tid))
	suite.Equal("Nav Grünerløkka", current.Sted)
	suite.Equal([]models.DialogmoteStatus{models.DialogmoteStatusInvited, models.DialogmoteStatusRescheduled},
		suite.statuses(rescheduled))
	suite.Equal([]models.VarselType{models.VarselTypeInvited, models.VarselTypeRescheduled},
		varselTypes(rescheduled.Arbeidstaker.Varsler))
	// the behandler is notified even when the veileder wrote nothing for it
	suite.Equal([]models.VarselType{models.VarselTypeInvited, models.VarselTypeRescheduled},
		varselTypes(rescheduled.Behandler.Varsler))
}

func (suite *DialogmoteUsecaseTestSuite) TestRescheduleDialogmote_without_tid() {
	dialogmote := suite.create(false)

	_, err := suite.usecase.RescheduleDialogmote(suite.ctx, testVeilederIdent, models.RescheduleDialogmoteInput{
		DialogmoteUuid: dialogmote.Uuid,
		TidSted:        models.NewTidSted{Sted: "Nav Sagene"},
	})

	suite.ErrorIs(err, models.ErrMissingTidSted)
	suite.Len(suite.store.StatusEndringer(dialogmote.Id), 1)
}

func (suite *DialogmoteUsecaseTestSuite) TestReschedule_then_cancel_twice() {
	dialogmote := suite.create(false)
	_, err := suite.usecase.RescheduleDialogmote(suite.ctx, testVeilederIdent, models.RescheduleDialogmoteInput{
		DialogmoteUuid: dialogmote.Uuid,
		TidSted:        models.NewTidSted{Sted: "Nav Sagene", Tid: suite.clock.Now().AddDate(0, 0, 20)},
	})
	suite.Require().NoError(err)

	cancelled, err := suite.usecase.CancelDialogmote(suite.ctx, testVeilederIdent, models.CancelDialogmoteInput{
		DialogmoteUuid: dialogmote.Uuid,
		Arbeidstaker:   models.DocumentInput{Fritekst: "Møtet er avlyst"},
		Arbeidsgiver:   models.DocumentInput{Fritekst: "Møtet er avlyst"},
	})
	suite.Require().NoError(err)
	suite.Equal(models.DialogmoteStatusCancelled, cancelled.Status)

	_, err = suite.usecase.CancelDialogmote(suite.ctx, testVeilederIdent, models.CancelDialogmoteInput{
		DialogmoteUuid: dialogmote.Uuid,
	})
	suite.ErrorIs(err, models.ConflictError)
	var transitionErr models.TransitionError
	suite.Require().True(errors.As(err, &transitionErr))
	suite.Equal(models.DialogmoteStatusCancelled, transitionErr.From)

	suite.Equal([]models.DialogmoteStatus{
		models.DialogmoteStatusInvited,
		models.DialogmoteStatusRescheduled,
		models.DialogmoteStatusCancelled,
	}, suite.statuses(cancelled))
	suite.Equal([]models.VarselType{models.VarselTypeInvited, models.VarselTypeRescheduled, models.VarselTypeCancelled},
		varselTypes(cancelled.Arbeidsgiver.Varsler))
}

func (suite *DialogmoteUsecaseTestSuite) TestCancelDialogmote_not_found() {
	_, err := suite.usecase.CancelDialogmote(suite.ctx, testVeilederIdent, models.CancelDialogmoteInput{
		DialogmoteUuid: uuid.New(),
	})
	suite.ErrorIs(err, models.NotFoundError)
}

func (suite *DialogmoteUsecaseTestSuite) TestFinalizeDialogmote() {
	dialogmote := suite.create(true)

	finalized, err := suite.usecase.FinalizeDialogmote(suite.ctx, testVeilederIdent, models.FinalizeDialogmoteInput{
		DialogmoteUuid: dialogmote.Uuid,
		Referat:        referatInput(false),
	})

	suite.Require().NoError(err)
	suite.Equal(models.DialogmoteStatusFinalized, finalized.Status)
	referat, ok := finalized.FinalReferat()
	suite.Require().True(ok)
	suite.False(referat.Endring)
	suite.Equal("Gradert sykmelding videreføres", referat.Konklusjon)

	suite.True(finalized.Behandler.Deltatt)
	suite.False(finalized.Behandler.MottarReferat)
	suite.Equal([]models.VarselType{models.VarselTypeInvited, models.VarselTypeMinutes},
		varselTypes(finalized.Arbeidstaker.Varsler))
	suite.Equal([]models.VarselType{models.VarselTypeInvited, models.VarselTypeMinutes},
		varselTypes(finalized.Arbeidsgiver.Varsler))
	suite.Equal([]models.VarselType{models.VarselTypeInvited}, varselTypes(finalized.Behandler.Varsler))
	suite.Require().NotNil(referat.PdfId)
	suite.Equal(*referat.PdfId, finalized.Arbeidstaker.Varsler[1].PdfId)
	suite.Equal(*referat.PdfId, finalized.Arbeidsgiver.Varsler[1].PdfId)

	suite.renderer.AssertNumberOfCalls(suite.T(), "RenderPdf", 4)
	suite.renderer.AssertCalled(suite.T(), "RenderPdf", mock.Anything, "referat", mock.Anything)
}

func (suite *DialogmoteUsecaseTestSuite) TestFinalizeDialogmote_behandler_receives_referat() {
	dialogmote := suite.create(true)

	finalized, err := suite.usecase.FinalizeDialogmote(suite.ctx, testVeilederIdent, models.FinalizeDialogmoteInput{
		DialogmoteUuid: dialogmote.Uuid,
		Referat:        referatInput(true),
	})

	suite.Require().NoError(err)
	suite.Equal([]models.VarselType{models.VarselTypeInvited, models.VarselTypeMinutes},
		varselTypes(finalized.Behandler.Varsler))
}

func (suite *DialogmoteUsecaseTestSuite) TestFinalized_dialogmote_is_terminal() {
	dialogmote := suite.create(false)
	_, err := suite.usecase.FinalizeDialogmote(suite.ctx, testVeilederIdent, models.FinalizeDialogmoteInput{
		DialogmoteUuid: dialogmote.Uuid,
		Referat:        referatInput(false),
	})
	suite.Require().NoError(err)

	_, err = suite.usecase.RescheduleDialogmote(suite.ctx, testVeilederIdent, models.RescheduleDialogmoteInput{
		DialogmoteUuid: dialogmote.Uuid,
		TidSted:        models.NewTidSted{Sted: "Nav Sagene", Tid: suite.clock.Now().AddDate(0, 0, 1)},
	})
	suite.ErrorIs(err, models.ConflictError)

	_, err = suite.usecase.CancelDialogmote(suite.ctx, testVeilederIdent, models.CancelDialogmoteInput{
		DialogmoteUuid: dialogmote.Uuid,
	})
	suite.ErrorIs(err, models.ConflictError)

	_, err = suite.usecase.FinalizeDialogmote(suite.ctx, testVeilederIdent, models.FinalizeDialogmoteInput{
		DialogmoteUuid: dialogmote.Uuid,
		Referat:        referatInput(false),
	})
	suite.ErrorIs(err, models.ConflictError)

	reloaded, err := suite.usecase.GetDialogmote(suite.ctx, dialogmote.Uuid)
	suite.Require().NoError(err)
	suite.Len(reloaded.TidStedHistory, 1)
	suite.Len(reloaded.Referater, 1)
	suite.Equal([]models.DialogmoteStatus{models.DialogmoteStatusInvited, models.DialogmoteStatusFinalized},
		suite.statuses(reloaded))
}

func (suite *DialogmoteUsecaseTestSuite) TestFinalizeDialogmote_replaces_the_draft() {
	dialogmote := suite.create(false)
	draftInput := referatInput(false)
	draftInput.Konklusjon = "Foreløpig"

	for range 2 {
		draft, err := suite.usecase.SaveReferatDraft(suite.ctx, testVeilederIdent, models.SaveReferatDraftInput{
			DialogmoteUuid: dialogmote.Uuid,
			Referat:        draftInput,
		})
		suite.Require().NoError(err)
		suite.Len(draft.Referater, 1)
		suite.Equal(models.DialogmoteStatusInvited, draft.Status)
	}

	finalized, err := suite.usecase.FinalizeDialogmote(suite.ctx, testVeilederIdent, models.FinalizeDialogmoteInput{
		DialogmoteUuid: dialogmote.Uuid,
		Referat:        referatInput(false),
	})

	suite.Require().NoError(err)
	suite.Require().Len(finalized.Referater, 1)
	suite.True(finalized.Referater[0].Ferdigstilt)
	suite.Equal("Gradert sykmelding videreføres", finalized.Referater[0].Konklusjon)
	_, hasDraft := finalized.DraftReferat()
	suite.False(hasDraft)
}

func (suite *DialogmoteUsecaseTestSuite) TestSaveReferatDraft_closed_dialogmote() {
	dialogmote := suite.create(false)
	_, err := suite.usecase.CancelDialogmote(suite.ctx, testVeilederIdent, models.CancelDialogmoteInput{
		DialogmoteUuid: dialogmote.Uuid,
	})
	suite.Require().NoError(err)

	_, err = suite.usecase.SaveReferatDraft(suite.ctx, testVeilederIdent, models.SaveReferatDraftInput{
		DialogmoteUuid: dialogmote.Uuid,
		Referat:        referatInput(false),
	})
	suite.ErrorIs(err, models.ErrDialogmoteNotOpen)
}

func (suite *DialogmoteUsecaseTestSuite) TestAmendReferat() {
	dialogmote := suite.create(true)

	_, err := suite.usecase.AmendReferat(suite.ctx, testVeilederIdent, models.AmendReferatInput{
		DialogmoteUuid: dialogmote.Uuid,
		Referat:        referatInput(true),
		Begrunnelse:    "Feil i konklusjonen",
	})
	suite.ErrorIs(err, models.ErrDialogmoteNotFinalized)

	_, err = suite.usecase.FinalizeDialogmote(suite.ctx, testVeilederIdent, models.FinalizeDialogmoteInput{
		DialogmoteUuid: dialogmote.Uuid,
		Referat:        referatInput(false),
	})
	suite.Require().NoError(err)
	suite.clock.Advance(24 * time.Hour)

	amendedInput := referatInput(true)
	amendedInput.Konklusjon = "Full sykmelding i to uker"
	amended, err := suite.usecase.AmendReferat(suite.ctx, testVeilederIdent, models.AmendReferatInput{
		DialogmoteUuid: dialogmote.Uuid,
		Referat:        amendedInput,
		Begrunnelse:    "Feil i konklusjonen",
	})

	suite.Require().NoError(err)
	suite.Equal(models.DialogmoteStatusFinalized, amended.Status)
	suite.Len(amended.Referater, 2)
	final, _ := amended.FinalReferat()
	suite.True(final.Endring)
	suite.Equal("Feil i konklusjonen", final.Begrunnelse.String)
	suite.Equal("Full sykmelding i to uker", final.Konklusjon)
	suite.Len(suite.store.StatusEndringer(dialogmote.Id), 2)
	// the behandler asked for the amended referat
	suite.Equal([]models.VarselType{models.VarselTypeInvited, models.VarselTypeMinutes},
		varselTypes(amended.Behandler.Varsler))
	suite.Equal([]models.VarselType{models.VarselTypeInvited, models.VarselTypeMinutes, models.VarselTypeMinutes},
		varselTypes(amended.Arbeidstaker.Varsler))
}

func (suite *DialogmoteUsecaseTestSuite) TestCloseDialogmote() {
	tid := suite.clock.Now().AddDate(0, 0, -40)
	dialogmote, err := suite.usecase.CreateDialogmote(suite.ctx, testVeilederIdent, suite.createInput(tid, false))
	suite.Require().NoError(err)
	cutoff := suite.clock.Now().AddDate(0, -1, 0)

	err = suite.usecase.CloseDialogmote(suite.ctx, dialogmote.Uuid, cutoff)

	suite.Require().NoError(err)
	closed, err := suite.usecase.GetDialogmote(suite.ctx, dialogmote.Uuid)
	suite.Require().NoError(err)
	suite.Equal(models.DialogmoteStatusClosed, closed.Status)
	endringer := suite.store.StatusEndringer(dialogmote.Id)
	suite.Require().Len(endringer, 2)
	suite.Equal(models.DialogmoteStatusClosed, endringer[1].Status)
	suite.Equal(SystemIdent, endringer[1].CreatedBy)
	// nobody is notified of the closing
	suite.Len(closed.Arbeidstaker.Varsler, 1)
	suite.Len(closed.Arbeidsgiver.Varsler, 1)

	err = suite.usecase.CloseDialogmote(suite.ctx, dialogmote.Uuid, cutoff)
	suite.ErrorIs(err, models.ConflictError)
}

func (suite *DialogmoteUsecaseTestSuite) TestCloseDialogmote_not_outdated() {
	dialogmote := suite.create(false)

	err := suite.usecase.CloseDialogmote(suite.ctx, dialogmote.Uuid, suite.clock.Now().AddDate(0, -1, 0))

	suite.ErrorIs(err, models.ErrDialogmoteNotOutdated)
	reloaded, err := suite.usecase.GetDialogmote(suite.ctx, dialogmote.Uuid)
	suite.Require().NoError(err)
	suite.Equal(models.DialogmoteStatusInvited, reloaded.Status)
}

func (suite *DialogmoteUsecaseTestSuite) TestChangeTildeltVeileder() {
	dialogmote := suite.create(false)

	err := suite.usecase.ChangeTildeltVeileder(suite.ctx, models.ChangeTildeltVeilederInput{
		DialogmoteUuid: dialogmote.Uuid,
		VeilederIdent:  "Z991122",
	})

	suite.Require().NoError(err)
	reloaded, err := suite.usecase.GetDialogmote(suite.ctx, dialogmote.Uuid)
	suite.Require().NoError(err)
	suite.Equal("Z991122", reloaded.TildeltVeilederIdent)
	suite.Equal(testVeilederIdent, reloaded.CreatedBy)
	suite.Len(suite.store.StatusEndringer(dialogmote.Id), 1)

	_, err = suite.usecase.CancelDialogmote(suite.ctx, testVeilederIdent, models.CancelDialogmoteInput{
		DialogmoteUuid: dialogmote.Uuid,
	})
	suite.Require().NoError(err)
	err = suite.usecase.ChangeTildeltVeileder(suite.ctx, models.ChangeTildeltVeilederInput{
		DialogmoteUuid: dialogmote.Uuid,
		VeilederIdent:  "Z991122",
	})
	suite.ErrorIs(err, models.ErrDialogmoteNotOpen)
}

func (suite *DialogmoteUsecaseTestSuite) TestMarkVarselRead() {
	dialogmote := suite.create(false)
	varselUuid := dialogmote.Arbeidstaker.Varsler[0].Uuid
	firstRead := suite.clock.Now()

	read, err := suite.usecase.MarkVarselRead(suite.ctx, models.ParticipantTypeArbeidstaker, varselUuid)
	suite.Require().NoError(err)
	suite.True(firstRead.Equal(read.LestDato.Time))

	suite.clock.Advance(2 * time.Hour)
	readAgain, err := suite.usecase.MarkVarselRead(suite.ctx, models.ParticipantTypeArbeidstaker, varselUuid)
	suite.Require().NoError(err)
	suite.True(firstRead.Equal(readAgain.LestDato.Time))

	_, err = suite.usecase.MarkVarselRead(suite.ctx, models.ParticipantTypeArbeidsgiver, varselUuid)
	suite.ErrorIs(err, models.NotFoundError)
}

func (suite *DialogmoteUsecaseTestSuite) TestRespondToVarsel() {
	dialogmote := suite.create(false)
	varselUuid := dialogmote.Arbeidsgiver.Varsler[0].Uuid

	answered, err := suite.usecase.RespondToVarsel(suite.ctx, models.ParticipantTypeArbeidsgiver, varselUuid,
		models.Svar{Type: models.SvarTypeNyttTidSted, Tekst: "Passer ikke for leder"})

	suite.Require().NoError(err)
	suite.Require().NotNil(answered.Svar)
	suite.Equal(models.SvarTypeNyttTidSted, answered.Svar.Type)
	suite.True(suite.clock.Now().Equal(answered.Svar.Tidspunkt))

	_, err = suite.usecase.RespondToVarsel(suite.ctx, models.ParticipantTypeArbeidsgiver, varselUuid,
		models.Svar{Type: models.SvarTypeKommer})
	suite.ErrorIs(err, models.ErrVarselAlreadyAnswered)

	_, err = suite.usecase.RespondToVarsel(suite.ctx, models.ParticipantTypeArbeidsgiver, varselUuid,
		models.Svar{Type: "KANSKJE"})
	suite.ErrorIs(err, models.BadParameterError)

	_, err = suite.usecase.RespondToVarsel(suite.ctx, models.ParticipantTypeArbeidsgiver, uuid.New(),
		models.Svar{Type: models.SvarTypeKommer})
	suite.ErrorIs(err, models.NotFoundError)
}

func (suite *DialogmoteUsecaseTestSuite) TestVarsel_unknown_participant_type() {
	dialogmote := suite.create(false)
	varselUuid := dialogmote.Arbeidstaker.Varsler[0].Uuid

	_, err := suite.usecase.MarkVarselRead(suite.ctx, "NARMESTE_LEDER", varselUuid)
	suite.ErrorIs(err, models.BadParameterError)
	_, err = suite.usecase.RespondToVarsel(suite.ctx, "NARMESTE_LEDER", varselUuid,
		models.Svar{Type: models.SvarTypeKommer})
	suite.ErrorIs(err, models.BadParameterError)

	reloaded, err := suite.usecase.GetDialogmote(suite.ctx, dialogmote.Uuid)
	suite.Require().NoError(err)
	varsel := reloaded.Arbeidstaker.Varsler[0]
	suite.False(varsel.LestDato.Valid)
	suite.Nil(varsel.Svar)
}

func (suite *DialogmoteUsecaseTestSuite) TestRespondToVarsel_referat() {
	dialogmote := suite.create(false)
	finalized, err := suite.usecase.FinalizeDialogmote(suite.ctx, testVeilederIdent, models.FinalizeDialogmoteInput{
		DialogmoteUuid: dialogmote.Uuid,
		Referat:        referatInput(false),
	})
	suite.Require().NoError(err)

	_, err = suite.usecase.RespondToVarsel(suite.ctx, models.ParticipantTypeArbeidstaker,
		finalized.Arbeidstaker.Varsler[1].Uuid, models.Svar{Type: models.SvarTypeKommer})

	suite.ErrorIs(err, models.ErrVarselNotAnswerable)
}

func (suite *DialogmoteUsecaseTestSuite) TestListDialogmoter() {
	first := suite.create(false)
	suite.clock.Advance(time.Hour)
	second := suite.create(true)

	forPerson, err := suite.usecase.ListDialogmoterForPerson(suite.ctx, testPersonident)
	suite.Require().NoError(err)
	suite.Require().Len(forPerson, 2)
	suite.Equal(second.Uuid, forPerson[0].Uuid)
	suite.Equal(first.Uuid, forPerson[1].Uuid)

	forVirksomhet, err := suite.usecase.ListDialogmoterForVirksomhet(suite.ctx, testVirksomhetsnummer)
	suite.Require().NoError(err)
	suite.Len(forVirksomhet, 2)

	varsler, err := suite.usecase.ListVarslerForPerson(suite.ctx, testPersonident)
	suite.Require().NoError(err)
	suite.Len(varsler, 2)

	none, err := suite.usecase.ListDialogmoterForVirksomhet(suite.ctx, "999999999")
	suite.Require().NoError(err)
	suite.Empty(none)
}

func TestDialogmoteUsecase(t *testing.T) {
	suite.Run(t, new(DialogmoteUsecaseTestSuite))
}
