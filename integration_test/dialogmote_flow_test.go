//go:build integration

package integration

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/go-faker/faker/v4"
	"github.com/h2non/gock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"gocloud.dev/pubsub"

	"github.com/navikt/isdialogmote-sub002/models"
	"github.com/navikt/isdialogmote-sub002/utils"
)

const (
	testPersonident       = "12345678912"
	testVirksomhetsnummer = "912345678"
	testLederPersonident  = "01010112345"
	testVeilederIdent     = "Z990099"
)

func stubDownstream() {
	gock.New(downstreamUrl).
		Post("/api/v1/genpdf/isdialogmote/.+").
		Persist().
		Reply(http.StatusOK).
		BodyString("%PDF-1.7")
	gock.New(downstreamUrl).
		Get("/api/system/v1/oppfolgingstilfelle/personident").
		Persist().
		Reply(http.StatusOK).
		JSON(map[string]any{
			"personIdent":             testPersonident,
			"oppfolgingstilfelleList": []map[string]string{{"start": "2024-01-15", "end": "2024-06-30"}},
		})
	gock.New(downstreamUrl).
		Post("/rest/v1/personer").
		Persist().
		Reply(http.StatusOK).
		JSON(map[string]any{
			"personer": map[string]any{
				testPersonident: map[string]any{"aktiv": true, "kanVarsles": true, "reservert": false},
			},
		})
	gock.New(downstreamUrl).
		Get("/api/system/v1/narmestelederrelasjoner").
		Persist().
		Reply(http.StatusOK).
		JSON([]map[string]any{{
			"arbeidstakerPersonIdentNumber":  testPersonident,
			"virksomhetsnummer":              testVirksomhetsnummer,
			"narmesteLederPersonIdentNumber": testLederPersonident,
			"narmesteLederNavn":              "Leder Ledersen",
			"status":                         "INNMELDT_AKTIV",
		}})
	gock.New(downstreamUrl).
		Post("/rest/journalpostapi/v1/journalpost").
		Persist().
		Reply(http.StatusCreated).
		JSON(map[string]any{"journalpostId": 123, "journalpostferdigstilt": true})
	gock.New(downstreamUrl).
		Post("/graphql").
		Persist().
		Reply(http.StatusOK).
		JSON(map[string]any{
			"data": map[string]any{
				"hentPerson": map[string]any{
					"navn": []map[string]any{{"fornavn": "OLA", "mellomnavn": nil, "etternavn": "NORDMANN"}},
				},
			},
		})
	gock.New(downstreamUrl).
		Get("/ereg/api/v1/organisasjon/" + testVirksomhetsnummer).
		Persist().
		Reply(http.StatusOK).
		JSON(map[string]any{"navn": map[string]any{"sammensattnavn": "BEDRIFT AS"}})
}

func receiveAll(t *testing.T, subscription *pubsub.Subscription, count int) []*pubsub.Message {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	messages := make([]*pubsub.Message, 0, count)
	for range count {
		msg, err := subscription.Receive(ctx)
		require.NoError(t, err)
		msg.Ack()
		messages = append(messages, msg)
	}
	return messages
}

func TestDialogmoteLifecycle(t *testing.T) {
	defer gock.Off()
	stubDownstream()
	ctx := utils.StoreLoggerInContext(context.Background(), utils.NewLogger("text"))
	usecase := testUsecases.NewDialogmoteUsecase()

	created, err := usecase.CreateDialogmote(ctx, testVeilederIdent, models.CreateDialogmoteInput{
		Personident:            testPersonident,
		Virksomhetsnummer:      testVirksomhetsnummer,
		ArbeidsgiverLederNavn:  faker.Name(),
		ArbeidsgiverLederEpost: faker.Email(),
		TildeltEnhet:           "0314",
		TidSted: models.NewTidSted{
			Sted: "Nav Sagene",
			Tid:  time.Now().AddDate(0, 0, 14),
		},
		ArbeidstakerInnkalling: models.DocumentInput{Fritekst: "Velkommen til dialogmøte"},
		ArbeidsgiverInnkalling: models.DocumentInput{Fritekst: "Velkommen til dialogmøte"},
		Behandler: &models.NewBehandler{
			BehandlerRef:  "behandler-ref-1",
			BehandlerNavn: "Lege Legesen",
			BehandlerType: "FASTLEGE",
		},
	})
	require.NoError(t, err)
	assert.Equal(t, models.DialogmoteStatusInvited, created.Status)
	require.Len(t, created.Arbeidstaker.Varsler, 1)
	require.Len(t, created.Arbeidsgiver.Varsler, 1)
	require.NotNil(t, created.Behandler)
	require.Len(t, created.Behandler.Varsler, 1)
	assert.Equal(t, models.DeliveryChannelDigital, created.Arbeidstaker.Varsler[0].Channel)
	assert.Equal(t, models.DeliveryChannelNarmesteLeder, created.Arbeidsgiver.Varsler[0].Channel)
	assert.True(t, created.Arbeidstaker.Varsler[0].DeliveredAt.Valid)

	innkallinger := receiveAll(t, esyfovarselSubscription, 2)
	assert.ElementsMatch(t,
		[]string{"SM_DIALOGMOTE_INNKALT", "NL_DIALOGMOTE_INNKALT"},
		[]string{
			gjson.GetBytes(innkallinger[0].Body, "type").String(),
			gjson.GetBytes(innkallinger[1].Body, "type").String(),
		})
	receiveAll(t, dialogmeldingSubscription, 1)

	varselUuid := created.Arbeidstaker.Varsler[0].Uuid
	read, err := usecase.MarkVarselRead(ctx, models.ParticipantTypeArbeidstaker, varselUuid)
	require.NoError(t, err)
	assert.True(t, read.LestDato.Valid)

	answered, err := usecase.RespondToVarsel(ctx, models.ParticipantTypeArbeidstaker, varselUuid,
		models.Svar{Type: models.SvarTypeKommer})
	require.NoError(t, err)
	require.NotNil(t, answered.Svar)
	assert.Equal(t, models.SvarTypeKommer, answered.Svar.Type)

	_, err = usecase.RespondToVarsel(ctx, models.ParticipantTypeArbeidstaker, varselUuid,
		models.Svar{Type: models.SvarTypeKommerIkke})
	assert.ErrorIs(t, err, models.ErrVarselAlreadyAnswered)

	newTid := time.Now().AddDate(0, 0, 21)
	rescheduled, err := usecase.RescheduleDialogmote(ctx, testVeilederIdent, models.RescheduleDialogmoteInput{
		DialogmoteUuid: created.Uuid,
		TidSted:        models.NewTidSted{Sted: "Nav Grünerløkka", Tid: newTid},
		Arbeidstaker:   models.DocumentInput{Fritekst: "Ny tid"},
		Arbeidsgiver:   models.DocumentInput{Fritekst: "Ny tid"},
	})
	require.NoError(t, err)
	assert.Equal(t, models.DialogmoteStatusRescheduled, rescheduled.Status)
	current, ok := rescheduled.CurrentTidSted()
	require.True(t, ok)
	assert.Equal(t, "Nav Grünerløkka", current.Sted)

	finalized, err := usecase.FinalizeDialogmote(ctx, testVeilederIdent, models.FinalizeDialogmoteInput{
		DialogmoteUuid: created.Uuid,
		Referat: models.ReferatInput{
			Situasjon:              "Arbeidstaker er delvis sykmeldt",
			Konklusjon:             "Gradert sykmelding videreføres",
			BehandlerDeltatt:       true,
			BehandlerMottarReferat: true,
		},
	})
	require.NoError(t, err)
	assert.Equal(t, models.DialogmoteStatusFinalized, finalized.Status)
	referat, ok := finalized.FinalReferat()
	require.True(t, ok)
	assert.NotNil(t, referat.PdfId)

	_, err = usecase.CancelDialogmote(ctx, testVeilederIdent, models.CancelDialogmoteInput{DialogmoteUuid: created.Uuid})
	assert.Error(t, err)

	published, err := testUsecases.NewStatusEndringPublisher().RunOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.JobResult{Updated: 3}, published)
	statuses := receiveAll(t, statusEndringSubscription, 3)
	assert.Equal(t, "INVITED", gjson.GetBytes(statuses[0].Body, "statusEndringType").String())
	assert.Equal(t, "RESCHEDULED", gjson.GetBytes(statuses[1].Body, "statusEndringType").String())
	assert.Equal(t, "FINALIZED", gjson.GetBytes(statuses[2].Body, "statusEndringType").String())
	assert.True(t, gjson.GetBytes(statuses[2].Body, "sykmelder").Bool())

	endringer, err := testUsecases.Repositories.DbRepository.ListStatusEndringer(ctx, testDbPool, created.Id)
	require.NoError(t, err)
	require.Len(t, endringer, 3)
	for _, endring := range endringer {
		assert.True(t, endring.PublishedAt.Valid)
		assert.True(t, endring.TilfelleStart.Valid)
	}

	journalfort, err := testUsecases.NewJournalforingReconciler().RunOnce(ctx)
	require.NoError(t, err)
	assert.Zero(t, journalfort.Failed)
	assert.Positive(t, journalfort.Updated)

	journalfort, err = testUsecases.NewJournalforingReconciler().RunOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.JobResult{}, journalfort)

	delivered, err := testUsecases.NewDeliveryReconciler().RunOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.JobResult{}, delivered)

	swept, err := testUsecases.NewOutdatedSweeper().RunOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.JobResult{}, swept)
}
