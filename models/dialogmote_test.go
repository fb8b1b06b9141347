package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/guregu/null/v5"
	"github.com/stretchr/testify/assert"
)

func TestCurrentTidSted(t *testing.T) {
	created := time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)

	t.Run("empty history", func(t *testing.T) {
		_, ok := Dialogmote{}.CurrentTidSted()
		assert.False(t, ok)
	})

	t.Run("latest created wins, whatever the tid", func(t *testing.T) {
		dialogmote := Dialogmote{TidStedHistory: []TidSted{
			{Id: 1, CreatedAt: created, Tid: created.AddDate(0, 0, 20), Sted: "first"},
			{Id: 3, CreatedAt: created.Add(2 * time.Hour), Tid: created.AddDate(0, 0, 5), Sted: "third"},
			{Id: 2, CreatedAt: created.Add(time.Hour), Tid: created.AddDate(0, 0, 30), Sted: "second"},
		}}

		current, ok := dialogmote.CurrentTidSted()
		assert.True(t, ok)
		assert.Equal(t, "third", current.Sted)
	})

	t.Run("ties go to the latest inserted row", func(t *testing.T) {
		dialogmote := Dialogmote{TidStedHistory: []TidSted{
			{Id: 8, CreatedAt: created, Sted: "later row"},
			{Id: 7, CreatedAt: created, Sted: "earlier row"},
		}}

		current, _ := dialogmote.CurrentTidSted()
		assert.Equal(t, "later row", current.Sted)
	})
}

func TestParticipants(t *testing.T) {
	dialogmote := Dialogmote{
		Arbeidstaker: Arbeidstaker{Id: 1},
		Arbeidsgiver: Arbeidsgiver{Id: 2},
	}
	assert.Len(t, dialogmote.Participants(), 2)

	dialogmote.Behandler = &Behandler{Id: 3}
	participants := dialogmote.Participants()
	assert.Len(t, participants, 3)
	assert.Equal(t, ParticipantTypeBehandler, participants[2].ParticipantType())
	assert.Equal(t, int64(3), participants[2].ParticipantId())
}

func TestFinalAndDraftReferat(t *testing.T) {
	created := time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)
	dialogmote := Dialogmote{Referater: []Referat{
		{Id: 1, CreatedAt: created, Ferdigstilt: true, Konklusjon: "first"},
		{Id: 2, CreatedAt: created.Add(time.Hour), Ferdigstilt: true, Endring: true, Konklusjon: "amended"},
		{Id: 3, CreatedAt: created.Add(-time.Hour), Ferdigstilt: false, Konklusjon: "draft"},
	}}

	final, ok := dialogmote.FinalReferat()
	assert.True(t, ok)
	assert.Equal(t, "amended", final.Konklusjon)

	draft, ok := dialogmote.DraftReferat()
	assert.True(t, ok)
	assert.Equal(t, "draft", draft.Konklusjon)

	_, ok = Dialogmote{}.FinalReferat()
	assert.False(t, ok)
}

func TestEventEligibility(t *testing.T) {
	documents := map[ParticipantType]VarselDocument{
		ParticipantTypeArbeidstaker: {},
		ParticipantTypeArbeidsgiver: {},
		ParticipantTypeBehandler:    {},
	}
	behandler := Behandler{MottarReferat: false}

	minutes := DialogmoteEvent{Type: VarselTypeMinutes, Documents: documents}
	assert.False(t, minutes.Eligible(behandler))
	assert.True(t, minutes.Eligible(Arbeidstaker{}))

	behandler.MottarReferat = true
	assert.True(t, minutes.Eligible(behandler))

	invitation := DialogmoteEvent{Type: VarselTypeInvited, Documents: documents}
	assert.True(t, invitation.Eligible(Behandler{MottarReferat: false}))

	noBehandlerDocument := DialogmoteEvent{Type: VarselTypeCancelled, Documents: map[ParticipantType]VarselDocument{
		ParticipantTypeArbeidstaker: {},
	}}
	assert.False(t, noBehandlerDocument.Eligible(behandler))
}

func TestPdfTemplate(t *testing.T) {
	assert.Equal(t, "innkalling-arbeidstaker", PdfTemplate(VarselTypeInvited, ParticipantTypeArbeidstaker))
	assert.Equal(t, "endring-tidsted-arbeidsgiver", PdfTemplate(VarselTypeRescheduled, ParticipantTypeArbeidsgiver))
	assert.Equal(t, "avlysning-behandler", PdfTemplate(VarselTypeCancelled, ParticipantTypeBehandler))
	assert.Equal(t, "referat", PdfTemplate(VarselTypeMinutes, ParticipantTypeBehandler))
}

func TestNewKDialogmoteStatusEndring(t *testing.T) {
	createdAt := time.Date(2024, 2, 1, 9, 30, 0, 0, time.UTC)
	tid := time.Date(2024, 2, 14, 10, 0, 0, 0, time.UTC)
	tilfelleStart := time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC)
	dialogmoteUuid := uuid.MustParse("4e0b2d3f-2a5c-4b8e-9d5c-7a3c2f1e0d9b")

	payload := NewKDialogmoteStatusEndring(StatusEndringToPublish{
		StatusEndring: DialogmoteStatusEndring{
			Status:        DialogmoteStatusRescheduled,
			CreatedBy:     "Z990099",
			CreatedAt:     createdAt,
			TilfelleStart: null.TimeFrom(tilfelleStart),
		},
		DialogmoteUuid:    dialogmoteUuid,
		DialogmoteTid:     null.TimeFrom(tid),
		Personident:       "12345678912",
		Virksomhetsnummer: "912345678",
		TildeltEnhet:      "0314",
		HasBehandler:      true,
	})

	assert.Equal(t, KDialogmoteStatusEndring{
		DialogmoteUuid:         dialogmoteUuid.String(),
		DialogmoteTidspunkt:    &tid,
		StatusEndringType:      "RESCHEDULED",
		StatusEndringTidspunkt: createdAt,
		PersonIdent:            "12345678912",
		VirksomhetsNummer:      "912345678",
		EnhetNr:                "0314",
		TilfelleStartdato:      &tilfelleStart,
		NavIdent:               "Z990099",
		Arbeidstaker:           true,
		Arbeidsgiver:           true,
		Sykmelder:              true,
	}, payload)

	withoutTilfelle := NewKDialogmoteStatusEndring(StatusEndringToPublish{
		StatusEndring: DialogmoteStatusEndring{Status: DialogmoteStatusClosed},
	})
	assert.Nil(t, withoutTilfelle.TilfelleStartdato)
	assert.Nil(t, withoutTilfelle.DialogmoteTidspunkt)
	assert.False(t, withoutTilfelle.Sykmelder)
}

func TestNewVarselJournalpostRequest(t *testing.T) {
	varselUuid := uuid.New()
	request := NewVarselJournalpostRequest(VarselJournalforing{
		VarselUuid:        varselUuid,
		ParticipantType:   ParticipantTypeArbeidsgiver,
		Type:              VarselTypeCancelled,
		Personident:       "12345678912",
		Virksomhetsnummer: "912345678",
	}, "Bedrift AS", []byte("pdf"))

	assert.Equal(t, "Avlysning av dialogmøte", request.Tittel)
	assert.Equal(t, "OPPF_DM_AVLYSNING", request.Brevkode)
	assert.Equal(t, JournalpostMottaker{Id: "912345678", IdType: JournalpostIdTypeOrgnr, Navn: "Bedrift AS"}, request.Mottaker)
	assert.Equal(t, varselUuid, request.EksternReferanseId)
	assert.Equal(t, "12345678912", request.Personident)
}
