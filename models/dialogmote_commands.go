package models

import (
	"time"

	"github.com/google/uuid"
)

// DocumentInput is what the veileder wrote for one participant. The pdf is rendered from it.
type DocumentInput struct {
	Fritekst   string
	Components []DocumentComponent `validate:"dive"`
}

type NewTidSted struct {
	Sted      string    `validate:"required"`
	Tid       time.Time `validate:"required"`
	Videolink string    `validate:"omitempty,url"`
}

type NewBehandler struct {
	BehandlerRef    string `validate:"required"`
	BehandlerNavn   string `validate:"required"`
	BehandlerKontor string
	BehandlerType   string `validate:"required"`
	Personident     string `validate:"omitempty,len=11,numeric"`
	Innkalling      DocumentInput
}

type CreateDialogmoteInput struct {
	Personident            string `validate:"required,len=11,numeric"`
	Virksomhetsnummer      string `validate:"required,len=9,numeric"`
	ArbeidsgiverLederNavn  string
	ArbeidsgiverLederEpost string `validate:"omitempty,email"`
	TildeltEnhet           string `validate:"required"`
	TidSted                NewTidSted
	ArbeidstakerInnkalling DocumentInput
	ArbeidsgiverInnkalling DocumentInput
	Behandler              *NewBehandler
}

type CancelDialogmoteInput struct {
	DialogmoteUuid uuid.UUID `validate:"required"`
	Arbeidstaker   DocumentInput
	Arbeidsgiver   DocumentInput
	Behandler      *DocumentInput
}

type RescheduleDialogmoteInput struct {
	DialogmoteUuid uuid.UUID `validate:"required"`
	TidSted        NewTidSted
	Arbeidstaker   DocumentInput
	Arbeidsgiver   DocumentInput
	Behandler      *DocumentInput
}

type ReferatInput struct {
	Situasjon              string `validate:"required"`
	Konklusjon             string `validate:"required"`
	ArbeidstakerOppgave    string
	ArbeidsgiverOppgave    string
	BehandlerOppgave       string
	NarmesteLederNavn      string
	Andredeltakere         []ReferatDeltaker   `validate:"dive"`
	DocumentComponents     []DocumentComponent `validate:"dive"`
	BehandlerDeltatt       bool
	BehandlerMottarReferat bool
}

type FinalizeDialogmoteInput struct {
	DialogmoteUuid uuid.UUID `validate:"required"`
	Referat        ReferatInput
}

type AmendReferatInput struct {
	DialogmoteUuid uuid.UUID `validate:"required"`
	Referat        ReferatInput
	Begrunnelse    string `validate:"required"`
}

type SaveReferatDraftInput struct {
	DialogmoteUuid uuid.UUID `validate:"required"`
	Referat        ReferatInput
}

type ChangeTildeltVeilederInput struct {
	DialogmoteUuid uuid.UUID `validate:"required"`
	VeilederIdent  string    `validate:"required"`
}
