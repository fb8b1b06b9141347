package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type JournalpostIdType string

const (
	JournalpostIdTypeFnr   JournalpostIdType = "FNR"
	JournalpostIdTypeOrgnr JournalpostIdType = "ORGNR"
	JournalpostIdTypeHprnr JournalpostIdType = "HPRNR"
)

const UnknownRecipientName = "Ukjent mottaker"

type JournalpostMottaker struct {
	Id     string
	IdType JournalpostIdType
	Navn   string
}

// JournalpostRequest is the archive submission of one document. EksternReferanseId is the uuid of the
// archived row: the archive refuses a second journalpost with the same reference.
type JournalpostRequest struct {
	Tittel             string
	Brevkode           string
	Personident        string
	Mottaker           JournalpostMottaker
	EksternReferanseId uuid.UUID
	Kanal              string
	Pdf                []byte
	DokumentDato       time.Time
}

func varselTittel(varselType VarselType) (string, string) {
	switch varselType {
	case VarselTypeInvited:
		return "Innkalling til dialogmøte", "OPPF_DM_INNKALLING"
	case VarselTypeRescheduled:
		return "Endring av dialogmøte", "OPPF_DM_ENDRING"
	case VarselTypeCancelled:
		return "Avlysning av dialogmøte", "OPPF_DM_AVLYSNING"
	case VarselTypeMinutes:
		return "Referat fra dialogmøte", "OPPF_DM_REFERAT"
	}
	return fmt.Sprintf("Dialogmøte %s", varselType), "OPPF_DM"
}

func NewVarselJournalpostRequest(v VarselJournalforing, mottakerNavn string, pdf []byte) JournalpostRequest {
	tittel, brevkode := varselTittel(v.Type)
	mottaker := JournalpostMottaker{Id: v.Personident, IdType: JournalpostIdTypeFnr, Navn: mottakerNavn}
	kanal := "SDP"
	switch v.ParticipantType {
	case ParticipantTypeArbeidsgiver:
		mottaker = JournalpostMottaker{Id: v.Virksomhetsnummer, IdType: JournalpostIdTypeOrgnr, Navn: mottakerNavn}
		kanal = "ALTINN"
	case ParticipantTypeBehandler:
		mottaker = JournalpostMottaker{Id: v.BehandlerRef, IdType: JournalpostIdTypeHprnr, Navn: mottakerNavn}
		kanal = "HELSENETTET"
	}
	return JournalpostRequest{
		Tittel:             tittel,
		Brevkode:           brevkode,
		Personident:        v.Personident,
		Mottaker:           mottaker,
		EksternReferanseId: v.VarselUuid,
		Kanal:              kanal,
		Pdf:                pdf,
		DokumentDato:       v.CreatedAt,
	}
}

func NewReferatJournalpostRequest(r ReferatJournalforing, mottakerNavn string, pdf []byte) JournalpostRequest {
	tittel, brevkode := varselTittel(VarselTypeMinutes)
	if r.Endring {
		tittel = "Endret referat fra dialogmøte"
	}
	return JournalpostRequest{
		Tittel:             tittel,
		Brevkode:           brevkode,
		Personident:        r.Personident,
		Mottaker:           JournalpostMottaker{Id: r.Personident, IdType: JournalpostIdTypeFnr, Navn: mottakerNavn},
		EksternReferanseId: r.ReferatUuid,
		Kanal:              "NAV_NO",
		Pdf:                pdf,
		DokumentDato:       r.CreatedAt,
	}
}

func VarselTitle(varselType VarselType) string {
	tittel, _ := varselTittel(varselType)
	return tittel
}
