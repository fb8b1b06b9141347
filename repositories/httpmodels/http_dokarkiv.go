package httpmodels

import (
	"github.com/navikt/isdialogmote-sub002/models"
)

type HTTPJournalpostRequest struct {
	JournalpostType      string                    `json:"journalpostType"`
	Tittel               string                    `json:"tittel"`
	Tema                 string                    `json:"tema"`
	Kanal                string                    `json:"kanal"`
	JournalfoerendeEnhet int                       `json:"journalfoerendeEnhet"`
	EksternReferanseId   string                    `json:"eksternReferanseId"`
	Bruker               HTTPJournalpostBruker     `json:"bruker"`
	AvsenderMottaker     HTTPAvsenderMottaker      `json:"avsenderMottaker"`
	Sak                  HTTPJournalpostSak        `json:"sak"`
	Dokumenter           []HTTPJournalpostDokument `json:"dokumenter"`
	DatoDokument         string                    `json:"datoDokument"`
}

type HTTPJournalpostBruker struct {
	Id     string `json:"id"`
	IdType string `json:"idType"`
}

type HTTPAvsenderMottaker struct {
	Id     string `json:"id"`
	IdType string `json:"idType"`
	Navn   string `json:"navn"`
}

type HTTPJournalpostSak struct {
	SakType string `json:"sakstype"`
}

type HTTPJournalpostDokument struct {
	Tittel            string                `json:"tittel"`
	Brevkode          string                `json:"brevkode"`
	Dokumentvarianter []HTTPDokumentvariant `json:"dokumentvarianter"`
}

type HTTPDokumentvariant struct {
	Filtype        string `json:"filtype"`
	Fysiskdokument []byte `json:"fysiskDokument"`
	Variantformat  string `json:"variantformat"`
}

type HTTPJournalpostResponse struct {
	JournalpostId          int    `json:"journalpostId"`
	Journalstatus          string `json:"journalstatus"`
	JournalpostFerdigstilt bool   `json:"journalpostferdigstilt"`
}

const journalforendeEnhetAutomatisk = 9999

func AdaptJournalpostRequest(r models.JournalpostRequest) HTTPJournalpostRequest {
	return HTTPJournalpostRequest{
		JournalpostType:      "UTGAAENDE",
		Tittel:               r.Tittel,
		Tema:                 "OPP",
		Kanal:                r.Kanal,
		JournalfoerendeEnhet: journalforendeEnhetAutomatisk,
		EksternReferanseId:   r.EksternReferanseId.String(),
		Bruker:               HTTPJournalpostBruker{Id: r.Personident, IdType: string(models.JournalpostIdTypeFnr)},
		AvsenderMottaker: HTTPAvsenderMottaker{
			Id:     r.Mottaker.Id,
			IdType: string(r.Mottaker.IdType),
			Navn:   r.Mottaker.Navn,
		},
		Sak: HTTPJournalpostSak{SakType: "GENERELL_SAK"},
		Dokumenter: []HTTPJournalpostDokument{{
			Tittel:   r.Tittel,
			Brevkode: r.Brevkode,
			Dokumentvarianter: []HTTPDokumentvariant{{
				Filtype:        "PDFA",
				Fysiskdokument: r.Pdf,
				Variantformat:  "ARKIV",
			}},
		}},
		DatoDokument: r.DokumentDato.Format("2006-01-02T15:04:05"),
	}
}
