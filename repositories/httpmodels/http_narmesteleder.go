package httpmodels

type HTTPNarmesteLederRelasjon struct {
	ArbeidstakerPersonIdentNumber  string `json:"arbeidstakerPersonIdentNumber"`
	VirksomhetsNummer              string `json:"virksomhetsnummer"`
	NarmesteLederPersonIdentNumber string `json:"narmesteLederPersonIdentNumber"`
	NarmesteLederNavn              string `json:"narmesteLederNavn"`
	Status                         string `json:"status"`
}

const NarmesteLederStatusAktiv = "INNMELDT_AKTIV"
