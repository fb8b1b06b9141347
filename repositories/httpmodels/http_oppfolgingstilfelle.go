package httpmodels

type HTTPOppfolgingstilfellePerson struct {
	OppfolgingstilfelleList []HTTPOppfolgingstilfelle `json:"oppfolgingstilfelleList"`
	Personident             string                    `json:"personIdent"`
}

type HTTPOppfolgingstilfelle struct {
	Start string `json:"start"`
	End   string `json:"end"`
}
