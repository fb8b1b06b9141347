package httpmodels

type HTTPKrrRequest struct {
	Personidenter []string `json:"personidenter"`
}

type HTTPKrrResponse struct {
	Personer map[string]HTTPKrrPerson `json:"personer"`
	Feil     map[string]string        `json:"feil"`
}

type HTTPKrrPerson struct {
	Personident string `json:"personident"`
	Aktiv       bool   `json:"aktiv"`
	KanVarsles  bool   `json:"kanVarsles"`
	Reservert   bool   `json:"reservert"`
}
