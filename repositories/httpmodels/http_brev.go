package httpmodels

type HTTPBrevBestilling struct {
	BestillingsId string `json:"bestillingsId"`
	Personident   string `json:"personident"`
	Dokument      []byte `json:"dokument"`
	Tittel        string `json:"tittel"`
}
