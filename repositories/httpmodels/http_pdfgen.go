package httpmodels

import "github.com/navikt/isdialogmote-sub002/models"

type HTTPPdfgenRequest struct {
	MottakerNavn       string                `json:"mottakerNavn,omitempty"`
	DatoSendt          string                `json:"datoSendt"`
	DocumentComponents []HTTPPdfgenComponent `json:"documentComponents"`
}

type HTTPPdfgenComponent struct {
	Type  string   `json:"type"`
	Key   string   `json:"key,omitempty"`
	Title string   `json:"title,omitempty"`
	Texts []string `json:"texts"`
}

func AdaptPdfgenComponents(components []models.DocumentComponent) []HTTPPdfgenComponent {
	result := make([]HTTPPdfgenComponent, 0, len(components))
	for _, c := range components {
		texts := c.Texts
		if texts == nil {
			texts = []string{}
		}
		result = append(result, HTTPPdfgenComponent{Type: c.Type, Key: c.Key, Title: c.Title, Texts: texts})
	}
	return result
}
