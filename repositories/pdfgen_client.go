package repositories

import (
	"context"
	"net/http"
	"time"

	"github.com/navikt/isdialogmote-sub002/models"
	"github.com/navikt/isdialogmote-sub002/repositories/httpmodels"
)

// PdfgenClient renders the documents sent to the participants with ispdfgen.
type PdfgenClient struct {
	downstream
}

func NewPdfgenClient(baseUrl string, client *http.Client) PdfgenClient {
	return PdfgenClient{downstream{name: "ispdfgen", baseUrl: baseUrl, client: client}}
}

func (c PdfgenClient) RenderPdf(ctx context.Context, template string, components []models.DocumentComponent) ([]byte, error) {
	_, pdf, err := c.do(ctx, downstreamRequest{
		method: http.MethodPost,
		path:   "/api/v1/genpdf/isdialogmote/" + template,
		body: httpmodels.HTTPPdfgenRequest{
			DatoSendt:          time.Now().Format("02.01.2006"),
			DocumentComponents: httpmodels.AdaptPdfgenComponents(components),
		},
		headers: map[string]string{"Accept": "application/pdf"},
	})
	if err != nil {
		return nil, err
	}
	return pdf, nil
}
