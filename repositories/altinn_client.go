package repositories

import (
	"context"
	"net/http"

	"github.com/cockroachdb/errors"

	"github.com/navikt/isdialogmote-sub002/models"
	"github.com/navikt/isdialogmote-sub002/repositories/httpmodels"
)

// AltinnClient sends varsler to the virksomhet's message box, used when the arbeidstaker has no active narmeste leder.
type AltinnClient struct {
	downstream
}

func NewAltinnClient(baseUrl string, client *http.Client) AltinnClient {
	return AltinnClient{downstream{name: "altinn", baseUrl: baseUrl, client: client}}
}

func (c AltinnClient) Deliver(ctx context.Context, delivery models.VarselDelivery) error {
	if delivery.Virksomhetsnummer == "" {
		return errors.Wrapf(models.ConstraintViolationError, "varsel %s has no virksomhetsnummer", delivery.VarselUuid)
	}
	_, _, err := c.do(ctx, downstreamRequest{
		method: http.MethodPost,
		path:   "/api/v1/correspondence",
		body: httpmodels.HTTPAltinnCorrespondence{
			Reference:         delivery.VarselUuid.String(),
			Virksomhetsnummer: delivery.Virksomhetsnummer,
			Title:             models.VarselTitle(delivery.Type),
			Summary:           delivery.Fritekst,
			Attachment:        delivery.Pdf,
			AttachmentName:    delivery.PdfId.String() + ".pdf",
		},
		accepted: []int{http.StatusOK, http.StatusCreated, http.StatusConflict},
	})
	return err
}
