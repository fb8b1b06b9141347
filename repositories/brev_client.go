package repositories

import (
	"context"
	"net/http"

	"github.com/navikt/isdialogmote-sub002/models"
	"github.com/navikt/isdialogmote-sub002/repositories/httpmodels"
)

// BrevClient orders a physical letter for an arbeidstaker who cannot be notified digitally.
type BrevClient struct {
	downstream
}

func NewBrevClient(baseUrl string, client *http.Client) BrevClient {
	return BrevClient{downstream{name: "brev", baseUrl: baseUrl, client: client}}
}

func (c BrevClient) Deliver(ctx context.Context, delivery models.VarselDelivery) error {
	_, _, err := c.do(ctx, downstreamRequest{
		method: http.MethodPost,
		path:   "/api/v1/brev",
		body: httpmodels.HTTPBrevBestilling{
			BestillingsId: delivery.VarselUuid.String(),
			Personident:   delivery.Personident,
			Dokument:      delivery.Pdf,
			Tittel:        models.VarselTitle(delivery.Type),
		},
		accepted: []int{http.StatusOK, http.StatusCreated, http.StatusConflict},
	})
	return err
}
