package repositories

import (
	"context"
	"net/http"

	"github.com/cockroachdb/errors"

	"github.com/navikt/isdialogmote-sub002/models"
	"github.com/navikt/isdialogmote-sub002/repositories/httpmodels"
)

// KrrClient reads the contact and reservation register.
type KrrClient struct {
	downstream
}

func NewKrrClient(baseUrl string, client *http.Client) KrrClient {
	return KrrClient{downstream{name: "digdir-krr-proxy", baseUrl: baseUrl, client: client}}
}

// HasDigitalConsent is true when the person can be notified digitally and did not reserve against it.
func (c KrrClient) HasDigitalConsent(ctx context.Context, personident string) (bool, error) {
	_, body, err := c.do(ctx, downstreamRequest{
		method: http.MethodPost,
		path:   "/rest/v1/personer",
		body:   httpmodels.HTTPKrrRequest{Personidenter: []string{personident}},
	})
	if err != nil {
		return false, err
	}

	var response httpmodels.HTTPKrrResponse
	if err := c.decode(body, &response); err != nil {
		return false, err
	}
	if feil, ok := response.Feil[personident]; ok {
		return false, errors.Wrapf(models.TransientExternalError, "krr could not look up the person: %s", feil)
	}
	person, ok := response.Personer[personident]
	if !ok {
		return false, nil
	}
	return person.Aktiv && person.KanVarsles && !person.Reservert, nil
}
