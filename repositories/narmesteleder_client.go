package repositories

import (
	"context"
	"net/http"

	"github.com/navikt/isdialogmote-sub002/models"
	"github.com/navikt/isdialogmote-sub002/repositories/httpmodels"
)

type NarmesteLederClient struct {
	downstream
}

func NewNarmesteLederClient(baseUrl string, client *http.Client) NarmesteLederClient {
	return NarmesteLederClient{downstream{name: "narmesteleder", baseUrl: baseUrl, client: client}}
}

// ActiveNarmesteLeder returns the active leader of the person in the virksomhet, nil if there is none.
func (c NarmesteLederClient) ActiveNarmesteLeder(
	ctx context.Context,
	personident string,
	virksomhetsnummer string,
) (*models.NarmesteLeder, error) {
	_, body, err := c.do(ctx, downstreamRequest{
		method:  http.MethodGet,
		path:    "/api/system/v1/narmestelederrelasjoner",
		headers: map[string]string{navPersonidentHeader: personident},
	})
	if err != nil {
		return nil, err
	}

	var relasjoner []httpmodels.HTTPNarmesteLederRelasjon
	if err := c.decode(body, &relasjoner); err != nil {
		return nil, err
	}
	for _, relasjon := range relasjoner {
		if relasjon.VirksomhetsNummer == virksomhetsnummer &&
			relasjon.ArbeidstakerPersonIdentNumber == personident &&
			relasjon.Status == httpmodels.NarmesteLederStatusAktiv {
			return &models.NarmesteLeder{
				Personident:       relasjon.NarmesteLederPersonIdentNumber,
				Virksomhetsnummer: relasjon.VirksomhetsNummer,
				Navn:              relasjon.NarmesteLederNavn,
			}, nil
		}
	}
	return nil, nil
}
