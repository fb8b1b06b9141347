package repositories

import (
	"context"
	"net/http"

	"github.com/cockroachdb/errors"
	"golang.org/x/time/rate"

	"github.com/navikt/isdialogmote-sub002/models"
	"github.com/navikt/isdialogmote-sub002/repositories/httpmodels"
)

// DokarkivClient creates journalposter. The archive rejects a second journalpost with the same
// ekstern referanse id with a 409 that carries the existing journalpost id.
type DokarkivClient struct {
	downstream
	limiter *rate.Limiter
}

func NewDokarkivClient(baseUrl string, client *http.Client, limiter *rate.Limiter) DokarkivClient {
	return DokarkivClient{
		downstream: downstream{name: "dokarkiv", baseUrl: baseUrl, client: client},
		limiter:    limiter,
	}
}

func (c DokarkivClient) Archive(ctx context.Context, request models.JournalpostRequest) (int, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return 0, errors.Wrap(err, "dokarkiv rate limiter")
	}

	_, body, err := c.do(ctx, downstreamRequest{
		method:   http.MethodPost,
		path:     "/rest/journalpostapi/v1/journalpost?forsoekFerdigstill=true",
		body:     httpmodels.AdaptJournalpostRequest(request),
		accepted: []int{http.StatusOK, http.StatusCreated, http.StatusConflict},
	})
	if err != nil {
		return 0, err
	}

	var response httpmodels.HTTPJournalpostResponse
	if err := c.decode(body, &response); err != nil {
		return 0, err
	}
	if response.JournalpostId == 0 {
		return 0, errors.Wrap(models.TransientExternalError, "dokarkiv returned no journalpost id")
	}
	return response.JournalpostId, nil
}
