package repositories

import (
	"context"
	"net/http"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/navikt/isdialogmote-sub002/models"
	"github.com/navikt/isdialogmote-sub002/repositories/httpmodels"
)

const navPersonidentHeader = "nav-personident"

type OppfolgingstilfelleClient struct {
	downstream
}

func NewOppfolgingstilfelleClient(baseUrl string, client *http.Client) OppfolgingstilfelleClient {
	return OppfolgingstilfelleClient{downstream{name: "isoppfolgingstilfelle", baseUrl: baseUrl, client: client}}
}

// TilfelleStart returns the start date of the latest oppfolgingstilfelle of the person, nil if there is none.
func (c OppfolgingstilfelleClient) TilfelleStart(ctx context.Context, personident string) (*time.Time, error) {
	_, body, err := c.do(ctx, downstreamRequest{
		method:  http.MethodGet,
		path:    "/api/system/v1/oppfolgingstilfelle/personident",
		headers: map[string]string{navPersonidentHeader: personident},
	})
	if err != nil {
		return nil, err
	}

	var person httpmodels.HTTPOppfolgingstilfellePerson
	if err := c.decode(body, &person); err != nil {
		return nil, err
	}

	var latest *time.Time
	for _, tilfelle := range person.OppfolgingstilfelleList {
		start, err := time.Parse(time.DateOnly, tilfelle.Start)
		if err != nil {
			return nil, errors.Mark(errors.Wrapf(err, "invalid tilfelle start %q", tilfelle.Start),
				models.TransientExternalError)
		}
		if latest == nil || start.After(*latest) {
			latest = &start
		}
	}
	return latest, nil
}
