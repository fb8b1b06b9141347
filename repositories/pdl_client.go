package repositories

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/tidwall/gjson"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/navikt/isdialogmote-sub002/models"
)

const hentPersonNavnQuery = `query($ident: ID!) {
  hentPerson(ident: $ident) {
    navn(historikk: false) { fornavn mellomnavn etternavn }
  }
}`

type pdlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

// PdlClient looks up person names, used as recipient names on the journalposter.
type PdlClient struct {
	downstream
	names *expirable.LRU[string, string]
}

func NewPdlClient(baseUrl string, client *http.Client) PdlClient {
	return PdlClient{
		downstream: downstream{name: "pdl", baseUrl: baseUrl, client: client},
		names:      expirable.NewLRU[string, string](1000, nil, time.Hour),
	}
}

// PersonName returns the full name of the person, or an empty string if the person has no name registered.
func (c PdlClient) PersonName(ctx context.Context, personident string) (string, error) {
	if name, ok := c.names.Get(personident); ok {
		return name, nil
	}

	_, body, err := c.do(ctx, downstreamRequest{
		method: http.MethodPost,
		path:   "/graphql",
		body: pdlRequest{
			Query:     hentPersonNavnQuery,
			Variables: map[string]any{"ident": personident},
		},
		headers: map[string]string{"Behandlingsnummer": "B426", "Tema": "OPP"},
	})
	if err != nil {
		return "", err
	}
	if !gjson.ValidBytes(body) {
		return "", errors.Wrap(models.TransientExternalError, "pdl returned invalid json")
	}

	result := gjson.ParseBytes(body)
	if pdlErrors := result.Get("errors"); pdlErrors.Exists() && len(pdlErrors.Array()) > 0 {
		return "", errors.Wrapf(models.TransientExternalError, "pdl returned errors: %s",
			pdlErrors.Get("0.message").String())
	}

	navn := result.Get("data.hentPerson.navn.0")
	if !navn.Exists() {
		return "", nil
	}
	parts := make([]string, 0, 3)
	for _, field := range []string{"fornavn", "mellomnavn", "etternavn"} {
		if value := strings.TrimSpace(navn.Get(field).String()); value != "" {
			parts = append(parts, value)
		}
	}
	name := cases.Title(language.Norwegian).String(strings.Join(parts, " "))

	c.names.Add(personident, name)
	return name, nil
}
