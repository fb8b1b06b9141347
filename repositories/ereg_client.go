package repositories

import (
	"context"
	"net/http"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/tidwall/gjson"
)

type EregClient struct {
	downstream
	names *expirable.LRU[string, string]
}

func NewEregClient(baseUrl string, client *http.Client) EregClient {
	return EregClient{
		downstream: downstream{name: "ereg", baseUrl: baseUrl, client: client},
		names:      expirable.NewLRU[string, string](1000, nil, 24*time.Hour),
	}
}

// OrganizationName returns the registered name of the virksomhet, or an empty string if ereg does not know it.
func (c EregClient) OrganizationName(ctx context.Context, virksomhetsnummer string) (string, error) {
	if name, ok := c.names.Get(virksomhetsnummer); ok {
		return name, nil
	}

	status, body, err := c.do(ctx, downstreamRequest{
		method:   http.MethodGet,
		path:     "/ereg/api/v1/organisasjon/" + virksomhetsnummer,
		accepted: []int{http.StatusOK, http.StatusNotFound},
	})
	if err != nil {
		return "", err
	}
	if status == http.StatusNotFound {
		return "", nil
	}

	name := gjson.GetBytes(body, "navn.sammensattnavn").String()
	if name == "" {
		name = gjson.GetBytes(body, "navn.navnelinje1").String()
	}
	c.names.Add(virksomhetsnummer, name)
	return name, nil
}
