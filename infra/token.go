package infra

import (
	"context"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// NewSystemHttpClient returns an http client that authenticates as the application itself
// with a token for the given scope. The token is cached and refreshed by the oauth2 transport.
// Both the token requests and the calls are traced.
func NewSystemHttpClient(ctx context.Context, config TokenConfig, scope string, timeout time.Duration) *http.Client {
	traced := &http.Client{
		Timeout:   timeout,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}
	if config.TokenUrl == "" || scope == "" {
		return traced
	}
	credentials := clientcredentials.Config{
		ClientID:     config.ClientId,
		ClientSecret: config.ClientSecret,
		TokenURL:     config.TokenUrl,
		Scopes:       []string{scope},
	}
	client := credentials.Client(context.WithValue(ctx, oauth2.HTTPClient, traced))
	client.Timeout = timeout
	return client
}
