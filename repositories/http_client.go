package repositories

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"slices"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"

	"github.com/navikt/isdialogmote-sub002/models"
)

const navCallIdHeader = "Nav-Call-Id"

// downstream is the common part of the http clients of the collaborating systems. Every failure is
// marked as a TransientExternalError: the periodic jobs will try again.
type downstream struct {
	name    string
	baseUrl string
	client  *http.Client
}

type downstreamRequest struct {
	method   string
	path     string
	headers  map[string]string
	body     any
	accepted []int
}

func (d downstream) do(ctx context.Context, r downstreamRequest) (int, []byte, error) {
	var body io.Reader
	if r.body != nil {
		b, err := json.Marshal(r.body)
		if err != nil {
			return 0, nil, errors.Wrapf(err, "could not marshal %s request", d.name)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, d.baseUrl+r.path, body)
	if err != nil {
		return 0, nil, errors.Wrapf(err, "could not build %s request", d.name)
	}
	if r.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set(navCallIdHeader, CallIdFromContext(ctx))
	for k, v := range r.headers {
		req.Header.Set(k, v)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return 0, nil, errors.Mark(errors.Wrapf(err, "%s request failed", d.name), models.TransientExternalError)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, errors.Mark(
			errors.Wrapf(err, "could not read %s response", d.name), models.TransientExternalError)
	}

	accepted := r.accepted
	if len(accepted) == 0 {
		accepted = []int{http.StatusOK}
	}
	if !slices.Contains(accepted, resp.StatusCode) {
		return resp.StatusCode, respBody, errors.Wrapf(models.TransientExternalError,
			"%s %s %s responded with status %d", d.name, r.method, r.path, resp.StatusCode)
	}
	return resp.StatusCode, respBody, nil
}

func (d downstream) decode(body []byte, out any) error {
	if err := json.Unmarshal(body, out); err != nil {
		return errors.Mark(errors.Wrapf(err, "could not decode %s response", d.name), models.TransientExternalError)
	}
	return nil
}

type callIdKey struct{}

// WithCallId sets the correlation id sent to the downstream systems.
func WithCallId(ctx context.Context, callId string) context.Context {
	return context.WithValue(ctx, callIdKey{}, callId)
}

// CallIdFromContext returns the correlation id of the context, or a new one.
func CallIdFromContext(ctx context.Context) string {
	if callId, ok := ctx.Value(callIdKey{}).(string); ok {
		return callId
	}
	return fmt.Sprintf("isdialogmote-%s", uuid.NewString())
}
