package api

import (
	"context"
	"net/http"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/gavv/httpexpect/v2"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/navikt/isdialogmote-sub002/utils"
)

type livenessMock struct {
	mock.Mock
}

func (m *livenessMock) Liveness(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func newProbeExpect(t *testing.T, liveness livenessUsecase) *httpexpect.Expect {
	gin.SetMode(gin.TestMode)
	registry := prometheus.NewRegistry()
	utils.RegisterMetrics(registry)

	router := gin.New()
	addRoutes(router, liveness, registry)

	return httpexpect.WithConfig(httpexpect.Config{
		BaseURL:  "http://isdialogmote",
		Reporter: httpexpect.NewAssertReporter(t),
		Client: &http.Client{
			Transport: httpexpect.NewBinder(router),
		},
	})
}

func TestProbes_IsAlive(t *testing.T) {
	e := newProbeExpect(t, new(livenessMock))

	e.GET(isAlivePath).Expect().
		Status(http.StatusOK).
		Body().IsEqual("I'm alive")
}

func TestProbes_IsReady(t *testing.T) {
	t.Run("database answers", func(t *testing.T) {
		liveness := new(livenessMock)
		liveness.On("Liveness", mock.Anything).Return(nil)
		e := newProbeExpect(t, liveness)

		e.GET(isReadyPath).Expect().Status(http.StatusOK)
		liveness.AssertExpectations(t)
	})

	t.Run("database down", func(t *testing.T) {
		liveness := new(livenessMock)
		liveness.On("Liveness", mock.Anything).Return(errors.New("connection refused"))
		e := newProbeExpect(t, liveness)

		e.GET(isReadyPath).Expect().
			Status(http.StatusServiceUnavailable).
			JSON().Object().HasValue("message", "unavailable")
	})
}

func TestProbes_Metrics(t *testing.T) {
	utils.MetricDialogmoteStatusTransition.WithLabelValues("INVITED").Inc()
	e := newProbeExpect(t, new(livenessMock))

	e.GET(metricsPath).Expect().
		Status(http.StatusOK).
		Body().Contains("isdialogmote_status_transition_total")
}

func TestProfiler_http_mode(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	require.NoError(t, utils.SetupProfiler(router, utils.ProfilingModeHttp, "isdialogmote", "dev", ""))

	e := httpexpect.WithConfig(httpexpect.Config{
		BaseURL:  "http://isdialogmote",
		Reporter: httpexpect.NewAssertReporter(t),
		Client: &http.Client{
			Transport: httpexpect.NewBinder(router),
		},
	})
	e.GET("/internal/debug/pprof/goroutine").Expect().Status(http.StatusOK)
}
