package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/navikt/isdialogmote-sub002/usecases"
	"github.com/navikt/isdialogmote-sub002/utils"
)

const probeTimeout = 10 * time.Second

// NewServer serves the probes and the metrics of the worker process. The dialogmote operations have no
// http surface here.
func NewServer(
	ctx context.Context,
	router *gin.Engine,
	conf Configuration,
	uc usecases.Usecases,
	gatherer prometheus.Gatherer,
) *http.Server {
	liveness := uc.NewLivenessUsecase()
	addRoutes(router, &liveness, gatherer)

	if err := utils.SetupProfiler(router, conf.ProfilingMode, conf.AppName, conf.Version, conf.GcpProjectId); err != nil {
		utils.LoggerFromContext(ctx).WarnContext(ctx, err.Error())
	}

	return &http.Server{
		Addr:         fmt.Sprintf("0.0.0.0:%s", conf.Port),
		WriteTimeout: probeTimeout,
		ReadTimeout:  probeTimeout,
		IdleTimeout:  probeTimeout,
		Handler:      router,
	}
}
