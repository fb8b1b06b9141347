package api

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	isAlivePath = "/internal/is_alive"
	isReadyPath = "/internal/is_ready"
	metricsPath = "/internal/metrics"
)

func addRoutes(r *gin.Engine, liveness livenessUsecase, gatherer prometheus.Gatherer) {
	internal := r.Group("/internal")
	internal.GET("/is_alive", handleIsAlive)
	internal.GET("/is_ready", handleIsReady(liveness))
	internal.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
}
