package utils

import (
	"net/http/pprof"

	"cloud.google.com/go/profiler"
	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"
)

const (
	ProfilingModeGcp  = "gcp"
	ProfilingModeHttp = "http"
)

// SetupProfiler starts the cloud profiler agent, or mounts the pprof handlers next to the probes.
// The probe port is only reachable inside the cluster.
func SetupProfiler(r *gin.Engine, mode, serviceName, serviceVersion, gcpProjectId string) error {
	switch mode {
	case ProfilingModeGcp:
		cfg := profiler.Config{
			ProjectID:      gcpProjectId,
			Service:        serviceName,
			ServiceVersion: serviceVersion,
		}
		if err := profiler.Start(cfg); err != nil {
			return errors.Wrap(err, "could not start the cloud profiler")
		}

	case ProfilingModeHttp:
		pp := r.Group("/internal/debug/pprof")
		pp.GET("/profile", gin.WrapF(pprof.Profile))
		pp.GET("/goroutine", gin.WrapH(pprof.Handler("goroutine")))
		pp.GET("/heap", gin.WrapH(pprof.Handler("heap")))
		pp.GET("/block", gin.WrapH(pprof.Handler("block")))
		pp.GET("/mutex", gin.WrapH(pprof.Handler("mutex")))
	}
	return nil
}
