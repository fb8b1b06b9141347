package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

type livenessUsecase interface {
	Liveness(ctx context.Context) error
}

func handleIsAlive(c *gin.Context) {
	c.String(http.StatusOK, "I'm alive")
}

// the pod only receives traffic while the database answers
func handleIsReady(uc livenessUsecase) func(c *gin.Context) {
	return func(c *gin.Context) {
		err := uc.Liveness(c.Request.Context())
		if presentError(c, err) {
			return
		}
		c.String(http.StatusOK, "I'm ready")
	}
}
