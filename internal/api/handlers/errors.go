package handlers

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"dynamic-pricing/internal/api/models"
)

func writeError(c *gin.Context, status int, code string, err error, details map[string]interface{}) {
	c.JSON(status, models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    code,
			Message: err.Error(),
			Details: details,
		},
	})
}

func errEpisodes(n int) error {
	return fmt.Errorf("simulation.episodes %d exceeds the limit of %d", n, MaxEpisodes)
}
