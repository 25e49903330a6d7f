package handlers

import (
	"net/http"

	"dynamic-pricing/internal/api/models"

	"github.com/gin-gonic/gin"
)

// StrategyHandler handles strategy-related requests
type StrategyHandler struct{}

// NewStrategyHandler creates a new strategy handler
func NewStrategyHandler() *StrategyHandler {
	return &StrategyHandler{}
}

// ListStrategies handles GET /api/v1/strategies
func (h *StrategyHandler) ListStrategies(c *gin.Context) {
	strategies := []models.StrategyInfo{
		{
			Name:        "optimal",
			Description: "Dynamic-programming policy. Solves every (period, inventory) state and charges the price with the highest expected discounted profit.",
			Parameters:  []models.ParameterInfo{},
		},
		{
			Name:        "fixed",
			Description: "Charges one price every period while stock remains.",
			Parameters: []models.ParameterInfo{
				{
					Name:        "price",
					Type:        "float",
					Description: "Price charged each period (defaults to the highest grid price)",
				},
			},
		},
		{
			Name:        "schedule",
			Description: "Full price until a markdown period, then a single markdown price for the rest of the season.",
			Parameters: []models.ParameterInfo{
				{
					Name:        "full_price",
					Type:        "float",
					Description: "Price before the markdown (defaults to the highest grid price)",
				},
				{
					Name:        "markdown_price",
					Type:        "float",
					Description: "Price from the markdown period on (defaults to the lowest grid price)",
				},
				{
					Name:        "markdown_start",
					Type:        "int",
					Description: "First markdown period (defaults to half the horizon)",
				},
			},
		},
	}

	c.JSON(http.StatusOK, gin.H{"strategies": strategies})
}
