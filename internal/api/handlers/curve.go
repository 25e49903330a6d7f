package handlers

import (
	"net/http"

	"dynamic-pricing/internal/analysis"
	"dynamic-pricing/internal/api/models"

	"github.com/gin-gonic/gin"
)

// CurveHandler handles demand-curve requests
type CurveHandler struct {
	markets *MarketHandler
}

// NewCurveHandler creates a new curve handler
func NewCurveHandler(markets *MarketHandler) *CurveHandler {
	return &CurveHandler{markets: markets}
}

// Curve handles POST /api/v1/curve
func (h *CurveHandler) Curve(c *gin.Context) {
	var req models.CurveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", err, nil)
		return
	}

	params, err := h.markets.Resolve(req.Market, req.Pricing)
	if err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_CONFIG", err, nil)
		return
	}

	points, err := analysis.DemandCurve(params, req.Period)
	if err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_CONFIG", err, nil)
		return
	}

	c.JSON(http.StatusOK, models.CurveResponse{
		Period: req.Period,
		Points: points,
		Ranked: analysis.RankByExpectedRevenue(points),
	})
}
