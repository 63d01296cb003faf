package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	taxratedomain "github.com/smallbiznis/bahikhata/internal/taxrate/domain"
)

type createTaxRateRequest struct {
	Label       string  `json:"label"`
	RatePercent float64 `json:"rate_percent"`
	Position    int     `json:"position"`
}

func (s *Server) ListTaxRates(c *gin.Context) {
	rates, err := s.taxRateRepo.List(c.Request.Context(), s.db)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": rates})
}

func (s *Server) CreateTaxRate(c *gin.Context) {
	var req createTaxRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	rate := taxratedomain.GSTRate{
		ID:          s.genID.Generate(),
		Label:       strings.TrimSpace(req.Label),
		RatePercent: req.RatePercent,
		Position:    req.Position,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.taxRateRepo.Insert(c.Request.Context(), s.db, &rate); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": rate})
}
