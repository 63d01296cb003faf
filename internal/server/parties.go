package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	partydomain "github.com/smallbiznis/bahikhata/internal/party/domain"
)

type createPartyRequest struct {
	Name            string  `json:"name"`
	Phone           string  `json:"phone"`
	BillingAddress  string  `json:"billing_address"`
	ShippingAddress string  `json:"shipping_address"`
	GSTIN           string  `json:"gstin"`
	OpeningBalance  float64 `json:"opening_balance"`
}

func (s *Server) CreateParty(c *gin.Context) {
	var req createPartyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	now := time.Now().UTC()
	party := partydomain.Party{
		ID:              s.genID.Generate(),
		Name:            strings.TrimSpace(req.Name),
		Phone:           strings.TrimSpace(req.Phone),
		BillingAddress:  req.BillingAddress,
		ShippingAddress: req.ShippingAddress,
		GSTIN:           strings.TrimSpace(req.GSTIN),
		OpeningBalance:  req.OpeningBalance,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.partyRepo.Insert(c.Request.Context(), s.db, &party); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": party})
}

func (s *Server) ListParties(c *gin.Context) {
	parties, err := s.partyRepo.List(c.Request.Context(), s.db, partydomain.ListPartyFilter{
		Name:  strings.TrimSpace(c.Query("name")),
		Phone: strings.TrimSpace(c.Query("phone")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": parties})
}

func (s *Server) GetParty(c *gin.Context) {
	id, err := snowflake.ParseString(strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	party, err := s.partyRepo.FindByID(c.Request.Context(), s.db, id)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	if party == nil {
		AbortWithError(c, partydomain.ErrNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": party})
}
