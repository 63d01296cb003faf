package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	catalogdomain "github.com/smallbiznis/bahikhata/internal/catalog/domain"
	documentdomain "github.com/smallbiznis/bahikhata/internal/document/domain"
	partydomain "github.com/smallbiznis/bahikhata/internal/party/domain"
	taxratedomain "github.com/smallbiznis/bahikhata/internal/taxrate/domain"
	"gorm.io/gorm"
)

type errorPayload struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

var (
	ErrInvalidRequest     = errors.New("invalid_request")
	ErrNotFound           = errors.New("not_found")
	ErrServiceUnavailable = errors.New("service_unavailable")
)

// AbortWithError maps a domain error onto the single-message response
// the editor shows as one toast. Validation failures come back 400 with
// the field context intact; persistence failures distinguish "server
// rejected" (409/500) from "no response" (503).
func AbortWithError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	typ := "internal_error"

	var invalidLine *documentdomain.InvalidLineError
	switch {
	case errors.Is(err, ErrInvalidRequest),
		errors.Is(err, documentdomain.ErrMissingParty),
		errors.Is(err, documentdomain.ErrNoValidLines),
		errors.Is(err, documentdomain.ErrInvalidType),
		errors.As(err, &invalidLine),
		errors.Is(err, taxratedomain.ErrInvalidLabel),
		errors.Is(err, taxratedomain.ErrInvalidRate),
		errors.Is(err, catalogdomain.ErrInvalidName),
		errors.Is(err, catalogdomain.ErrInvalidPrice),
		errors.Is(err, partydomain.ErrInvalidName):
		status = http.StatusBadRequest
		typ = "validation_failure"
	case errors.Is(err, ErrNotFound),
		errors.Is(err, documentdomain.ErrNotFound),
		errors.Is(err, catalogdomain.ErrNotFound),
		errors.Is(err, partydomain.ErrNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		status = http.StatusNotFound
		typ = "not_found"
	case errors.Is(err, documentdomain.ErrDuplicateNumber),
		errors.Is(err, gorm.ErrDuplicatedKey):
		status = http.StatusConflict
		typ = "conflict"
	case errors.Is(err, ErrServiceUnavailable):
		status = http.StatusServiceUnavailable
		typ = "no_response"
	}

	c.AbortWithStatusJSON(status, errorResponse{Error: errorPayload{
		Type:    typ,
		Message: err.Error(),
	}})
}

func invalidRequestError() error {
	return ErrInvalidRequest
}
