package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	dispensedomain "github.com/jetrefuels/fuelpos/internal/dispense/domain"
	employeedomain "github.com/jetrefuels/fuelpos/internal/employee/domain"
	inventorydomain "github.com/jetrefuels/fuelpos/internal/inventory/domain"
	ledgerdomain "github.com/jetrefuels/fuelpos/internal/ledger/domain"
	"github.com/jetrefuels/fuelpos/internal/money"
	"go.uber.org/zap"
)

var badRequestErrs = []error{
	dispensedomain.ErrInvalidAmount,
	money.ErrInvalidPrice,
	inventorydomain.ErrInvalidGradeName,
	inventorydomain.ErrInvalidStock,
	employeedomain.ErrInvalidID,
	employeedomain.ErrInvalidName,
	employeedomain.ErrInvalidPassword,
	ledgerdomain.ErrInvalidGroupBy,
}

// respondError translates domain outcomes into HTTP responses. The shapes
// here are part of the pump terminal protocol; changing a status code is a
// breaking change for the terminals.
func (s *Server) respondError(c *gin.Context, err error) {
	var stockErr *dispensedomain.InsufficientStockError
	if errors.As(err, &stockErr) {
		c.JSON(http.StatusConflict, gin.H{
			"error":            "insufficient_stock",
			"grade":            stockErr.Grade,
			"requested_liters": stockErr.RequestedLiters.StringFixed(money.VolumeScale),
			"available_liters": stockErr.AvailableLiters.StringFixed(money.VolumeScale),
		})
		return
	}

	for _, sentinel := range badRequestErrs {
		if errors.Is(err, sentinel) {
			c.JSON(http.StatusBadRequest, gin.H{"error": sentinel.Error()})
			return
		}
	}

	switch {
	case errors.Is(err, employeedomain.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_credentials"})
	case errors.Is(err, inventorydomain.ErrUnknownGrade):
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown_grade"})
	case errors.Is(err, employeedomain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "employee_not_found"})
	case errors.Is(err, inventorydomain.ErrGradeExists):
		c.JSON(http.StatusConflict, gin.H{"error": "grade_exists"})
	case errors.Is(err, employeedomain.ErrAlreadyExists):
		c.JSON(http.StatusConflict, gin.H{"error": "employee_exists"})
	case errors.Is(err, dispensedomain.ErrInsufficientStock):
		c.JSON(http.StatusConflict, gin.H{"error": "insufficient_stock"})
	case errors.Is(err, dispensedomain.ErrStorage):
		s.log.Error("storage failure", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "storage_failure"})
	case errors.Is(err, dispensedomain.ErrInternalConsistency):
		s.log.Error("internal consistency violation", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
	default:
		s.log.Error("unhandled error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
	}
}
