package server

import (
	"crypto/subtle"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	dispensedomain "github.com/jetrefuels/fuelpos/internal/dispense/domain"
	employeedomain "github.com/jetrefuels/fuelpos/internal/employee/domain"
	inventorydomain "github.com/jetrefuels/fuelpos/internal/inventory/domain"
	ledgerdomain "github.com/jetrefuels/fuelpos/internal/ledger/domain"
	"github.com/jetrefuels/fuelpos/internal/invoice"
	"github.com/jetrefuels/fuelpos/internal/money"
	"github.com/shopspring/decimal"
)

const adminTokenHeader = "X-Admin-Token"

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": s.cfg.AppName,
		"version": s.cfg.AppVersion,
	})
}

type loginRequest struct {
	EmployeeID int64  `json:"employee_id" binding:"required"`
	Password   string `json:"password" binding:"required"`
}

func (s *Server) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}

	employee, err := s.employees.Authenticate(c.Request.Context(), req.EmployeeID, req.Password)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"employee_id": employee.ID,
		"name":        employee.Name,
	})
}

type gradeView struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	UnitPrice   string `json:"unit_price"`
	StockLiters string `json:"stock_liters"`
}

func toGradeView(g inventorydomain.FuelGrade) gradeView {
	return gradeView{
		Name:        g.Name,
		DisplayName: g.DisplayName,
		UnitPrice:   g.UnitPrice.StringFixed(money.CurrencyScale),
		StockLiters: g.StockLiters.StringFixed(money.VolumeScale),
	}
}

func (s *Server) listGrades(c *gin.Context) {
	grades, err := s.inventory.List(c.Request.Context())
	if err != nil {
		s.respondError(c, err)
		return
	}
	views := make([]gradeView, 0, len(grades))
	for _, g := range grades {
		views = append(views, toGradeView(g))
	}
	c.JSON(http.StatusOK, gin.H{"grades": views})
}

type dispenseRequest struct {
	EmployeeID int64           `json:"employee_id" binding:"required"`
	Password   string          `json:"password" binding:"required"`
	Grade      string          `json:"grade" binding:"required"`
	Amount     decimal.Decimal `json:"amount"`
}

func (s *Server) dispenseFuel(c *gin.Context) {
	var req dispenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}
	ctx := c.Request.Context()

	employee, err := s.employees.Authenticate(ctx, req.EmployeeID, req.Password)
	if err != nil {
		s.respondError(c, err)
		return
	}

	result, err := s.dispense.Dispense(ctx, dispensedomain.DispenseRequest{
		EmployeeID: employee.ID,
		GradeName:  req.Grade,
		Amount:     req.Amount,
	})
	if err != nil {
		s.respondError(c, err)
		return
	}

	view, err := invoice.FromResult(s.cfg.CompanyName, result)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"invoice": view,
		"receipt": view.Text(),
	})
}

func (s *Server) reportTotals(c *gin.Context) {
	groupBy := ledgerdomain.GroupBy(c.DefaultQuery("group_by", string(ledgerdomain.GroupByGrade)))
	rows, err := s.ledger.Totals(c.Request.Context(), groupBy)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"group_by": groupBy,
		"totals":   rows,
	})
}

func (s *Server) listTransactions(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	records, err := s.ledger.List(c.Request.Context(), limit, offset)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"transactions": records})
}

func (s *Server) requireAdmin(c *gin.Context) {
	if s.cfg.AdminToken == "" {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin_disabled"})
		return
	}
	token := c.GetHeader(adminTokenHeader)
	if subtle.ConstantTimeCompare([]byte(token), []byte(s.cfg.AdminToken)) != 1 {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_admin_token"})
		return
	}
	c.Next()
}

type createGradeRequest struct {
	Name        string          `json:"name" binding:"required"`
	DisplayName string          `json:"display_name"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	StockLiters decimal.Decimal `json:"stock_liters"`
}

func (s *Server) createGrade(c *gin.Context) {
	var req createGradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}

	grade, err := s.inventory.Create(c.Request.Context(), inventorydomain.CreateGradeRequest{
		Name:        req.Name,
		DisplayName: req.DisplayName,
		UnitPrice:   req.UnitPrice,
		StockLiters: req.StockLiters,
	})
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toGradeView(*grade))
}

type setPriceRequest struct {
	UnitPrice decimal.Decimal `json:"unit_price"`
}

func (s *Server) setGradePrice(c *gin.Context) {
	var req setPriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}

	grade, err := s.inventory.SetPrice(c.Request.Context(), c.Param("name"), req.UnitPrice)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toGradeView(*grade))
}

type setStockRequest struct {
	StockLiters decimal.Decimal `json:"stock_liters"`
}

func (s *Server) setGradeStock(c *gin.Context) {
	var req setStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}

	grade, err := s.inventory.SetStock(c.Request.Context(), c.Param("name"), req.StockLiters)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toGradeView(*grade))
}

type createEmployeeRequest struct {
	ID       int64  `json:"id" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (s *Server) createEmployee(c *gin.Context) {
	var req createEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}

	employee, err := s.employees.Create(c.Request.Context(), employeedomain.CreateEmployeeRequest{
		ID:       req.ID,
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"employee_id": employee.ID,
		"name":        employee.Name,
	})
}

func (s *Server) removeEmployee(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_employee_id"})
		return
	}
	if err := s.employees.Remove(c.Request.Context(), id); err != nil {
		s.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
