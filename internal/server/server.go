package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jetrefuels/fuelpos/internal/config"
	dispensedomain "github.com/jetrefuels/fuelpos/internal/dispense/domain"
	employeedomain "github.com/jetrefuels/fuelpos/internal/employee/domain"
	inventorydomain "github.com/jetrefuels/fuelpos/internal/inventory/domain"
	ledgerdomain "github.com/jetrefuels/fuelpos/internal/ledger/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Config    config.Config
	Log       *zap.Logger
	Employees employeedomain.Service
	Inventory inventorydomain.Service
	Ledger    ledgerdomain.Service
	Dispense  dispensedomain.Service
}

type Server struct {
	cfg       config.Config
	log       *zap.Logger
	engine    *gin.Engine
	employees employeedomain.Service
	inventory inventorydomain.Service
	ledger    ledgerdomain.Service
	dispense  dispensedomain.Service
}

func New(p Params) *Server {
	if p.Config.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		cfg:       p.Config,
		log:       p.Log.Named("server"),
		engine:    gin.New(),
		employees: p.Employees,
		inventory: p.Inventory,
		ledger:    p.Ledger,
		dispense:  p.Dispense,
	}
	s.engine.Use(gin.Recovery())
	s.registerRoutes()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) registerRoutes() {
	s.engine.GET("/health", s.health)
	s.engine.POST("/auth/login", s.login)

	api := s.engine.Group("/api")
	{
		api.GET("/grades", s.listGrades)
		api.POST("/dispense", s.dispenseFuel)
		api.GET("/reports/totals", s.reportTotals)
		api.GET("/transactions", s.listTransactions)
	}

	admin := s.engine.Group("/admin", s.requireAdmin)
	{
		admin.POST("/grades", s.createGrade)
		admin.PATCH("/grades/:name/price", s.setGradePrice)
		admin.PATCH("/grades/:name/stock", s.setGradeStock)
		admin.POST("/employees", s.createEmployee)
		admin.DELETE("/employees/:id", s.removeEmployee)
	}
}

var Module = fx.Module("server",
	fx.Provide(New),
	fx.Invoke(registerHooks),
)

func registerHooks(lc fx.Lifecycle, cfg config.Config, log *zap.Logger, srv *Server) {
	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				log.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
				if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("http server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return httpServer.Shutdown(ctx)
		},
	})
}
