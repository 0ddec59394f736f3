package employee

import (
	"github.com/jetrefuels/fuelpos/internal/employee/repository"
	"github.com/jetrefuels/fuelpos/internal/employee/service"
	"go.uber.org/fx"
)

var Module = fx.Module("employee.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
)
