package inventory

import (
	"github.com/jetrefuels/fuelpos/internal/inventory/repository"
	"github.com/jetrefuels/fuelpos/internal/inventory/service"
	"go.uber.org/fx"
)

var Module = fx.Module("inventory.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
)
