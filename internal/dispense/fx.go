package dispense

import (
	"github.com/jetrefuels/fuelpos/internal/dispense/service"
	"go.uber.org/fx"
)

var Module = fx.Module("dispense.service",
	fx.Provide(service.NewService),
)
