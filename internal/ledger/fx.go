package ledger

import (
	"github.com/jetrefuels/fuelpos/internal/ledger/repository"
	"github.com/jetrefuels/fuelpos/internal/ledger/service"
	"go.uber.org/fx"
)

var Module = fx.Module("ledger.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
)
