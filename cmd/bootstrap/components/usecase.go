package components

import (
	"saulstari/internal/usecase"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	fx.Provide(
		usecase.NewAuthUseCase,
		usecase.NewMaterialsUseCase,
		usecase.NewTokenValidator,
	),
)
