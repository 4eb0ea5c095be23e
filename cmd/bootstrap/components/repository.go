package components

import (
	"saulstari/internal/infra/repository"
	"saulstari/internal/pkg/clock"
	"saulstari/internal/usecase"

	"go.uber.org/fx"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		clock.NewRealClock,
		repository.NewMaterialsRepository,
		func(repo *repository.MaterialsRepository) usecase.MaterialsRepository {
			return repo
		},
	),
)
