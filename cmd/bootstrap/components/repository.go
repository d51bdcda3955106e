package components

import (
	"hotel-reservations/internal/infra/gateway"
	repo_impl "hotel-reservations/internal/infra/repository"
	"hotel-reservations/internal/usecase"

	"go.uber.org/fx"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		repo_impl.NewCustomerRepository,
		repo_impl.NewRoomRepository,
		repo_impl.NewBlockRepository,
		repo_impl.NewTransactionRepository,
		repo_impl.NewNotificationRepository,
		fx.Annotate(
			repo_impl.NewReservationRepository,
			fx.As(new(usecase.ReservationStore)),
		),
		gateway.NewPaymentSimulator,
		fx.Annotate(
			gateway.NewLocalGateway,
			fx.As(new(usecase.ServiceGateway)),
		),
	),
)
