package application

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.opentelemetry.io/otel/trace"

	"inspection_service/domain"
)

type UserService struct {
	store  domain.UserStore
	tracer trace.Tracer
}

func NewUserService(store domain.UserStore, tracer trace.Tracer) *UserService {
	return &UserService{
		store:  store,
		tracer: tracer,
	}
}

func (service *UserService) Get(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	ctx, span := service.tracer.Start(ctx, "UserService.Get")
	defer span.End()

	return service.store.Get(ctx, id)
}

func (service *UserService) GetByAccountID(ctx context.Context, accountID string) (*domain.User, error) {
	ctx, span := service.tracer.Start(ctx, "UserService.GetByAccountID")
	defer span.End()

	return service.store.GetByAccountID(ctx, accountID)
}

func (service *UserService) DoesEmailExist(ctx context.Context, email string) (string, error) {
	ctx, span := service.tracer.Start(ctx, "UserService.DoesEmailExist")
	defer span.End()

	user, err := service.store.GetByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	return user.ID.Hex(), nil
}

func (service *UserService) Update(ctx context.Context, user *domain.User) (*domain.User, error) {
	ctx, span := service.tracer.Start(ctx, "UserService.Update")
	defer span.End()

	return service.store.Update(ctx, user)
}
