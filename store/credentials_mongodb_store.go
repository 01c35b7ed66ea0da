package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.opentelemetry.io/otel/trace"

	"inspection_service/domain"
)

type CredentialsMongoDBStore struct {
	credentials *mongo.Collection
	tracer      trace.Tracer
}

func NewCredentialsMongoDBStore(client *mongo.Client, tracer trace.Tracer) domain.CredentialsStore {
	credentials := client.Database(Database).Collection(CredentialsCollection)
	return &CredentialsMongoDBStore{
		credentials: credentials,
		tracer:      tracer,
	}
}

func (store *CredentialsMongoDBStore) Insert(ctx context.Context, credentials *domain.Credentials) (*domain.Credentials, error) {
	ctx, span := store.tracer.Start(ctx, "CredentialsStore.Insert")
	defer span.End()

	credentials.ID = primitive.NewObjectID()
	result, err := store.credentials.InsertOne(ctx, credentials)
	if err != nil {
		return nil, err
	}
	credentials.ID = result.InsertedID.(primitive.ObjectID)
	return credentials, nil
}

func (store *CredentialsMongoDBStore) GetByEmail(ctx context.Context, email string) (*domain.Credentials, error) {
	ctx, span := store.tracer.Start(ctx, "CredentialsStore.GetByEmail")
	defer span.End()

	var credentials *domain.Credentials
	result := store.credentials.FindOne(ctx, bson.M{"email": email})
	err := result.Decode(&credentials)
	if err != nil {
		return nil, err
	}
	return credentials, nil
}
