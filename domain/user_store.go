package domain

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserStore interface {
	Insert(ctx context.Context, user *User) (*User, error)
	Get(ctx context.Context, id primitive.ObjectID) (*User, error)
	GetByAccountID(ctx context.Context, accountID string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Update(ctx context.Context, user *User) (*User, error)
}

type CredentialsStore interface {
	Insert(ctx context.Context, credentials *Credentials) (*Credentials, error)
	GetByEmail(ctx context.Context, email string) (*Credentials, error)
}
