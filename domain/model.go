package domain

import (
	"encoding/json"
	"io"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID           primitive.ObjectID `bson:"_id" json:"id"`
	AccountID    string             `bson:"accountId" json:"accountId"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`
	Role         Role               `bson:"role,omitempty" json:"role,omitempty"`
	Municipality string             `bson:"municipality,omitempty" json:"municipality,omitempty"`
}

type Role string

const (
	RoleUser       Role = "user"
	RoleAdmin      Role = "admin"
	RoleInspector  Role = "inspector"
	RoleSuperadmin Role = "superadmin"
)

const (
	MunicipalityBaler       = "Baler"
	MunicipalitySanLuis     = "San Luis"
	MunicipalityMariaAurora = "Maria Aurora"
	MunicipalityDipaculao   = "Dipaculao"
)

type Credentials struct {
	ID       primitive.ObjectID `bson:"_id" json:"id"`
	Email    string             `bson:"email" json:"email"`
	Password string             `bson:"password" json:"password"`
}

type Claims struct {
	SessionID    string    `json:"session_id"`
	AccountID    string    `json:"account_id"`
	Email        string    `json:"email"`
	Role         Role      `json:"role"`
	Municipality string    `json:"municipality,omitempty"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// Session is the minimal snapshot kept in the cache for route guarding.
// It is not origin-of-truth; the resolver refreshes it from the user store.
type Session struct {
	UserID       string `json:"userId"`
	Email        string `json:"email"`
	Role         Role   `json:"role"`
	Municipality string `json:"municipality,omitempty"`
}

type RegisterRequest struct {
	Name         string `json:"name" validate:"required,min=2,max=60"`
	Email        string `json:"email" validate:"required,email"`
	Password     string `json:"password" validate:"required,min=8"`
	Role         Role   `json:"role,omitempty"`
	Municipality string `json:"municipality,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SessionResolution is the resolver's answer for a signed-in identity:
// where the client should navigate, and the refreshed snapshot.
type SessionResolution struct {
	Route   string   `json:"route"`
	Session *Session `json:"session"`
}

func (u *User) FromJSON(r io.Reader) error {
	d := json.NewDecoder(r)
	return d.Decode(u)
}

func (u *User) ToJSON(w io.Writer) error {
	e := json.NewEncoder(w)
	return e.Encode(u)
}
