package domain

import (
	"context"
	"time"
)

// AccommodationStore persists the six sibling record types of one
// submission. Each Insert* call is one independent remote write; there is
// no transaction spanning them.
type AccommodationStore interface {
	InsertBasicInfo(ctx context.Context, accommodation *Accommodation) (*Accommodation, error)
	InsertFacilities(ctx context.Context, doc map[string]interface{}) error
	InsertRooms(ctx context.Context, doc map[string]interface{}) error
	InsertCottages(ctx context.Context, doc map[string]interface{}) error
	InsertServices(ctx context.Context, doc map[string]interface{}) error
	InsertEmployees(ctx context.Context, doc map[string]interface{}) error

	GetByAccommodationID(ctx context.Context, accommodationID string) (*Accommodation, error)
	GetByMunicipality(ctx context.Context, municipality string) (Accommodations, error)
	GetByOwner(ctx context.Context, userID string) (Accommodations, error)
	ExistsByUser(ctx context.Context, userID string) (bool, error)

	UpdateStatus(ctx context.Context, accommodationID, status, declineReason string) error
	SetAppointment(ctx context.Context, accommodationID string, date time.Time, status string) error

	CountByStatus(ctx context.Context, municipality, status string) (int64, error)
}
