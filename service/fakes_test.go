package application

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.opentelemetry.io/otel/trace"

	"inspection_service/domain"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func testTracer() trace.Tracer {
	return trace.NewNoopTracerProvider().Tracer("test")
}

// fakeAccommodationStore records every write so tests can assert both what
// was persisted and what was not.
type fakeAccommodationStore struct {
	basicInfos map[string]*domain.Accommodation
	siblings   map[string][]map[string]interface{}
	inserts    []string
	failOn     string

	statusUpdates      int
	appointmentUpdates int
}

func newFakeAccommodationStore() *fakeAccommodationStore {
	return &fakeAccommodationStore{
		basicInfos: map[string]*domain.Accommodation{},
		siblings:   map[string][]map[string]interface{}{},
	}
}

func (f *fakeAccommodationStore) InsertBasicInfo(ctx context.Context, accommodation *domain.Accommodation) (*domain.Accommodation, error) {
	if f.failOn == "basicInfo" {
		return nil, fmt.Errorf("write failed")
	}
	accommodation.ID = primitive.NewObjectID()
	copied := *accommodation
	f.basicInfos[accommodation.AccommodationID] = &copied
	f.inserts = append(f.inserts, "basicInfo")
	return accommodation, nil
}

func (f *fakeAccommodationStore) insertSibling(name string, doc map[string]interface{}) error {
	if f.failOn == name {
		return fmt.Errorf("write failed")
	}
	f.siblings[name] = append(f.siblings[name], doc)
	f.inserts = append(f.inserts, name)
	return nil
}

func (f *fakeAccommodationStore) InsertFacilities(ctx context.Context, doc map[string]interface{}) error {
	return f.insertSibling("facilities", doc)
}

func (f *fakeAccommodationStore) InsertRooms(ctx context.Context, doc map[string]interface{}) error {
	return f.insertSibling("rooms", doc)
}

func (f *fakeAccommodationStore) InsertCottages(ctx context.Context, doc map[string]interface{}) error {
	return f.insertSibling("cottages", doc)
}

func (f *fakeAccommodationStore) InsertServices(ctx context.Context, doc map[string]interface{}) error {
	return f.insertSibling("services", doc)
}

func (f *fakeAccommodationStore) InsertEmployees(ctx context.Context, doc map[string]interface{}) error {
	return f.insertSibling("employees", doc)
}

func (f *fakeAccommodationStore) GetByAccommodationID(ctx context.Context, accommodationID string) (*domain.Accommodation, error) {
	accommodation, ok := f.basicInfos[accommodationID]
	if !ok {
		return nil, fmt.Errorf("not found")
	}
	copied := *accommodation
	return &copied, nil
}

func (f *fakeAccommodationStore) GetByMunicipality(ctx context.Context, municipality string) (domain.Accommodations, error) {
	var result domain.Accommodations
	for _, accommodation := range f.basicInfos {
		if accommodation.Municipality == municipality {
			result = append(result, accommodation)
		}
	}
	return result, nil
}

func (f *fakeAccommodationStore) GetByOwner(ctx context.Context, userID string) (domain.Accommodations, error) {
	var result domain.Accommodations
	for _, accommodation := range f.basicInfos {
		if accommodation.UserID == userID {
			result = append(result, accommodation)
		}
	}
	return result, nil
}

func (f *fakeAccommodationStore) ExistsByUser(ctx context.Context, userID string) (bool, error) {
	if f.failOn == "exists" {
		return false, fmt.Errorf("backend failure")
	}
	for _, accommodation := range f.basicInfos {
		if accommodation.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeAccommodationStore) UpdateStatus(ctx context.Context, accommodationID, status, declineReason string) error {
	accommodation, ok := f.basicInfos[accommodationID]
	if !ok {
		return fmt.Errorf("not found")
	}
	accommodation.Status = status
	accommodation.DeclineReason = declineReason
	f.statusUpdates++
	return nil
}

func (f *fakeAccommodationStore) SetAppointment(ctx context.Context, accommodationID string, date time.Time, status string) error {
	accommodation, ok := f.basicInfos[accommodationID]
	if !ok {
		return fmt.Errorf("not found")
	}
	accommodation.AppointmentDate = &date
	accommodation.Status = status
	f.appointmentUpdates++
	return nil
}

func (f *fakeAccommodationStore) CountByStatus(ctx context.Context, municipality, status string) (int64, error) {
	var count int64
	for _, accommodation := range f.basicInfos {
		if municipality != "" && accommodation.Municipality != municipality {
			continue
		}
		if status != "" && accommodation.Status != status {
			continue
		}
		count++
	}
	return count, nil
}

type fakeUserStore struct {
	users map[string]*domain.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[string]*domain.User{}}
}

func (f *fakeUserStore) Insert(ctx context.Context, user *domain.User) (*domain.User, error) {
	user.ID = primitive.NewObjectID()
	f.users[user.AccountID] = user
	return user, nil
}

func (f *fakeUserStore) Get(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	for _, user := range f.users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, fmt.Errorf("not found")
}

func (f *fakeUserStore) GetByAccountID(ctx context.Context, accountID string) (*domain.User, error) {
	user, ok := f.users[accountID]
	if !ok {
		return nil, fmt.Errorf("not found")
	}
	return user, nil
}

func (f *fakeUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, fmt.Errorf("not found")
}

func (f *fakeUserStore) Update(ctx context.Context, user *domain.User) (*domain.User, error) {
	f.users[user.AccountID] = user
	return user, nil
}

type fakeCredentialsStore struct {
	credentials map[string]*domain.Credentials
}

func newFakeCredentialsStore() *fakeCredentialsStore {
	return &fakeCredentialsStore{credentials: map[string]*domain.Credentials{}}
}

func (f *fakeCredentialsStore) Insert(ctx context.Context, credentials *domain.Credentials) (*domain.Credentials, error) {
	credentials.ID = primitive.NewObjectID()
	f.credentials[credentials.Email] = credentials
	return credentials, nil
}

func (f *fakeCredentialsStore) GetByEmail(ctx context.Context, email string) (*domain.Credentials, error) {
	credentials, ok := f.credentials[email]
	if !ok {
		return nil, fmt.Errorf("not found")
	}
	return credentials, nil
}

type fakeSessionCache struct {
	sessions map[string]*domain.Session
}

func newFakeSessionCache() *fakeSessionCache {
	return &fakeSessionCache{sessions: map[string]*domain.Session{}}
}

func (f *fakeSessionCache) PostSession(ctx context.Context, sessionID string, session *domain.Session) error {
	f.sessions[sessionID] = session
	return nil
}

func (f *fakeSessionCache) GetSession(ctx context.Context, sessionID string) (*domain.Session, error) {
	session, ok := f.sessions[sessionID]
	if !ok {
		return nil, fmt.Errorf("not found")
	}
	return session, nil
}

func (f *fakeSessionCache) DelSession(ctx context.Context, sessionID string) error {
	delete(f.sessions, sessionID)
	return nil
}
