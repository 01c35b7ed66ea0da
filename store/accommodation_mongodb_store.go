package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.opentelemetry.io/otel/trace"

	"inspection_service/domain"
)

// AccommodationMongoDBStore writes the six sibling collections of one
// submission. Every method is a single remote call; correlation between the
// collections is the caller's responsibility.
type AccommodationMongoDBStore struct {
	accommodations *mongo.Collection
	facilities     *mongo.Collection
	rooms          *mongo.Collection
	cottages       *mongo.Collection
	services       *mongo.Collection
	employees      *mongo.Collection
	tracer         trace.Tracer
}

func NewAccommodationMongoDBStore(client *mongo.Client, tracer trace.Tracer) domain.AccommodationStore {
	db := client.Database(Database)
	return &AccommodationMongoDBStore{
		accommodations: db.Collection(AccommodationsCollection),
		facilities:     db.Collection(FacilitiesCollection),
		rooms:          db.Collection(RoomsCollection),
		cottages:       db.Collection(CottagesCollection),
		services:       db.Collection(ServicesCollection),
		employees:      db.Collection(EmployeesCollection),
		tracer:         tracer,
	}
}

func (store *AccommodationMongoDBStore) InsertBasicInfo(ctx context.Context, accommodation *domain.Accommodation) (*domain.Accommodation, error) {
	ctx, span := store.tracer.Start(ctx, "AccommodationStore.InsertBasicInfo")
	defer span.End()

	accommodation.ID = primitive.NewObjectID()
	result, err := store.accommodations.InsertOne(ctx, accommodation)
	if err != nil {
		return nil, err
	}
	accommodation.ID = result.InsertedID.(primitive.ObjectID)
	return accommodation, nil
}

func (store *AccommodationMongoDBStore) InsertFacilities(ctx context.Context, doc map[string]interface{}) error {
	return store.insertSibling(ctx, "AccommodationStore.InsertFacilities", store.facilities, doc)
}

func (store *AccommodationMongoDBStore) InsertRooms(ctx context.Context, doc map[string]interface{}) error {
	return store.insertSibling(ctx, "AccommodationStore.InsertRooms", store.rooms, doc)
}

func (store *AccommodationMongoDBStore) InsertCottages(ctx context.Context, doc map[string]interface{}) error {
	return store.insertSibling(ctx, "AccommodationStore.InsertCottages", store.cottages, doc)
}

func (store *AccommodationMongoDBStore) InsertServices(ctx context.Context, doc map[string]interface{}) error {
	return store.insertSibling(ctx, "AccommodationStore.InsertServices", store.services, doc)
}

func (store *AccommodationMongoDBStore) InsertEmployees(ctx context.Context, doc map[string]interface{}) error {
	return store.insertSibling(ctx, "AccommodationStore.InsertEmployees", store.employees, doc)
}

func (store *AccommodationMongoDBStore) insertSibling(ctx context.Context, spanName string, collection *mongo.Collection, doc map[string]interface{}) error {
	ctx, span := store.tracer.Start(ctx, spanName)
	defer span.End()

	_, err := collection.InsertOne(ctx, bson.M(doc))
	return err
}

func (store *AccommodationMongoDBStore) GetByAccommodationID(ctx context.Context, accommodationID string) (*domain.Accommodation, error) {
	ctx, span := store.tracer.Start(ctx, "AccommodationStore.GetByAccommodationID")
	defer span.End()

	var accommodation *domain.Accommodation
	result := store.accommodations.FindOne(ctx, bson.M{"accommodationId": accommodationID})
	err := result.Decode(&accommodation)
	if err != nil {
		return nil, err
	}
	return accommodation, nil
}

func (store *AccommodationMongoDBStore) GetByMunicipality(ctx context.Context, municipality string) (domain.Accommodations, error) {
	ctx, span := store.tracer.Start(ctx, "AccommodationStore.GetByMunicipality")
	defer span.End()

	return store.filter(ctx, bson.M{"municipality": municipality})
}

func (store *AccommodationMongoDBStore) GetByOwner(ctx context.Context, userID string) (domain.Accommodations, error) {
	ctx, span := store.tracer.Start(ctx, "AccommodationStore.GetByOwner")
	defer span.End()

	return store.filter(ctx, bson.M{"userId": userID})
}

func (store *AccommodationMongoDBStore) ExistsByUser(ctx context.Context, userID string) (bool, error) {
	ctx, span := store.tracer.Start(ctx, "AccommodationStore.ExistsByUser")
	defer span.End()

	count, err := store.accommodations.CountDocuments(ctx, bson.M{"userId": userID})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (store *AccommodationMongoDBStore) UpdateStatus(ctx context.Context, accommodationID, status, declineReason string) error {
	ctx, span := store.tracer.Start(ctx, "AccommodationStore.UpdateStatus")
	defer span.End()

	filter := bson.M{"accommodationId": accommodationID}
	update := bson.M{"$set": bson.M{
		"status":        status,
		"declineReason": declineReason,
	}}

	result, err := store.accommodations.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("no accommodation with id %s", accommodationID)
	}
	return nil
}

func (store *AccommodationMongoDBStore) SetAppointment(ctx context.Context, accommodationID string, date time.Time, status string) error {
	ctx, span := store.tracer.Start(ctx, "AccommodationStore.SetAppointment")
	defer span.End()

	filter := bson.M{"accommodationId": accommodationID}
	update := bson.M{"$set": bson.M{
		"appointmentDate": date,
		"status":          status,
	}}

	result, err := store.accommodations.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("no accommodation with id %s", accommodationID)
	}
	return nil
}

func (store *AccommodationMongoDBStore) CountByStatus(ctx context.Context, municipality, status string) (int64, error) {
	ctx, span := store.tracer.Start(ctx, "AccommodationStore.CountByStatus")
	defer span.End()

	filter := bson.M{}
	if municipality != "" {
		filter["municipality"] = municipality
	}
	if status != "" {
		filter["status"] = status
	}
	return store.accommodations.CountDocuments(ctx, filter)
}

func (store *AccommodationMongoDBStore) filter(ctx context.Context, filter interface{}) (domain.Accommodations, error) {
	cursor, err := store.accommodations.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	return decodeAccommodations(ctx, cursor)
}

func decodeAccommodations(ctx context.Context, cursor *mongo.Cursor) (accommodations domain.Accommodations, err error) {
	for cursor.Next(ctx) {
		var accommodation domain.Accommodation
		err = cursor.Decode(&accommodation)
		if err != nil {
			return
		}
		accommodations = append(accommodations, &accommodation)
	}
	err = cursor.Err()
	return
}
