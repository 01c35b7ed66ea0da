package domain

import (
	"encoding/json"
	"io"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Accommodation is the basic-info record of one establishment submission.
// The five sibling records (facilities, rooms, cottages, services, employees)
// share its AccommodationID; nothing in the store enforces that link.
type Accommodation struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	AccommodationID   string             `bson:"accommodationId" json:"accommodationId"`
	Municipality      string             `bson:"municipality" json:"municipality"`
	EstablishmentName string             `bson:"establishmentName" json:"establishmentName"`
	OwnerName         string             `bson:"ownerName,omitempty" json:"ownerName,omitempty"`
	ContactNumber     string             `bson:"contactNumber,omitempty" json:"contactNumber,omitempty"`
	Email             string             `bson:"email" json:"email"`
	Website           string             `bson:"website,omitempty" json:"website,omitempty"`
	Address           string             `bson:"address,omitempty" json:"address,omitempty"`
	BusinessPermitNo  string             `bson:"businessPermitNo,omitempty" json:"businessPermitNo,omitempty"`
	AccreditationNo   string             `bson:"accreditationNo,omitempty" json:"accreditationNo,omitempty"`
	Status            string             `bson:"status" json:"status"`
	AppointmentDate   *time.Time         `bson:"appointmentDate,omitempty" json:"appointmentDate,omitempty"`
	DeclineReason     string             `bson:"declineReason" json:"declineReason"`
	UserID            string             `bson:"userId" json:"userId"`
	CreatedAt         time.Time          `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
}

// Status literals. "Pending" is what creation always writes; "pending" is a
// distinct legacy literal some records carry and is kept transitionable.
const (
	StatusPending            = "Pending"
	StatusPendingLegacy      = "pending"
	StatusApproved           = "approved"
	StatusDeclined           = "declined"
	StatusApprovedAttachment = "ApprovedAttachment"
)

type Accommodations []*Accommodation

// RecordBase carries the fields every sibling record repeats.
type RecordBase struct {
	AccommodationID string
	Municipality    string
	UserID          string
}

func (b RecordBase) fields() map[string]interface{} {
	return map[string]interface{}{
		"accommodationId": b.AccommodationID,
		"municipality":    b.Municipality,
		"userId":          b.UserID,
	}
}

// FacilityAmenities fixes the flattened field names of the facilities record:
// each amenity becomes <name>checked, <name>capacity and <name>price.
var FacilityAmenities = []string{
	"restaurant",
	"bar",
	"pavilion",
	"functionHall",
	"conferenceHall",
	"videokeRoom",
	"adultPool",
	"kiddiePool",
	"spa",
	"giftShop",
}

type AmenityGroup struct {
	Checked  bool    `json:"checked"`
	Capacity int     `json:"capacity"`
	Price    float64 `json:"price"`
}

type FacilitiesSection struct {
	Amenities map[string]AmenityGroup `json:"amenities"`
}

// Flatten widens the per-amenity groups into one flat record. Amenities
// missing from the form default to false/0.
func (s FacilitiesSection) Flatten(base RecordBase) map[string]interface{} {
	doc := base.fields()
	for _, name := range FacilityAmenities {
		group := s.Amenities[name]
		doc[name+"checked"] = group.Checked
		doc[name+"capacity"] = group.Capacity
		doc[name+"price"] = group.Price
	}
	return doc
}

type RoomRow struct {
	Type     string  `json:"type"`
	Capacity int     `json:"capacity"`
	Rate     float64 `json:"rate"`
}

type RoomsSection struct {
	ACRooms  []RoomRow `json:"acRooms"`
	FanRooms []RoomRow `json:"fanRooms"`
}

func (s RoomsSection) Empty() bool {
	return len(s.ACRooms) == 0 && len(s.FanRooms) == 0
}

// Flatten encodes each room category as parallel same-length arrays.
func (s RoomsSection) Flatten(base RecordBase) map[string]interface{} {
	doc := base.fields()
	acType, acCapacity, acRate := splitRoomRows(s.ACRooms)
	fanType, fanCapacity, fanRate := splitRoomRows(s.FanRooms)
	doc["acRoomType"] = acType
	doc["acRoomCapacity"] = acCapacity
	doc["acRoomRate"] = acRate
	doc["fanRoomType"] = fanType
	doc["fanRoomCapacity"] = fanCapacity
	doc["fanRoomRate"] = fanRate
	return doc
}

func splitRoomRows(rows []RoomRow) ([]string, []int, []float64) {
	types := make([]string, 0, len(rows))
	capacities := make([]int, 0, len(rows))
	rates := make([]float64, 0, len(rows))
	for _, row := range rows {
		types = append(types, row.Type)
		capacities = append(capacities, row.Capacity)
		rates = append(rates, row.Rate)
	}
	return types, capacities, rates
}

type CottageRow struct {
	Capacity int     `json:"capacity"`
	Rate     float64 `json:"rate"`
}

type CottagesSection struct {
	ACCottages    []CottageRow `json:"acCottages"`
	NonACCottages []CottageRow `json:"nonAcCottages"`
	Tents         []CottageRow `json:"tents"`
}

func (s CottagesSection) Empty() bool {
	return len(s.ACCottages) == 0 && len(s.NonACCottages) == 0 && len(s.Tents) == 0
}

func (s CottagesSection) Flatten(base RecordBase) map[string]interface{} {
	doc := base.fields()
	acCapacity, acRate := splitCottageRows(s.ACCottages)
	nonAcCapacity, nonAcRate := splitCottageRows(s.NonACCottages)
	tentCapacity, tentRate := splitCottageRows(s.Tents)
	doc["acCottageCapacity"] = acCapacity
	doc["acCottageRate"] = acRate
	doc["nonAcCottageCapacity"] = nonAcCapacity
	doc["nonAcCottageRate"] = nonAcRate
	doc["tentCapacity"] = tentCapacity
	doc["tentRate"] = tentRate
	return doc
}

func splitCottageRows(rows []CottageRow) ([]int, []float64) {
	capacities := make([]int, 0, len(rows))
	rates := make([]float64, 0, len(rows))
	for _, row := range rows {
		capacities = append(capacities, row.Capacity)
		rates = append(rates, row.Rate)
	}
	return capacities, rates
}

var (
	// RentalItems and CommonAreas fix the flattened field names of the
	// services record the same way FacilityAmenities does.
	RentalItems = []string{"boat", "kayak", "lifeVest", "snorkelSet", "surfboard", "bicycle"}
	CommonAreas = []string{"kitchen", "diningArea", "showerRoom", "lockerRoom"}
)

type RentalGroup struct {
	Checked bool    `json:"checked"`
	Price   float64 `json:"price"`
}

type CommonAreaGroup struct {
	Checked  bool `json:"checked"`
	Capacity int  `json:"capacity"`
}

type GroundsGroup struct {
	Available bool `json:"available"`
	Capacity  int  `json:"capacity"`
}

type ServicesSection struct {
	Rentals     map[string]RentalGroup     `json:"rentals"`
	CommonAreas map[string]CommonAreaGroup `json:"commonAreas"`
	Parking     GroundsGroup               `json:"parking"`
	Campsite    GroundsGroup               `json:"campsite"`
	Promotions  string                     `json:"promotions"`
	Discounts   string                     `json:"discounts"`
}

func (s ServicesSection) Flatten(base RecordBase) map[string]interface{} {
	doc := base.fields()
	for _, name := range RentalItems {
		group := s.Rentals[name]
		doc[name+"checked"] = group.Checked
		doc[name+"price"] = group.Price
	}
	for _, name := range CommonAreas {
		group := s.CommonAreas[name]
		doc[name+"checked"] = group.Checked
		doc[name+"capacity"] = group.Capacity
	}
	doc["parkingAvailable"] = s.Parking.Available
	doc["parkingCapacity"] = s.Parking.Capacity
	doc["campsiteAvailable"] = s.Campsite.Available
	doc["campsiteCapacity"] = s.Campsite.Capacity
	doc["promotions"] = s.Promotions
	doc["discounts"] = s.Discounts
	return doc
}

type EmployeesSection struct {
	Male    int `json:"male"`
	Female  int `json:"female"`
	Local   int `json:"local"`
	Foreign int `json:"foreign"`
}

func (s EmployeesSection) Flatten(base RecordBase) map[string]interface{} {
	doc := base.fields()
	doc["maleEmployees"] = s.Male
	doc["femaleEmployees"] = s.Female
	doc["localEmployees"] = s.Local
	doc["foreignEmployees"] = s.Foreign
	return doc
}

// SubmissionForm is the six-tab wizard's shared form state, submitted whole.
type SubmissionForm struct {
	BasicInfo  Accommodation     `json:"basicInfo"`
	Facilities FacilitiesSection `json:"facilities"`
	Rooms      RoomsSection      `json:"rooms"`
	Cottages   CottagesSection   `json:"cottages"`
	Services   ServicesSection   `json:"services"`
	Employees  EmployeesSection  `json:"employees"`
}

func (f *SubmissionForm) FromJSON(r io.Reader) error {
	d := json.NewDecoder(r)
	return d.Decode(f)
}

func (o *Accommodation) ToJSON(w io.Writer) error {
	e := json.NewEncoder(w)
	return e.Encode(o)
}

func (o Accommodations) ToJSON(w io.Writer) error {
	e := json.NewEncoder(w)
	return e.Encode(o)
}

// ReportSummary backs the admin/superadmin charts: plain counts, no logic.
type ReportSummary struct {
	Total           int64                       `json:"total"`
	ByStatus        map[string]int64            `json:"byStatus"`
	ByMunicipality  map[string]map[string]int64 `json:"byMunicipality"`
	PendingOverall  int64                       `json:"pendingOverall"`
	ApprovedOverall int64                       `json:"approvedOverall"`
	DeclinedOverall int64                       `json:"declinedOverall"`
}
