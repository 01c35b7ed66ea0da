package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFacilitiesFlattenDefaults(t *testing.T) {
	base := RecordBase{AccommodationID: "acc-1", Municipality: MunicipalityBaler, UserID: "user-1"}

	doc := FacilitiesSection{
		Amenities: map[string]AmenityGroup{
			"spa": {Checked: true, Capacity: 6, Price: 800},
		},
	}.Flatten(base)

	assert.Equal(t, "acc-1", doc["accommodationId"])
	assert.Equal(t, true, doc["spachecked"])
	assert.Equal(t, 6, doc["spacapacity"])
	assert.Equal(t, float64(800), doc["spaprice"])

	// Every amenity in the fixed set gets a field, checked or not.
	for _, name := range FacilityAmenities {
		assert.Contains(t, doc, name+"checked")
		assert.Contains(t, doc, name+"capacity")
		assert.Contains(t, doc, name+"price")
	}
	assert.Equal(t, false, doc["barchecked"])
}

func TestRoomsFlattenParallelArrays(t *testing.T) {
	section := RoomsSection{
		FanRooms: []RoomRow{
			{Type: "Standard", Capacity: 2, Rate: 600},
			{Type: "Dorm", Capacity: 10, Rate: 250},
		},
	}

	doc := section.Flatten(RecordBase{AccommodationID: "acc-1"})
	assert.Equal(t, []string{"Standard", "Dorm"}, doc["fanRoomType"])
	assert.Equal(t, []int{2, 10}, doc["fanRoomCapacity"])
	assert.Equal(t, []float64{600, 250}, doc["fanRoomRate"])
	assert.Empty(t, doc["acRoomType"])
}

func TestSectionEmptiness(t *testing.T) {
	assert.True(t, RoomsSection{}.Empty())
	assert.False(t, RoomsSection{ACRooms: []RoomRow{{}}}.Empty())

	assert.True(t, CottagesSection{}.Empty())
	assert.False(t, CottagesSection{Tents: []CottageRow{{}}}.Empty())
}

func TestServicesFlatten(t *testing.T) {
	doc := ServicesSection{
		Rentals: map[string]RentalGroup{
			"kayak": {Checked: true, Price: 150},
		},
		Parking:    GroundsGroup{Available: true, Capacity: 20},
		Promotions: "10% off on weekdays",
	}.Flatten(RecordBase{AccommodationID: "acc-1"})

	assert.Equal(t, true, doc["kayakchecked"])
	assert.Equal(t, float64(150), doc["kayakprice"])
	assert.Equal(t, false, doc["boatchecked"])
	assert.Equal(t, true, doc["parkingAvailable"])
	assert.Equal(t, 20, doc["parkingCapacity"])
	assert.Equal(t, "10% off on weekdays", doc["promotions"])
}
