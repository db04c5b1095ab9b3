package model

import (
	"hostel/shared/model"
	"hostel/shared/sequence"
	"slices"
)

const (
	TableName  = "beds"
	EntityName = "bed"

	FieldID         = "id"
	FieldBedNumber  = "bed_number"
	FieldRoomID     = "room_id"
	FieldRoomNumber = "room_number"
)

var (
	Sequence       = sequence.Source{Prefix: "B", Table: TableName, Column: FieldID}
	NumberSequence = sequence.Source{Prefix: "BN", Table: TableName, Column: FieldBedNumber}
)

type Bed struct {
	ID         string `db:"id"`
	BedNumber  string `db:"bed_number"`
	RoomID     string `db:"room_id"`
	RoomNumber string `db:"room_number" table:"rooms"`
	model.Metadata
}

func (Bed) GetJoinQuery() string {
	return "JOIN rooms ON rooms.id = beds.room_id"
}

// SortByNumber orders beds by the numeric part of their bed number.
func SortByNumber(beds []Bed) {
	slices.SortStableFunc(beds, func(a, b Bed) int {
		return sequence.Compare(NumberSequence.Prefix, a.BedNumber, b.BedNumber)
	})
}

// IDs returns the bed ids in slice order.
func IDs(beds []Bed) []string {
	ids := make([]string, len(beds))
	for i, bed := range beds {
		ids[i] = bed.ID
	}

	return ids
}
