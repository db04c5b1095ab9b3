package model

import (
	"hostel/shared/model"
	"hostel/shared/sequence"
	"time"
)

const (
	TableName  = "guests"
	EntityName = "guest"

	FieldID          = "id"
	FieldFirstName   = "first_name"
	FieldLastName    = "last_name"
	FieldEmail       = "email"
	FieldPhone       = "phone"
	FieldDateOfBirth = "date_of_birth"
	FieldRoomID      = "room_id"
	FieldBedID       = "bed_id"
)

var Sequence = sequence.Source{Prefix: "C", Table: TableName, Column: FieldID}

// Guest is a person who stays, or stayed, in the hostel. RoomID and BedID hold the current
// assignment and are nil when the guest has none.
type Guest struct {
	ID          string    `db:"id"`
	FirstName   string    `db:"first_name"`
	LastName    string    `db:"last_name"`
	Email       string    `db:"email"`
	Phone       string    `db:"phone"`
	DateOfBirth time.Time `db:"date_of_birth"`
	RoomID      *string   `db:"room_id"`
	BedID       *string   `db:"bed_id"`
	RoomNumber  *string   `db:"room_number" table:"rooms"`
	BedNumber   *string   `db:"bed_number"  table:"beds"`
	model.Metadata
}

func (Guest) GetJoinQuery() string {
	return "LEFT JOIN rooms ON rooms.id = guests.room_id LEFT JOIN beds ON beds.id = guests.bed_id"
}

func (g Guest) FullName() string {
	return g.FirstName + " " + g.LastName
}

// Assign points the guest at a room and bed.
func (g *Guest) Assign(roomID, roomNumber, bedID, bedNumber string) {
	g.RoomID = &roomID
	g.RoomNumber = &roomNumber
	g.BedID = &bedID
	g.BedNumber = &bedNumber
}

// FreeBedFilter matches beds that no guest is currently assigned to. It is meant for the beds table.
const FreeBedFilter = "NOT EXISTS (SELECT 1 FROM guests WHERE guests.bed_id = beds.id)"
