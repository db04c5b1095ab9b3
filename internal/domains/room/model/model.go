package model

import (
	"hostel/shared/model"
	"hostel/shared/sequence"
)

const (
	TableName  = "rooms"
	EntityName = "room"

	// CachePrefix covers every cached room view, beds included.
	CachePrefix = "room"

	FieldID         = "id"
	FieldRoomNumber = "room_number"
	FieldFloor      = "floor"
	FieldCapacity   = "capacity"
)

var Sequence = sequence.Source{Prefix: "R", Table: TableName, Column: FieldID}

type Room struct {
	ID         string `db:"id"`
	RoomNumber string `db:"room_number"`
	Floor      int    `db:"floor"`
	Capacity   int    `db:"capacity"`
	model.Metadata
}
