package dto

import (
	bedModel "hostel/internal/domains/bed/model"
	"hostel/internal/domains/room/model"
	"hostel/shared"
	gDto "hostel/shared/dto"
	gModel "hostel/shared/model"
	"hostel/shared/timezone"
)

type CreateRoomRequest struct {
	RoomNumber string `json:"room_number" validate:"required,max=20"`
	Floor      int    `json:"floor"       validate:"omitempty,min=0"`
	Capacity   int    `json:"capacity"    validate:"required,min=1"`
	BedCount   int    `json:"bed_count"   validate:"omitempty,min=0"`
}

func (c *CreateRoomRequest) ToModel(id, user string) model.Room {
	return model.Room{
		ID:         id,
		RoomNumber: c.RoomNumber,
		Floor:      c.Floor,
		Capacity:   c.Capacity,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateRoomRequest struct {
	RoomNumber string `db:"room_number" json:"room_number" validate:"omitempty,max=20"`
	Floor      *int   `db:"floor"       json:"floor"       validate:"omitempty,min=0"`
	Capacity   *int   `db:"capacity"    json:"capacity"    validate:"omitempty,min=1"`
}

type RoomBed struct {
	ID        string `json:"id"`
	BedNumber string `json:"bed_number"`
}

type RoomResponse struct {
	ID         string    `json:"id"`
	RoomNumber string    `json:"room_number"`
	Floor      int       `json:"floor"`
	Capacity   int       `json:"capacity"`
	BedIDs     []string  `json:"bed_ids"`
	Beds       []RoomBed `json:"beds"`
	gDto.Metadata
}

// FromModel fills the response from a room and its beds, which must already be in bed-number order.
func (r *RoomResponse) FromModel(model model.Room, beds []bedModel.Bed) {
	r.ID = model.ID
	r.RoomNumber = model.RoomNumber
	r.Floor = model.Floor
	r.Capacity = model.Capacity
	r.Metadata.FromModel(model.Metadata)

	r.BedIDs = make([]string, len(beds))
	r.Beds = make([]RoomBed, len(beds))

	for i, bed := range beds {
		r.BedIDs[i] = bed.ID
		r.Beds[i] = RoomBed{ID: bed.ID, BedNumber: bed.BedNumber}
	}
}

type GetRoomsResponse struct {
	Rooms     []RoomResponse `json:"rooms"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetRoomsResponse) FromModels(models []model.Room, bedsByRoom map[string][]bedModel.Bed, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Rooms = make([]RoomResponse, len(models))
	for i, mod := range models {
		r.Rooms[i].FromModel(mod, bedsByRoom[mod.ID])
	}
}
