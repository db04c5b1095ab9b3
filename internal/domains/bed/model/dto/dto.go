package dto

import (
	"hostel/internal/domains/bed/model"
	"hostel/shared"
	gDto "hostel/shared/dto"
)

type BedResponse struct {
	ID         string `json:"id"`
	BedNumber  string `json:"bed_number"`
	RoomID     string `json:"room_id"`
	RoomNumber string `json:"room_number"`
	gDto.Metadata
}

func (b *BedResponse) FromModel(model model.Bed) {
	b.ID = model.ID
	b.BedNumber = model.BedNumber
	b.RoomID = model.RoomID
	b.RoomNumber = model.RoomNumber
	b.Metadata.FromModel(model.Metadata)
}

type GetBedsResponse struct {
	Beds      []BedResponse `json:"beds"`
	TotalPage int           `json:"total_page"`
	TotalData int           `json:"total_data"`
}

func (r *GetBedsResponse) FromModels(models []model.Bed, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Beds = make([]BedResponse, len(models))
	for i, mod := range models {
		r.Beds[i].FromModel(mod)
	}
}
