package dto

import (
	"hostel/internal/domains/guest/model"
	"hostel/shared"
	"hostel/shared/constant"
	gDto "hostel/shared/dto"
	gModel "hostel/shared/model"
	"hostel/shared/timezone"
	"strings"
)

type CreateGuestRequest struct {
	FirstName   string `json:"first_name"    validate:"required,max=100"`
	LastName    string `json:"last_name"     validate:"required,max=100"`
	Email       string `json:"email"         validate:"required,email,max=100"`
	Phone       string `json:"phone"         validate:"omitempty,max=20"`
	DateOfBirth string `json:"date_of_birth" validate:"required,date"`
	RoomNumber  string `json:"room_number"   validate:"required,max=20"`
}

// ToModel builds an unassigned guest. DateOfBirth must already have passed validation.
func (c *CreateGuestRequest) ToModel(id, user string) model.Guest {
	dateOfBirth, _ := timezone.ParseDate(c.DateOfBirth)

	return model.Guest{
		ID:          id,
		FirstName:   c.FirstName,
		LastName:    c.LastName,
		Email:       strings.ToLower(c.Email),
		Phone:       c.Phone,
		DateOfBirth: dateOfBirth,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateGuestRequest struct {
	FirstName   string `db:"first_name"    json:"first_name"    validate:"omitempty,max=100"`
	LastName    string `db:"last_name"     json:"last_name"     validate:"omitempty,max=100"`
	Email       string `db:"email"         json:"email"         validate:"omitempty,email,max=100"`
	Phone       string `db:"phone"         json:"phone"         validate:"omitempty,max=20"`
	DateOfBirth string `db:"date_of_birth" json:"date_of_birth" validate:"omitempty,date"`
	RoomNumber  string `json:"room_number" validate:"omitempty,max=20"`
}

type GuestResponse struct {
	ID           string  `json:"id"`
	FirstName    string  `json:"first_name"`
	LastName     string  `json:"last_name"`
	Email        string  `json:"email"`
	Phone        string  `json:"phone"`
	DateOfBirth  string  `json:"date_of_birth"`
	RegisteredAt string  `json:"registered_at"`
	RoomID       *string `json:"room_id"`
	RoomNumber   *string `json:"room_number"`
	BedID        *string `json:"bed_id"`
	BedNumber    *string `json:"bed_number"`
	gDto.Metadata
}

func (g *GuestResponse) FromModel(model model.Guest) {
	g.ID = model.ID
	g.FirstName = model.FirstName
	g.LastName = model.LastName
	g.Email = model.Email
	g.Phone = model.Phone
	g.DateOfBirth = model.DateOfBirth.Format(constant.DateOnlyFormat)
	g.RegisteredAt = timezone.Format(model.CreatedAt, constant.DateFormat)
	g.RoomID = model.RoomID
	g.RoomNumber = model.RoomNumber
	g.BedID = model.BedID
	g.BedNumber = model.BedNumber
	g.Metadata.FromModel(model.Metadata)
}

type GetGuestsResponse struct {
	Guests    []GuestResponse `json:"guests"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

func (r *GetGuestsResponse) FromModels(models []model.Guest, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Guests = make([]GuestResponse, len(models))
	for i, mod := range models {
		r.Guests[i].FromModel(mod)
	}
}
