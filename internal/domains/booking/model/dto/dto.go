package dto

import (
	"net/http"

	"hostel/internal/domains/booking/model"
	guestModel "hostel/internal/domains/guest/model"
	"hostel/shared"
	"hostel/shared/constant"
	gDto "hostel/shared/dto"
	"hostel/shared/failure"
	"hostel/shared/timezone"

	"github.com/shopspring/decimal"
)

const (
	QueryStatus      = "status"
	QueryCheckInFrom = "check_in_from"
	QueryCheckInTo   = "check_in_to"
	QueryFirstName   = "first_name"
	QueryLastName    = "last_name"
)

type BookingResponse struct {
	ID            string          `json:"id"`
	RoomID        string          `json:"room_id"`
	RoomNumber    string          `json:"room_number"`
	BedID         string          `json:"bed_id"`
	BedNumber     string          `json:"bed_number"`
	GuestID       string          `json:"guest_id"`
	GuestFullName string          `json:"guest_full_name"`
	GuestEmail    string          `json:"guest_email"`
	GuestPhone    string          `json:"guest_phone"`
	CheckInDate   string          `json:"check_in_date"`
	CheckOutDate  string          `json:"check_out_date"`
	Status        model.Status    `json:"status"`
	TotalPrice    decimal.Decimal `json:"total_price"`
	gDto.Metadata
}

func (b *BookingResponse) FromModel(model model.BookingDetail) {
	b.ID = model.ID
	b.RoomID = model.RoomID
	b.RoomNumber = model.RoomNumber
	b.BedID = model.BedID
	b.BedNumber = model.BedNumber
	b.GuestID = model.GuestID
	b.GuestFullName = model.GuestFullName()
	b.GuestEmail = model.GuestEmail
	b.GuestPhone = model.GuestPhone
	b.CheckInDate = model.CheckInDate.Format(constant.DateOnlyFormat)
	b.CheckOutDate = model.CheckOutDate.Format(constant.DateOnlyFormat)
	b.Status = model.Status
	b.TotalPrice = model.TotalPrice
	b.Metadata.FromModel(model.Metadata)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.BookingDetail, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}

// StatusCountsResponse maps each booking status to its number of bookings.
type StatusCountsResponse map[model.Status]int

// BookingFilter holds the optional list filters of the admin booking search.
type BookingFilter struct {
	Status      *model.Status
	CheckInFrom string
	CheckInTo   string
	FirstName   string
	LastName    string
}

// FromRequest reads the filters from the query string. An unknown status is an InvalidState
// failure and a malformed date a BadRequest one.
func (f *BookingFilter) FromRequest(r *http.Request) error {
	query := r.URL.Query()

	if value := query.Get(QueryStatus); value != constant.Empty {
		status, err := model.ParseStatus(value)
		if err != nil {
			return err
		}

		f.Status = &status
	}

	for name, target := range map[string]*string{QueryCheckInFrom: &f.CheckInFrom, QueryCheckInTo: &f.CheckInTo} {
		value := query.Get(name)
		if value == constant.Empty {
			continue
		}

		if _, err := timezone.ParseDate(value); err != nil {
			return failure.BadRequestFromString(name + " must be a date formatted as YYYY-MM-DD")
		}

		*target = value
	}

	f.FirstName = query.Get(QueryFirstName)
	f.LastName = query.Get(QueryLastName)

	return nil
}

func (f *BookingFilter) ToFilterGroup() gDto.FilterGroup {
	group := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}

	if f.Status != nil {
		group.Filters = append(group.Filters, gDto.Filter{
			Field:    model.FieldStatus,
			Operator: gDto.FilterOperatorEq,
			Value:    *f.Status,
			Table:    model.TableName,
		})
	}

	if f.CheckInFrom != constant.Empty {
		group.Filters = append(group.Filters, gDto.Filter{
			ArgName:  QueryCheckInFrom,
			Field:    model.FieldCheckInDate,
			Operator: gDto.FilterOperatorGreaterEq,
			Value:    f.CheckInFrom,
			Table:    model.TableName,
		})
	}

	if f.CheckInTo != constant.Empty {
		group.Filters = append(group.Filters, gDto.Filter{
			ArgName:  QueryCheckInTo,
			Field:    model.FieldCheckInDate,
			Operator: gDto.FilterOperatorLessEq,
			Value:    f.CheckInTo,
			Table:    model.TableName,
		})
	}

	if f.FirstName != constant.Empty {
		group.Filters = append(group.Filters, gDto.Filter{
			ArgName:  QueryFirstName,
			Field:    guestModel.FieldFirstName,
			Operator: gDto.FilterOperatorLike,
			Value:    f.FirstName,
			Table:    guestModel.TableName,
		})
	}

	if f.LastName != constant.Empty {
		group.Filters = append(group.Filters, gDto.Filter{
			ArgName:  QueryLastName,
			Field:    guestModel.FieldLastName,
			Operator: gDto.FilterOperatorLike,
			Value:    f.LastName,
			Table:    guestModel.TableName,
		})
	}

	return group
}
