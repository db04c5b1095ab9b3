package dto

import (
	"hostel/internal/domains/notification/model"
	"hostel/shared"
	"hostel/shared/constant"
	gDto "hostel/shared/dto"
	"hostel/shared/timezone"

	"github.com/shopspring/decimal"
)

const QueryUnread = "unread"

type NotificationResponse struct {
	ID            string          `json:"id"`
	BookingID     string          `json:"booking_id"`
	Title         string          `json:"title"`
	Message       string          `json:"message"`
	IsRead        bool            `json:"is_read"`
	GuestFullName string          `json:"guest_full_name"`
	RoomNumber    string          `json:"room_number"`
	BedNumber     string          `json:"bed_number"`
	CheckInDate   string          `json:"check_in_date"`
	CheckOutDate  string          `json:"check_out_date"`
	TotalPrice    decimal.Decimal `json:"total_price"`
	CreatedAt     string          `json:"created_at"`
}

func (n *NotificationResponse) FromModel(model model.Notification) {
	n.ID = model.ID
	n.BookingID = model.BookingID
	n.Title = model.Title
	n.Message = model.Message
	n.IsRead = model.IsRead
	n.GuestFullName = model.GuestFullName
	n.RoomNumber = model.RoomNumber
	n.BedNumber = model.BedNumber
	n.CheckInDate = model.CheckInDate.Format(constant.DateOnlyFormat)
	n.CheckOutDate = model.CheckOutDate.Format(constant.DateOnlyFormat)
	n.TotalPrice = model.TotalPrice
	n.CreatedAt = timezone.Format(model.CreatedAt, constant.DateFormat)
}

type GetNotificationsResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
	TotalPage     int                    `json:"total_page"`
	TotalData     int                    `json:"total_data"`
}

func (r *GetNotificationsResponse) FromModels(models []model.Notification, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Notifications = make([]NotificationResponse, len(models))
	for i, mod := range models {
		r.Notifications[i].FromModel(mod)
	}
}

// UnreadFilter returns an empty group when unread is false so every notification matches.
func UnreadFilter(unread bool) gDto.FilterGroup {
	if !unread {
		return gDto.FilterGroup{}
	}

	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldIsRead,
				Operator: gDto.FilterOperatorEq,
				Value:    false,
				Table:    model.TableName,
			},
		},
	}
}
