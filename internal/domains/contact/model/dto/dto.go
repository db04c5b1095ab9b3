package dto

import (
	"strings"
	"time"

	"hostel/internal/domains/contact/model"
	"hostel/shared"
	"hostel/shared/constant"
	gDto "hostel/shared/dto"
	"hostel/shared/timezone"
)

const QueryUnread = "unread"

type SubmitContactRequest struct {
	Name    string `json:"name"    validate:"required,max=100"`
	Email   string `json:"email"   validate:"required,email"`
	Message string `json:"message" validate:"required,max=2000"`
}

func (r *SubmitContactRequest) ToModel(id string, sentAt time.Time) model.ContactMessage {
	return model.ContactMessage{
		ID:      id,
		Name:    strings.TrimSpace(r.Name),
		Email:   strings.ToLower(r.Email),
		Message: r.Message,
		SentAt:  sentAt,
	}
}

type ContactMessageResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
	IsRead  bool   `json:"is_read"`
	SentAt  string `json:"sent_at"`
}

func (c *ContactMessageResponse) FromModel(model model.ContactMessage) {
	c.ID = model.ID
	c.Name = model.Name
	c.Email = model.Email
	c.Message = model.Message
	c.IsRead = model.IsRead
	c.SentAt = timezone.Format(model.SentAt, constant.DateFormat)
}

type GetContactMessagesResponse struct {
	Messages  []ContactMessageResponse `json:"messages"`
	TotalPage int                      `json:"total_page"`
	TotalData int                      `json:"total_data"`
}

func (r *GetContactMessagesResponse) FromModels(models []model.ContactMessage, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Messages = make([]ContactMessageResponse, len(models))
	for i, mod := range models {
		r.Messages[i].FromModel(mod)
	}
}

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
