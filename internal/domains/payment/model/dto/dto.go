package dto

import (
	"net/http"

	"hostel/internal/domains/payment/model"
	"hostel/shared"
	"hostel/shared/constant"
	gDto "hostel/shared/dto"
	"hostel/shared/failure"
	"hostel/shared/timezone"

	"github.com/shopspring/decimal"
)

const (
	QueryType = "type"
	QueryFrom = "from"
	QueryTo   = "to"
)

type PaymentResponse struct {
	ID          string          `json:"id"`
	BookingID   string          `json:"booking_id"`
	PaymentType model.Type      `json:"payment_type"`
	Amount      decimal.Decimal `json:"amount"`
	PaymentDate string          `json:"payment_date"`
}

func (p *PaymentResponse) FromModel(model model.Payment) {
	p.ID = model.ID
	p.BookingID = model.BookingID
	p.PaymentType = model.PaymentType
	p.Amount = model.Amount
	p.PaymentDate = timezone.Format(model.PaymentDate, constant.DateFormat)
}

type GetPaymentsResponse struct {
	Payments  []PaymentResponse `json:"payments"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetPaymentsResponse) FromModels(models []model.Payment, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Payments = make([]PaymentResponse, len(models))
	for i, mod := range models {
		r.Payments[i].FromModel(mod)
	}
}

// PaymentFilter narrows the payment list by type and by a payment date range. Both dates are
// inclusive calendar days.
type PaymentFilter struct {
	Type *model.Type
	From string
	To   string
}

func (f *PaymentFilter) FromRequest(r *http.Request) error {
	query := r.URL.Query()

	if value := query.Get(QueryType); value != constant.Empty {
		paymentType, err := model.ParseType(value)
		if err != nil {
			return err
		}

		f.Type = &paymentType
	}

	for name, target := range map[string]*string{QueryFrom: &f.From, QueryTo: &f.To} {
		value := query.Get(name)
		if value == constant.Empty {
			continue
		}

		if _, err := timezone.ParseDate(value); err != nil {
			return failure.BadRequestFromString(name + " must be a date formatted as YYYY-MM-DD")
		}

		*target = value
	}

	return nil
}

func (f *PaymentFilter) ToFilterGroup() gDto.FilterGroup {
	group := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}

	if f.Type != nil {
		group.Filters = append(group.Filters, gDto.Filter{
			Field:    model.FieldPaymentType,
			Operator: gDto.FilterOperatorEq,
			Value:    *f.Type,
			Table:    model.TableName,
		})
	}

	if f.From != constant.Empty {
		from, _ := timezone.ParseDate(f.From)

		group.Filters = append(group.Filters, gDto.Filter{
			ArgName:  QueryFrom,
			Field:    model.FieldPaymentDate,
			Operator: gDto.FilterOperatorGreaterEq,
			Value:    from,
			Table:    model.TableName,
		})
	}

	if f.To != constant.Empty {
		to, _ := timezone.ParseDate(f.To)

		group.Filters = append(group.Filters, gDto.Filter{
			ArgName:  QueryTo,
			Field:    model.FieldPaymentDate,
			Operator: gDto.FilterOperatorLess,
			Value:    to.AddDate(0, 0, 1),
			Table:    model.TableName,
		})
	}

	return group
}
