package dto

import (
	"github.com/PayeTonKawa-EPSI-2025/Shop-V2/internal/models"
	"github.com/PayeTonKawa-EPSI-2025/Shop-V2/internal/validation"
	"github.com/danielgtaylor/huma/v2"
)

type OrderBody struct {
	CustomerID uint   `json:"customer_id" minimum:"1"`
	ProductIDs []uint `json:"product_id" minItems:"1" validate:"omitempty,dive,gt=0"`
	Date       string `json:"date,omitempty" doc:"Order date (YYYY-MM-DD), defaults to today" validate:"omitempty,datetime=2006-01-02"`
}

func (b *OrderBody) Resolve(ctx huma.Context, prefix *huma.PathBuffer) []error {
	return validation.Struct(prefix, b)
}

type OrderCreateInput struct {
	Body OrderBody
}

type OrderView struct {
	ID         uint   `json:"id"`
	CustomerID *uint  `json:"customer_id"`
	ProductIDs []uint `json:"product_ids"`
	Date       string `json:"date"`
}

func NewOrderView(order models.Order, productIDs []uint) OrderView {
	if productIDs == nil {
		productIDs = []uint{}
	}
	return OrderView{
		ID:         order.ID,
		CustomerID: order.CustomerID,
		ProductIDs: productIDs,
		Date:       order.Date.Format(models.DateLayout),
	}
}

type OrderOutput struct {
	Body OrderView
}

type TrackingOutput struct {
	Body struct {
		OrderDate    string `json:"Order Date"`
		DeliveryDate string `json:"Delivery Date"`
	}
}
