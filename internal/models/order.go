package models

import "time"

const (
	// DateLayout is the wire format of calendar dates.
	DateLayout = "2006-01-02"

	// DeliveryDays is the fixed shipping delay applied to every order.
	DeliveryDays = 7
)

type Order struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	Date       time.Time `json:"date" gorm:"type:date;not null"`
	CustomerID *uint     `json:"customer_id"`
	Customer   *Customer `json:"-" gorm:"foreignKey:CustomerID;constraint:OnDelete:SET NULL"`
	Products   []Product `json:"-" gorm:"many2many:order_products;constraint:OnDelete:CASCADE"`
}

// DeliveryDate is the estimated delivery: the order date plus DeliveryDays
// calendar days.
func (o Order) DeliveryDate() time.Time {
	return o.Date.AddDate(0, 0, DeliveryDays)
}

// ProductIDs returns the ids of the order's loaded products.
func (o Order) ProductIDs() []uint {
	ids := make([]uint, 0, len(o.Products))
	for _, p := range o.Products {
		ids = append(ids, p.ID)
	}
	return ids
}
