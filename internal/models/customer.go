package models

// Customer owns zero or more orders and accounts through their customer_id.
type Customer struct {
	ID    uint   `json:"id" gorm:"primaryKey"`
	Name  string `json:"name" gorm:"size:255;not null"`
	Email string `json:"email" gorm:"size:320"`
	Phone string `json:"phone" gorm:"size:15"`
}
