package models

type Product struct {
	ID    uint    `json:"id" gorm:"primaryKey"`
	Name  string  `json:"name" gorm:"size:255;not null"`
	Price float64 `json:"price" gorm:"not null"`
}
