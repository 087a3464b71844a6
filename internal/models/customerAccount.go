package models

// CustomerAccount holds login credentials. PasswordHash is a bcrypt digest;
// PasswordLength is the length of the plaintext, kept only for masking.
type CustomerAccount struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	Username       string    `json:"username" gorm:"size:255;uniqueIndex;not null"`
	PasswordHash   string    `json:"-" gorm:"size:255;not null"`
	PasswordLength int       `json:"-" gorm:"not null"`
	CustomerID     *uint     `json:"customer_id"`
	Customer       *Customer `json:"-" gorm:"foreignKey:CustomerID;constraint:OnDelete:SET NULL"`
}
