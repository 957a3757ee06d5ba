package models

type CustomerAccount struct {
	ID         uint     `json:"id" gorm:"primaryKey"`
	Username   string   `json:"username" gorm:"uniqueIndex;not null"`
	Password   string   `json:"password" gorm:"not null"`
	CustomerID uint     `json:"customer_id" gorm:"index;not null"`
	Customer   Customer `json:"-" gorm:"constraint:OnDelete:RESTRICT"`
}
