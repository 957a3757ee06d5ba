package models

import "time"

type Order struct {
	ID               uint        `json:"id" gorm:"primaryKey"`
	CustomerID       uint        `json:"customer_id" gorm:"index;not null"`
	Customer         Customer    `json:"-" gorm:"constraint:OnDelete:RESTRICT"`
	Date             time.Time   `json:"date" gorm:"not null"`
	ExpectedDelivery time.Time   `json:"expected_delivery_date" gorm:"not null"`
	Status           OrderStatus `json:"status" gorm:"not null"`
}

// OrderProduct is the join row linking an order to one of its products.
// The composite primary key means a product appears at most once per order.
// The foreign keys restrict deletes, so a customer or product that an order
// still references cannot be removed out from under it.
type OrderProduct struct {
	OrderID   uint    `json:"order_id" gorm:"primaryKey"`
	ProductID uint    `json:"product_id" gorm:"primaryKey"`
	Order     Order   `json:"-" gorm:"constraint:OnDelete:RESTRICT"`
	Product   Product `json:"-" gorm:"constraint:OnDelete:RESTRICT"`
}
