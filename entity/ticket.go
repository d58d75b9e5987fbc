package entity

import "github.com/shopspring/decimal"

type Ticket struct {
	ID    uint            `json:"id" gorm:"primaryKey;autoIncrement"`
	Event string          `json:"event" gorm:"type:varchar(100);not null"`
	Seat  string          `json:"seat" gorm:"type:varchar(10);not null"`
	Price decimal.Decimal `json:"price" gorm:"type:numeric;not null"`
}
