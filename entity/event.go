package entity

import "gorm.io/datatypes"

type Event struct {
	ID       uint           `json:"id" gorm:"primaryKey;autoIncrement"`
	Name     string         `json:"name" gorm:"type:varchar(100);not null"`
	Date     datatypes.Date `json:"date"`
	Location string         `json:"location" gorm:"type:varchar(100);not null"`
}
