// Package riderrepo provides data transfer objects and mapping functions for
// rider persistence. Riders are keyed by their normalized phone number.
package riderrepo

import (
	"time"

	"mealbot/internal/core/domain/model/kernel"
	"mealbot/internal/core/domain/model/rider"
)

// RiderDTO represents the database structure for persisting riders.
type RiderDTO struct {
	Phone                   string `gorm:"type:text;primaryKey"`
	Name                    string
	TotalDeliveries         int
	TotalEarningsMinorUnits int64
	RegisteredAt            time.Time
}

// TableName specifies the database table name for riders.
func (RiderDTO) TableName() string {
	return "riders"
}

// fromDomain converts a rider aggregate to its database representation.
func fromDomain(aggregate *rider.Rider) RiderDTO {
	return RiderDTO{
		Phone:                   aggregate.Phone().String(),
		Name:                    aggregate.Name(),
		TotalDeliveries:         aggregate.TotalDeliveries(),
		TotalEarningsMinorUnits: aggregate.TotalEarnings().MinorUnits(),
		RegisteredAt:            aggregate.RegisteredAt(),
	}
}

// toDomain converts a database DTO to a rider aggregate.
func toDomain(dto RiderDTO) (*rider.Rider, error) {
	phone, err := kernel.PhoneFromString(dto.Phone)
	if err != nil {
		return nil, err
	}

	earnings, err := kernel.NewMoney(dto.TotalEarningsMinorUnits)
	if err != nil {
		return nil, err
	}

	return rider.RestoreRider(phone, dto.Name, dto.TotalDeliveries, earnings, dto.RegisteredAt)
}
