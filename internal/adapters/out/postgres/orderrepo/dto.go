// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"mealbot/internal/core/domain/model/kernel"
	"mealbot/internal/core/domain/model/order"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Identifiers and phones are stored in their textual form; money is stored in
// integer minor units.
type OrderDTO struct {
	ID              string `gorm:"type:text;primaryKey"`
	Buyer           string `gorm:"type:text;index"`
	MealID          string
	MealName        string
	PriceMinorUnits int64
	Location        string
	PromoCode       string
	FreeDelivery    bool
	Status          int     `gorm:"index"`
	Rider           *string `gorm:"type:text;index"`
	CreatedAt       time.Time
	PaidAt          *time.Time
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	var riderPhone *string
	if r := aggregate.Rider(); r != nil {
		value := r.String()
		riderPhone = &value
	}

	return OrderDTO{
		ID:              aggregate.ID().String(),
		Buyer:           aggregate.Buyer().String(),
		MealID:          aggregate.MealID(),
		MealName:        aggregate.MealName(),
		PriceMinorUnits: aggregate.Price().MinorUnits(),
		Location:        aggregate.Location(),
		PromoCode:       aggregate.PromoCode(),
		FreeDelivery:    aggregate.FreeDelivery(),
		Status:          int(aggregate.Status()),
		Rider:           riderPhone,
		CreatedAt:       aggregate.CreatedAt(),
		PaidAt:          aggregate.PaidAt(),
	}
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate using RestoreOrder so the stored
// status/rider consistency is revalidated on every load.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.OrderIDFromString(dto.ID)
	if err != nil {
		return nil, err
	}

	buyer, err := kernel.PhoneFromString(dto.Buyer)
	if err != nil {
		return nil, err
	}

	price, err := kernel.NewMoney(dto.PriceMinorUnits)
	if err != nil {
		return nil, err
	}

	var riderPhone *kernel.Phone
	if dto.Rider != nil {
		phone, phoneErr := kernel.PhoneFromString(*dto.Rider)
		if phoneErr != nil {
			return nil, phoneErr
		}
		riderPhone = &phone
	}

	return order.RestoreOrder(
		id,
		buyer,
		dto.MealID,
		dto.MealName,
		price,
		dto.Location,
		dto.PromoCode,
		dto.FreeDelivery,
		order.Status(dto.Status),
		riderPhone,
		dto.CreatedAt,
		dto.PaidAt,
	)
}
