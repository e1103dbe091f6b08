// Package queuerepo provides data transfer objects and mapping functions for
// rider queue persistence. Queue entries mirror paid orders and are keyed by
// order id.
package queuerepo

import (
	"time"

	"mealbot/internal/core/domain/model/kernel"
	"mealbot/internal/core/domain/model/queue"
)

// EntryDTO represents the database structure for persisting queue entries.
type EntryDTO struct {
	OrderID         string `gorm:"type:text;primaryKey"`
	Buyer           string `gorm:"type:text"`
	MealName        string
	Location        string
	PriceMinorUnits int64
	Status          int     `gorm:"index"`
	Rider           *string `gorm:"type:text"`
	BookingID       *string `gorm:"type:text"`
	CreatedAt       time.Time
}

// TableName specifies the database table name for queue entries.
func (EntryDTO) TableName() string {
	return "queue_entries"
}

// fromDomain converts a queue entry aggregate to its database representation.
func fromDomain(entry *queue.Entry) EntryDTO {
	var riderPhone *string
	if r := entry.Rider(); r != nil {
		value := r.String()
		riderPhone = &value
	}

	var bookingID *string
	if id := entry.BookingID(); id != nil {
		value := id.String()
		bookingID = &value
	}

	return EntryDTO{
		OrderID:         entry.OrderID().String(),
		Buyer:           entry.Buyer().String(),
		MealName:        entry.MealName(),
		Location:        entry.Location(),
		PriceMinorUnits: entry.Price().MinorUnits(),
		Status:          int(entry.Status()),
		Rider:           riderPhone,
		BookingID:       bookingID,
		CreatedAt:       entry.CreatedAt(),
	}
}

// toDomain converts a database DTO to a queue entry aggregate.
func toDomain(dto EntryDTO) (*queue.Entry, error) {
	orderID, err := kernel.OrderIDFromString(dto.OrderID)
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

	var bookingID *kernel.BookingID
	if dto.BookingID != nil {
		id, idErr := kernel.BookingIDFromString(*dto.BookingID)
		if idErr != nil {
			return nil, idErr
		}
		bookingID = &id
	}

	return queue.RestoreEntry(
		orderID,
		buyer,
		dto.MealName,
		dto.Location,
		price,
		queue.Status(dto.Status),
		riderPhone,
		bookingID,
		dto.CreatedAt,
	)
}
