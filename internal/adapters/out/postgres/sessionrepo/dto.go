// Package sessionrepo provides data transfer objects and mapping functions
// for conversation session persistence. The data bag is stored as JSON text.
package sessionrepo

import (
	"encoding/json"
	"time"

	"mealbot/internal/core/domain/model/kernel"
	"mealbot/internal/core/domain/model/session"
)

// SessionDTO represents the database structure for persisting sessions.
type SessionDTO struct {
	Phone     string `gorm:"type:text;primaryKey"`
	Step      int
	Data      string    `gorm:"type:text"`
	UpdatedAt time.Time `gorm:"index"`
}

// TableName specifies the database table name for sessions.
func (SessionDTO) TableName() string {
	return "sessions"
}

// fromDomain converts a session aggregate to its database representation.
func fromDomain(aggregate *session.Session) (SessionDTO, error) {
	data, err := json.Marshal(aggregate.Data())
	if err != nil {
		return SessionDTO{}, err
	}

	return SessionDTO{
		Phone:     aggregate.Phone().String(),
		Step:      int(aggregate.Step()),
		Data:      string(data),
		UpdatedAt: aggregate.UpdatedAt(),
	}, nil
}

// toDomain converts a database DTO to a session aggregate.
func toDomain(dto SessionDTO) (*session.Session, error) {
	phone, err := kernel.PhoneFromString(dto.Phone)
	if err != nil {
		return nil, err
	}

	var data map[string]string
	if dto.Data != "" {
		if err = json.Unmarshal([]byte(dto.Data), &data); err != nil {
			return nil, err
		}
	}

	return session.RestoreSession(phone, session.Step(dto.Step), data, dto.UpdatedAt)
}
