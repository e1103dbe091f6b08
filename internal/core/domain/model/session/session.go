package session

import (
	"errors"
	"time"

	"mealbot/internal/core/domain/model/kernel"
)

// DefaultTTL is how long a session may sit untouched before it is stale.
const DefaultTTL = 24 * time.Hour

// ErrSessionIsNotConstructed is returned when a Session instance was not
// created through the NewSession or RestoreSession factory functions.
var ErrSessionIsNotConstructed = errors.New("Session must be created via NewSession constructor")

// Session is the aggregate root for one phone number's conversation state.
// The bot engine loads it on every inbound message, moves it between steps,
// and stores whatever the flow needs to remember in the data bag.
type Session struct {
	phone     kernel.Phone
	step      Step
	data      map[string]string
	updatedAt time.Time

	isConstructed bool
}

// NewSession starts a fresh conversation at the Welcome step.
func NewSession(phone kernel.Phone, now time.Time) (*Session, error) {
	if err := phone.Validate(); err != nil {
		return nil, err
	}

	return &Session{
		phone:         phone,
		step:          Welcome,
		data:          map[string]string{},
		updatedAt:     now.UTC(),
		isConstructed: true,
	}, nil
}

// RestoreSession reconstructs a Session from persistence. A nil data map is
// replaced with an empty one.
func RestoreSession(phone kernel.Phone, step Step, data map[string]string, updatedAt time.Time) (*Session, error) {
	s, err := NewSession(phone, updatedAt)
	if err != nil {
		return nil, err
	}
	if err = step.Validate(); err != nil {
		return nil, err
	}

	s.step = step
	if data != nil {
		s.data = data
	}
	return s, nil
}

// Validate ensures the Session was created via its factory functions.
func (s *Session) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrSessionIsNotConstructed
	}
	return nil
}

// Phone returns the phone number owning the conversation.
func (s *Session) Phone() kernel.Phone {
	return s.phone
}

// Step returns the current flow step.
func (s *Session) Step() Step {
	return s.step
}

// UpdatedAt returns the time of the last step change or data write.
func (s *Session) UpdatedAt() time.Time {
	return s.updatedAt
}

// Get reads a value from the data bag.
func (s *Session) Get(key string) (string, bool) {
	value, ok := s.data[key]
	return value, ok
}

// Data returns a copy of the data bag for persistence.
func (s *Session) Data() map[string]string {
	out := make(map[string]string, len(s.data))
	for k, v := range s.data {
		out[k] = v
	}
	return out
}

// Put writes a value into the data bag and touches the session.
func (s *Session) Put(key, value string, now time.Time) {
	s.data[key] = value
	s.updatedAt = now.UTC()
}

// Advance moves the session to the given step and touches it. Any step is
// reachable: the flow is driven by the bot engine, and a buyer can always be
// reset to Welcome.
func (s *Session) Advance(step Step, now time.Time) error {
	if err := step.Validate(); err != nil {
		return err
	}

	s.step = step
	if step == Welcome {
		s.data = map[string]string{}
	}
	s.updatedAt = now.UTC()
	return nil
}

// IsStale reports whether the session has been untouched for longer than ttl.
func (s *Session) IsStale(ttl time.Duration, now time.Time) bool {
	return now.Sub(s.updatedAt) > ttl
}
