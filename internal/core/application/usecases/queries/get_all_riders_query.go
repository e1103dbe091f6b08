package queries

import (
	"errors"
	"time"

	"mealbot/internal/core/domain/model/kernel"
	"mealbot/internal/pkg/guard"
)

var ErrGetAllRidersQueryIsNotConstructed = errors.New(
	"GetAllRidersQuery must be created via NewGetAllRidersQuery constructor",
)

// GetAllRidersQuery retrieves every registered rider with their running
// totals. Backs the operator rider listing.
type GetAllRidersQuery struct {
	guard guard.ConstructorGuard
}

// NewGetAllRidersQuery creates a query to retrieve all registered riders.
func NewGetAllRidersQuery() GetAllRidersQuery {
	return GetAllRidersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetAllRidersQuery) Validate() error {
	return q.guard.Validate(ErrGetAllRidersQueryIsNotConstructed)
}

// GetAllRidersQueryResponse represents one registered rider in the read model.
type GetAllRidersQueryResponse struct {
	Phone           kernel.Phone
	Name            string
	TotalDeliveries int
	TotalEarnings   kernel.Money
	RegisteredAt    time.Time
}
