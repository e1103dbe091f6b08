// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return optimized read models for specific use cases.
package queries

import (
	"errors"
	"time"

	"mealbot/internal/core/domain/model/kernel"
	"mealbot/internal/pkg/guard"
)

var ErrGetPendingOrdersQueryIsNotConstructed = errors.New(
	"GetPendingOrdersQuery must be created via NewGetPendingOrdersQuery constructor",
)

// GetPendingOrdersQuery retrieves the orders riders can still claim.
// Backs the rider "orders" command: the board of paid, unclaimed orders.
//
// Example:
//
//	query := NewGetPendingOrdersQuery()
//	handler := NewGetPendingOrdersQueryHandler(db)
//
//	pending, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to retrieve pending orders: %w", err)
//	}
//	for _, p := range pending {
//	    fmt.Printf("%s %s to %s for %s\n", p.OrderID, p.MealName, p.Location, p.Price)
//	}
type GetPendingOrdersQuery struct {
	guard guard.ConstructorGuard
}

// NewGetPendingOrdersQuery creates a query to retrieve claimable orders.
// This is a parameterless query that fetches the whole pending board.
func NewGetPendingOrdersQuery() GetPendingOrdersQuery {
	return GetPendingOrdersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetPendingOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetPendingOrdersQueryIsNotConstructed)
}

// GetPendingOrdersQueryResponse represents one claimable order in the read
// model, with everything the rider sees before deciding to book.
type GetPendingOrdersQueryResponse struct {
	OrderID   kernel.OrderID
	MealName  string
	Location  string
	Price     kernel.Money
	CreatedAt time.Time
}
