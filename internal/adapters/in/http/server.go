// Package http provides the inbound HTTP adapter: the WhatsApp webhook that
// feeds the conversation engines, plus a small admin API for rider
// registration.
package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"mealbot/internal/core/application/usecases/commands"
	"mealbot/internal/core/application/usecases/queries"
	"mealbot/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

// BuyerEngine routes a buyer message and returns the reply text.
type BuyerEngine interface {
	HandleIncoming(ctx context.Context, phone kernel.Phone, text string) string
}

// RiderEngine routes a rider command and returns the reply text.
type RiderEngine interface {
	HandleCommand(ctx context.Context, rider kernel.Phone, text string) string
}

// RiderDirectory reports whether a phone belongs to a registered rider.
// Satisfied by ports.RiderRepository.
type RiderDirectory interface {
	Exists(ctx context.Context, phone kernel.Phone) (bool, error)
}

// Messenger sends the reply back to the user.
type Messenger interface {
	SendText(ctx context.Context, to kernel.Phone, body string) error
}

// RiderRegistrar handles admin rider registration.
type RiderRegistrar interface {
	Handle(ctx context.Context, cmd commands.RegisterRiderCommand) error
}

// RiderLister lists registered riders for the admin API.
type RiderLister interface {
	Handle(ctx context.Context, query queries.GetAllRidersQuery) ([]queries.GetAllRidersQueryResponse, error)
}

// Server wires HTTP requests into the bot engines and admin use cases.
type Server struct {
	buyerEngine   BuyerEngine
	riderEngine   RiderEngine
	riders        RiderDirectory
	messenger     Messenger
	registerRider RiderRegistrar
	getAllRiders  RiderLister
}

// NewServer creates the HTTP server with its engine and use case dependencies.
func NewServer(
	buyerEngine BuyerEngine,
	riderEngine RiderEngine,
	riders RiderDirectory,
	messenger Messenger,
	registerRider RiderRegistrar,
	getAllRiders RiderLister,
) *Server {
	return &Server{
		buyerEngine:   buyerEngine,
		riderEngine:   riderEngine,
		riders:        riders,
		messenger:     messenger,
		registerRider: registerRider,
		getAllRiders:  getAllRiders,
	}
}

// RegisterRoutes attaches all endpoints to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)
	e.POST("/webhook", s.Webhook)
	e.POST("/api/v1/riders", s.CreateRider)
	e.GET("/api/v1/riders", s.GetRiders)
}

// errorResponse is the JSON error payload of the admin API.
type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// webhookRequest is the inbound message payload. Field names accept both the
// provider's form encoding and plain JSON.
type webhookRequest struct {
	From      string `json:"from" form:"From"`
	Body      string `json:"body" form:"Body"`
	MessageID string `json:"message_id" form:"MessageSid"`
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{
		"status":  "ok",
		"service": "mealbot",
	})
}

// Webhook handles POST /webhook - one inbound WhatsApp message. Registered
// riders are routed to the command surface, everyone else to the buyer flow,
// and the reply goes back out through the messenger.
func (s *Server) Webhook(ctx echo.Context) error {
	var req webhookRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	phone, err := kernel.PhoneFromString(req.From)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid sender phone",
		})
	}

	reqCtx := ctx.Request().Context()

	isRider, err := s.riders.Exists(reqCtx, phone)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, errorResponse{
			Code:    http.StatusInternalServerError,
			Message: "Failed to process message",
		})
	}

	var reply string
	if isRider {
		reply = s.riderEngine.HandleCommand(reqCtx, phone, req.Body)
	} else {
		reply = s.buyerEngine.HandleIncoming(reqCtx, phone, req.Body)
	}

	if reply != "" {
		if err = s.messenger.SendText(reqCtx, phone, reply); err != nil {
			return ctx.JSON(http.StatusInternalServerError, errorResponse{
				Code:    http.StatusInternalServerError,
				Message: "Failed to send reply",
			})
		}
	}

	return ctx.String(http.StatusOK, "OK")
}

// newRiderRequest is the admin payload for registering a rider.
type newRiderRequest struct {
	Phone string `json:"phone"`
	Name  string `json:"name"`
}

// riderResponse is one rider in the admin listing.
type riderResponse struct {
	Phone           string    `json:"phone"`
	Name            string    `json:"name"`
	TotalDeliveries int       `json:"total_deliveries"`
	TotalEarnings   string    `json:"total_earnings"`
	RegisteredAt    time.Time `json:"registered_at"`
}

// CreateRider handles POST /api/v1/riders - registers a new rider.
func (s *Server) CreateRider(ctx echo.Context) error {
	var req newRiderRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	phone, err := kernel.PhoneFromString(req.Phone)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid rider phone: " + err.Error(),
		})
	}

	cmd, err := commands.NewRegisterRiderCommand(phone, req.Name)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid rider data: " + err.Error(),
		})
	}

	if err = s.registerRider.Handle(ctx.Request().Context(), cmd); err != nil {
		if errors.Is(err, commands.ErrRiderAlreadyRegistered) {
			return ctx.JSON(http.StatusConflict, errorResponse{
				Code:    http.StatusConflict,
				Message: "Rider is already registered",
			})
		}
		return ctx.JSON(http.StatusInternalServerError, errorResponse{
			Code:    http.StatusInternalServerError,
			Message: "Failed to register rider",
		})
	}

	return ctx.NoContent(http.StatusCreated)
}

// GetRiders handles GET /api/v1/riders - lists all registered riders.
func (s *Server) GetRiders(ctx echo.Context) error {
	riders, err := s.getAllRiders.Handle(ctx.Request().Context(), queries.NewGetAllRidersQuery())
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, errorResponse{
			Code:    http.StatusInternalServerError,
			Message: "Failed to retrieve riders",
		})
	}

	response := make([]riderResponse, len(riders))
	for i, r := range riders {
		response[i] = riderResponse{
			Phone:           r.Phone.String(),
			Name:            r.Name,
			TotalDeliveries: r.TotalDeliveries,
			TotalEarnings:   r.TotalEarnings.String(),
			RegisteredAt:    r.RegisteredAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}
