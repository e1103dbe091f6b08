package cmd

import (
	"log/slog"

	"mealbot/internal/adapters/out/postgres"
	"mealbot/internal/adapters/out/postgres/sessionrepo"
	"mealbot/internal/adapters/out/whatsapp"
	"mealbot/internal/bot"
	"mealbot/internal/core/application/usecases/commands"
	"mealbot/internal/core/application/usecases/queries"
	"mealbot/internal/core/domain/model/booking"
	"mealbot/internal/core/domain/model/session"
	"mealbot/internal/core/domain/services"
	"mealbot/internal/core/ports"
	"mealbot/internal/jobs"

	"gorm.io/gorm"
)

// CompositionRoot wires the application graph: one unit-of-work factory, one
// lock registry, and constructors for every handler the adapters need.
type CompositionRoot struct {
	config       Config
	gormDB       *gorm.DB
	uowFactory   postgres.GormUnitOfWorkFactory
	lockRegistry *services.OrderLockRegistry
}

// NewCompositionRoot creates the dependency injection root for the process.
func NewCompositionRoot(config Config, gormDB *gorm.DB) CompositionRoot {
	return CompositionRoot{
		config:       config,
		gormDB:       gormDB,
		uowFactory:   *postgres.NewGormUnitOfWorkFactory(gormDB),
		lockRegistry: services.NewOrderLockRegistry(services.DefaultLockTTL),
	}
}

func (c *CompositionRoot) riderCutBps() int64 {
	if c.config.RiderCutBps > 0 {
		return c.config.RiderCutBps
	}
	return booking.DefaultRiderCutBps
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateConfirmPaymentCommandHandler() commands.ConfirmPaymentCommandHandler {
	var f commands.PaymentUoWFactory = FuncPaymentUoWFactory(func() commands.PaymentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewConfirmPaymentCommandHandler(f)
}

func (c *CompositionRoot) CreateAttemptBookingCommandHandler() commands.AttemptBookingCommandHandler {
	var f commands.BookingUoWFactory = FuncBookingUoWFactory(func() commands.BookingUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAttemptBookingCommandHandler(f, c.lockRegistry, c.riderCutBps())
}

func (c *CompositionRoot) CreateConfirmPickupCommandHandler() commands.ConfirmPickupCommandHandler {
	var f commands.BookingUoWFactory = FuncBookingUoWFactory(func() commands.BookingUoW {
		return c.uowFactory.Create()
	})
	return commands.NewConfirmPickupCommandHandler(f)
}

func (c *CompositionRoot) CreateConfirmDeliveryCommandHandler() commands.ConfirmDeliveryCommandHandler {
	var f commands.BookingUoWFactory = FuncBookingUoWFactory(func() commands.BookingUoW {
		return c.uowFactory.Create()
	})
	return commands.NewConfirmDeliveryCommandHandler(f)
}

func (c *CompositionRoot) CreateRegisterRiderCommandHandler() commands.RegisterRiderCommandHandler {
	var f commands.RiderUoWFactory = FuncRiderUoWFactory(func() commands.RiderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRegisterRiderCommandHandler(f)
}

func (c *CompositionRoot) CreateGetPendingOrdersQueryHandler() queries.GetPendingOrdersQueryHandler {
	return queries.NewGetPendingOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetRiderBookingsQueryHandler() queries.GetRiderBookingsQueryHandler {
	return queries.NewGetRiderBookingsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetPaymentStatusQueryHandler() queries.GetPaymentStatusQueryHandler {
	return queries.NewGetPaymentStatusQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetBookingPaymentQueryHandler() queries.GetBookingPaymentQueryHandler {
	return queries.NewGetBookingPaymentQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetAllRidersQueryHandler() queries.GetAllRidersQueryHandler {
	return queries.NewGetAllRidersQueryHandler(c.gormDB)
}

// CreateSessionRepository returns the session store used by the buyer engine
// and the cleanup job. Sessions are single-row upserts and need no unit of
// work.
func (c *CompositionRoot) CreateSessionRepository() ports.SessionRepository {
	return sessionrepo.NewGormSessionRepository(c.gormDB)
}

// CreateRiderRepository returns a rider repository on the main connection,
// used by the webhook to route registered riders.
func (c *CompositionRoot) CreateRiderRepository() ports.RiderRepository {
	return c.uowFactory.Create().RiderRepository()
}

// CreateMessenger builds the outbound WhatsApp client from the provider
// settings.
func (c *CompositionRoot) CreateMessenger() (ports.Messenger, error) {
	return whatsapp.NewClient(
		c.config.WhatsAppAPIURL,
		c.config.WhatsAppAuthToken,
		c.config.WhatsAppFromNumber,
	)
}

// CreateBuyerEngine builds the buyer conversation engine.
func (c *CompositionRoot) CreateBuyerEngine(logger *slog.Logger) *bot.Engine {
	createOrder := c.CreateCreateOrderCommandHandler()
	confirmPayment := c.CreateConfirmPaymentCommandHandler()
	return bot.NewEngine(c.CreateSessionRepository(), createOrder, confirmPayment, logger)
}

// CreateRiderRouter builds the rider command router.
func (c *CompositionRoot) CreateRiderRouter(logger *slog.Logger) *bot.RiderRouter {
	return bot.NewRiderRouter(
		c.CreateAttemptBookingCommandHandler(),
		c.CreateConfirmPickupCommandHandler(),
		c.CreateConfirmDeliveryCommandHandler(),
		c.CreateGetPendingOrdersQueryHandler(),
		c.CreateGetRiderBookingsQueryHandler(),
		c.CreateGetPaymentStatusQueryHandler(),
		c.CreateGetBookingPaymentQueryHandler(),
		logger,
	)
}

// CreateJobManager builds the scheduled job manager.
func (c *CompositionRoot) CreateJobManager(logger *slog.Logger) *jobs.JobManager {
	return jobs.NewJobManager(c.CreateSessionRepository(), session.DefaultTTL, logger)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncPaymentUoWFactory func() commands.PaymentUoW

func (f FuncPaymentUoWFactory) Create() commands.PaymentUoW {
	return f()
}

type FuncRiderUoWFactory func() commands.RiderUoW

func (f FuncRiderUoWFactory) Create() commands.RiderUoW {
	return f()
}

type FuncBookingUoWFactory func() commands.BookingUoW

func (f FuncBookingUoWFactory) Create() commands.BookingUoW {
	return f()
}
