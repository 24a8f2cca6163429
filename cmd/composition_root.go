package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	httpin "kiosk/internal/adapters/in/http"
	"kiosk/internal/adapters/out/eventbus"
	"kiosk/internal/adapters/out/memory"
	"kiosk/internal/adapters/out/metrics"
	"kiosk/internal/adapters/out/notify"
	"kiosk/internal/adapters/out/postgres"
	"kiosk/internal/adapters/out/postgres/orderrepo"
	"kiosk/internal/core/application/usecases/commands"
	"kiosk/internal/core/application/usecases/queries"
	"kiosk/internal/core/ports"
	"kiosk/internal/generated/servers"
	"kiosk/internal/jobs"
	"kiosk/internal/pkg/keylock"

	"gorm.io/gorm"
)

// CompositionRoot wires adapters, use cases and background jobs.
// gormDB is nil when the memory store is configured.
type CompositionRoot struct {
	cfg    Config
	gormDB *gorm.DB
	menu   ports.Menu
	logger *slog.Logger

	uowFactory ports.UnitOfWorkFactory
	reader     queries.OrderReader
	locks      *keylock.Mutex

	bus       *eventbus.Bus
	collector *metrics.Collector
	notifier  *notify.RetryingGateway
	hub       *httpin.BoardHub
	server    *httpin.Server
	jobs      *jobs.JobManager
	listener  *notify.ReadyListener

	closers []func() error
}

func NewCompositionRoot(cfg Config, gormDB *gorm.DB, menu ports.Menu, logger *slog.Logger) (*CompositionRoot, error) {
	c := &CompositionRoot{
		cfg:       cfg,
		gormDB:    gormDB,
		menu:      menu,
		logger:    logger,
		locks:     keylock.New(),
		bus:       eventbus.New(logger),
		collector: metrics.NewCollector(),
	}
	c.bus.Subscribe(c.collector.HandleEvent)

	switch cfg.Storage {
	case StorageMemory:
		store := memory.NewStore()
		c.uowFactory = memory.NewUnitOfWorkFactory(store, c.bus)
		c.reader = store
	default:
		if gormDB == nil {
			return nil, errors.New("postgres storage requires a database connection")
		}
		c.uowFactory = postgres.NewGormUnitOfWorkFactory(gormDB, c.bus)
		c.reader = orderrepo.NewGormOrderRepository(gormDB, nil)
	}

	gateway, err := c.createGateway()
	if err != nil {
		return nil, err
	}
	c.notifier = notify.NewRetryingGateway(gateway, cfg.NotifyMaxAttempts, logger).
		WithAttemptTimeout(cfg.NotifyTimeout)

	c.hub = httpin.NewBoardHub(func(ctx context.Context) (servers.Board, error) {
		return c.server.Board(ctx)
	}, logger)
	c.server = httpin.NewServer(c.createHandlers(), menu, c.collector, c.hub, logger)
	c.bus.Subscribe(c.hub.HandleEvent)

	c.jobs = jobs.NewJobManager(
		jobs.NewNotificationRetryJob(c.notifier, c.collector, cfg.NotifyRetryInterval, logger),
		jobs.NewQueueMetricsJob(c.CreateGetQueueBoardQueryHandler(), c.collector, cfg.QueueMetricsInterval, logger),
	)

	if cfg.Notifier == NotifierPostgres {
		listener, err := notify.NewReadyListener(cfg.DSN(), cfg.PGNotifyChannel, logger)
		if err != nil {
			_ = c.Close()
			return nil, err
		}
		c.listener = listener
		c.closers = append(c.closers, listener.Close)
	}

	return c, nil
}

func (c *CompositionRoot) createGateway() (ports.NotificationGateway, error) {
	switch c.cfg.Notifier {
	case NotifierAMQP:
		gateway, err := notify.DialAMQP(c.cfg.AMQPURL, c.cfg.AMQPExchange)
		if err != nil {
			return nil, fmt.Errorf("ready notifications: %w", err)
		}
		c.closers = append(c.closers, gateway.Close)
		return gateway, nil
	case NotifierPostgres:
		return notify.NewPostgresGateway(c.gormDB, c.cfg.PGNotifyChannel), nil
	default:
		return notify.NewLogGateway(c.logger), nil
	}
}

func (c *CompositionRoot) createHandlers() httpin.Handlers {
	return httpin.Handlers{
		PlaceOrder:       c.CreatePlaceOrderCommandHandler(),
		BeginPreparation: c.CreateBeginPreparationCommandHandler(),
		MarkReady:        c.CreateMarkReadyCommandHandler(),
		GetQueue:         c.CreateGetQueueQueryHandler(),
		GetQueuePosition: c.CreateGetQueuePositionQueryHandler(),
		GetOrderStatus:   c.CreateGetOrderStatusQueryHandler(),
		GetQueueBoard:    c.CreateGetQueueBoardQueryHandler(),
	}
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreatePlaceOrderCommandHandler() commands.PlaceOrderCommandHandler {
	return commands.NewPlaceOrderCommandHandler(c.orderUoWFactory(), c.menu)
}

func (c *CompositionRoot) CreateBeginPreparationCommandHandler() commands.BeginPreparationCommandHandler {
	return commands.NewBeginPreparationCommandHandler(c.orderUoWFactory(), c.locks)
}

func (c *CompositionRoot) CreateMarkReadyCommandHandler() commands.MarkReadyCommandHandler {
	return commands.NewMarkReadyCommandHandler(c.orderUoWFactory(), c.locks, c.notifier, c.logger).
		WithNotifyTimeout(c.cfg.NotifyTimeout)
}

func (c *CompositionRoot) CreateGetQueueQueryHandler() queries.GetQueueQueryHandler {
	return queries.NewGetQueueQueryHandler(c.reader)
}

func (c *CompositionRoot) CreateGetQueuePositionQueryHandler() queries.GetQueuePositionQueryHandler {
	return queries.NewGetQueuePositionQueryHandler(c.reader)
}

func (c *CompositionRoot) CreateGetOrderStatusQueryHandler() queries.GetOrderStatusQueryHandler {
	return queries.NewGetOrderStatusQueryHandler(c.reader)
}

func (c *CompositionRoot) CreateGetQueueBoardQueryHandler() queries.GetQueueBoardQueryHandler {
	return queries.NewGetQueueBoardQueryHandler(c.reader)
}

func (c *CompositionRoot) Server() *httpin.Server {
	return c.server
}

func (c *CompositionRoot) BoardHub() *httpin.BoardHub {
	return c.hub
}

func (c *CompositionRoot) Metrics() *metrics.Collector {
	return c.collector
}

func (c *CompositionRoot) Jobs() *jobs.JobManager {
	return c.jobs
}

// RelayReadyNotifications forwards pg_notify ready messages to the live boards
// until ctx is done. It returns immediately unless the postgres notifier is configured.
func (c *CompositionRoot) RelayReadyNotifications(ctx context.Context) {
	if c.listener == nil {
		return
	}
	c.listener.Run(ctx, c.hub.AnnounceReady)
}

// Close disconnects the board clients and releases broker and listener connections.
func (c *CompositionRoot) Close() error {
	if c.hub != nil {
		c.hub.Close()
	}
	var errList []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		errList = append(errList, c.closers[i]())
	}
	c.closers = nil
	return errors.Join(errList...)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}
