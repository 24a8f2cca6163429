package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"kiosk/internal/core/application/usecases/commands"
	"kiosk/internal/core/application/usecases/queries"
	"kiosk/internal/core/domain/model/order"
	"kiosk/internal/core/ports"
	"kiosk/internal/generated/servers"
	"kiosk/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// CommandObserver is told the outcome of every lifecycle command.
type CommandObserver interface {
	ObserveCommand(command, outcome string, notificationFailed bool)
}

// BoardRefresher pushes fresh queue state to live displays.
type BoardRefresher interface {
	Refresh(ctx context.Context)
}

// Handlers groups the use cases the HTTP adapter calls.
type Handlers struct {
	PlaceOrder       commands.PlaceOrderCommandHandler
	BeginPreparation commands.BeginPreparationCommandHandler
	MarkReady        commands.MarkReadyCommandHandler

	GetQueue         queries.GetQueueQueryHandler
	GetQueuePosition queries.GetQueuePositionQueryHandler
	GetOrderStatus   queries.GetOrderStatusQueryHandler
	GetQueueBoard    queries.GetQueueBoardQueryHandler
}

// Server implements servers.ServerInterface.
// It translates HTTP requests into commands and queries and maps their errors to status codes.
type Server struct {
	handlers Handlers
	menu     ports.Menu
	observer CommandObserver
	board    BoardRefresher
	logger   *slog.Logger
}

// NewServer creates the HTTP adapter. observer and board may be nil.
func NewServer(
	handlers Handlers,
	menu ports.Menu,
	observer CommandObserver,
	board BoardRefresher,
	logger *slog.Logger,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		handlers: handlers,
		menu:     menu,
		observer: observer,
		board:    board,
		logger:   logger.With("component", "http_server"),
	}
}

// GetMenu handles GET /api/v1/menu - lists products that can be ordered.
func (s *Server) GetMenu(ctx echo.Context) error {
	products := s.menu.Products()
	response := make([]servers.Product, 0, len(products))
	for _, p := range products {
		if p.Available() {
			response = append(response, toProduct(p))
		}
	}
	return ctx.JSON(http.StatusOK, response)
}

// PlaceOrder handles POST /api/v1/orders - queues a new order.
func (s *Server) PlaceOrder(ctx echo.Context) error {
	var body servers.PlaceOrderJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid request body")
	}
	if err := ctx.Validate(&body); err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid order: "+err.Error())
	}

	var tierName string
	if body.Tier != nil {
		tierName = *body.Tier
	}
	tier, err := order.ParseTier(tierName)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid order: "+err.Error())
	}

	lines := make([]commands.OrderLine, len(body.Items))
	for i, item := range body.Items {
		lines[i] = commands.OrderLine{ProductID: item.ProductId, Quantity: item.Quantity}
	}

	cmd, err := commands.NewPlaceOrderCommand(tier, lines)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid order: "+err.Error())
	}

	result, err := s.handlers.PlaceOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		if isValidationError(err) {
			return errorJSON(ctx, http.StatusBadRequest, "Invalid order: "+err.Error())
		}
		s.logger.ErrorContext(ctx.Request().Context(), "place order failed", "error", err)
		return errorJSON(ctx, http.StatusServiceUnavailable, "Order could not be saved, please try again")
	}

	return ctx.JSON(http.StatusCreated, servers.OrderCreated{
		OrderId:   result.Token,
		Total:     result.Total.String(),
		CreatedAt: result.CreatedAt,
	})
}

// GetOrder handles GET /api/v1/orders/{token} - order status for the customer.
func (s *Server) GetOrder(ctx echo.Context, token servers.Token) error {
	query, err := queries.NewGetOrderStatusQuery(token)
	if err != nil {
		return errorJSON(ctx, http.StatusNotFound, "Order not found")
	}

	view, err := s.handlers.GetOrderStatus.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.lookupError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderStatus(view))
}

// GetOrderPosition handles GET /api/v1/orders/{token}/position.
// Unknown and no longer queued orders both report position 0.
func (s *Server) GetOrderPosition(ctx echo.Context, token servers.Token) error {
	query, err := queries.NewGetQueuePositionQuery(token)
	if err != nil {
		return ctx.JSON(http.StatusOK, servers.Position{Position: 0})
	}

	position, err := s.handlers.GetQueuePosition.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.lookupError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, servers.Position{Position: position})
}

// PrepareOrder handles POST /api/v1/orders/{token}/prepare.
func (s *Server) PrepareOrder(ctx echo.Context, token servers.Token) error {
	reqCtx := ctx.Request().Context()

	cmd, err := commands.NewBeginPreparationCommand(token)
	if err != nil {
		return s.transitionFailed(ctx, "begin_preparation", err)
	}

	result, err := s.handlers.BeginPreparation.Handle(reqCtx, cmd)
	if err != nil {
		return s.transitionFailed(ctx, "begin_preparation", err)
	}

	s.observe("begin_preparation", commands.OutcomeSuccess, false)
	return ctx.JSON(http.StatusOK, toTransition(result))
}

// MarkOrderReady handles POST /api/v1/orders/{token}/ready.
// A failed customer notification still answers 200 with notification_failed set.
func (s *Server) MarkOrderReady(ctx echo.Context, token servers.Token) error {
	reqCtx := ctx.Request().Context()

	cmd, err := commands.NewMarkReadyCommand(token)
	if err != nil {
		return s.transitionFailed(ctx, "mark_ready", err)
	}

	result, err := s.handlers.MarkReady.Handle(reqCtx, cmd)
	if err != nil {
		return s.transitionFailed(ctx, "mark_ready", err)
	}

	s.observe("mark_ready", commands.OutcomeSuccess, result.NotificationFailed())
	return ctx.JSON(http.StatusOK, toTransition(result))
}

// GetQueue handles GET /api/v1/queue?view=all|queued|in_preparation|ready.
func (s *Server) GetQueue(ctx echo.Context, params servers.GetQueueParams) error {
	var raw string
	if params.View != nil {
		raw = string(*params.View)
	}
	view, err := queries.ParseQueueView(raw)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, err.Error())
	}

	query, err := queries.NewGetQueueQuery(view)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, err.Error())
	}

	orders, err := s.handlers.GetQueue.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.lookupError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrders(orders))
}

// GetQueueBoard handles GET /api/v1/queue/board.
func (s *Server) GetQueueBoard(ctx echo.Context) error {
	board, err := s.Board(ctx.Request().Context())
	if err != nil {
		return s.lookupError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, board)
}

// Board loads the three boards; the live board hub uses it as its snapshot source.
func (s *Server) Board(ctx context.Context) (servers.Board, error) {
	board, err := s.handlers.GetQueueBoard.Handle(ctx, queries.NewGetQueueBoardQuery())
	if err != nil {
		return servers.Board{}, err
	}
	return toBoard(board), nil
}

// transitionFailed answers a rejected lifecycle command and pushes the current
// queue to the displays so staff see why it was rejected.
func (s *Server) transitionFailed(ctx echo.Context, command string, err error) error {
	outcome := commands.OutcomeOf(err)
	s.observe(command, outcome, false)

	if s.board != nil && outcome != commands.OutcomeStorageUnavailable {
		s.board.Refresh(context.WithoutCancel(ctx.Request().Context()))
	}

	switch outcome {
	case commands.OutcomeNotFound:
		return errorJSON(ctx, http.StatusNotFound, "Order not found")
	case commands.OutcomeInvalidTransition:
		return errorJSON(ctx, http.StatusConflict, err.Error())
	default:
		s.logger.ErrorContext(ctx.Request().Context(), "lifecycle command failed",
			"command", command,
			"error", err,
		)
		return errorJSON(ctx, http.StatusServiceUnavailable, "Order storage is unavailable, please retry")
	}
}

// lookupError maps read side failures: unknown orders are 404, everything else 503.
func (s *Server) lookupError(ctx echo.Context, err error) error {
	if errors.Is(err, errs.ErrObjectNotFound) || isValidationError(err) {
		return errorJSON(ctx, http.StatusNotFound, "Order not found")
	}
	s.logger.ErrorContext(ctx.Request().Context(), "queue read failed", "error", err)
	return errorJSON(ctx, http.StatusServiceUnavailable, "Order storage is unavailable, please retry")
}

func (s *Server) observe(command string, outcome commands.Outcome, notificationFailed bool) {
	if s.observer != nil {
		s.observer.ObserveCommand(command, outcome.String(), notificationFailed)
	}
}

// isValidationError ignores storage failures whose driver cause happens to be a validation error.
func isValidationError(err error) bool {
	if errors.Is(err, errs.ErrStorageUnavailable) {
		return false
	}
	return errors.Is(err, errs.ErrValueIsInvalid) ||
		errors.Is(err, errs.ErrValueIsRequired) ||
		errors.Is(err, errs.ErrValueIsOutOfRange)
}

func errorJSON(ctx echo.Context, status int, message string) error {
	return ctx.JSON(status, servers.Error{Code: status, Message: message})
}
