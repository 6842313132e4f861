package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"salesorder/internal/core/domain/model/kernel"
	"salesorder/internal/core/domain/model/order"
	"salesorder/internal/core/ports"
	"salesorder/internal/pkg/errs"
	"salesorder/internal/pkg/result"
)

const (
	msgOrderCreated          = "order created"
	msgUserNotFound          = "user not found"
	msgCreatedOrderNotLoaded = "failed to load created order"
	msgCreatedItemNotLoaded  = "failed to load created order item"
	msgRequestInProgress     = "request with this idempotency key is in progress"
	msgKeyReused             = "idempotency key was already used with a different request"

	idempotencySeparator = "|"
)

// CreateOrderCommandHandler creates an order and all of its items in a single
// transaction. Either everything is stored or nothing is.
//
// When the command carries an idempotency key, a replay of a completed request
// returns the original order id and a replay of a running one is refused.
// Keys are scoped to the creator, so two users never share a key, and a key
// reused with a different body is refused instead of replayed.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory, idempotencyStore, logger)
//	cmd, err := NewCreateOrderCommand(userID, time.Now(), []ItemRequest{{ProductID: p, Quantity: 2}}, "key-1")
//	if err != nil {
//	    return err
//	}
//	res := handler.Handle(ctx, cmd)
//	if !res.IsSuccess() {
//	    log.Printf("Order rejected (%s): %s", res.Status(), res.Message())
//	}
type CreateOrderCommandHandler struct {
	uowFactory  OrderUoWFactory
	idempotency ports.IdempotencyStore
	logger      *slog.Logger
	now         func() time.Time
}

// NewCreateOrderCommandHandler builds the handler. idempotency may be nil, in
// which case keys are ignored.
func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	idempotency ports.IdempotencyStore,
	logger *slog.Logger,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory:  uowFactory,
		idempotency: idempotency,
		logger:      logger.With("component", "create_order_handler"),
		now:         time.Now,
	}
}

// Handle processes the order creation command.
// Reserves the idempotency key first when one is given, then stores the order
// and its items in one transaction. Returns Created with the order id, NotFound
// for an unknown creator or product and BadRequest for invalid input or a
// conflicting idempotency key.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) result.Result[kernel.UUID] {
	if err := cmd.Validate(); err != nil {
		return result.FromError[kernel.UUID](err)
	}

	if cmd.IdempotencyKey() == "" || h.idempotency == nil {
		return h.create(ctx, cmd)
	}

	key := idempotencyKey(cmd)
	fingerprint := cmd.Fingerprint()

	reserved, stored, err := h.idempotency.Reserve(ctx, key)
	if err != nil {
		h.logger.ErrorContext(ctx, "idempotency reserve failed", "error", err)
		return result.FromError[kernel.UUID](err)
	}
	if !reserved {
		return h.replay(ctx, stored, fingerprint)
	}

	res := h.create(ctx, cmd)
	if res.IsSuccess() {
		value := res.Data().String() + idempotencySeparator + fingerprint
		if err = h.idempotency.Complete(ctx, key, value); err != nil {
			h.logger.WarnContext(ctx, "idempotency complete failed", "order_id", res.Data().String(), "error", err)
		}
		return res
	}

	if err = h.idempotency.Release(ctx, key); err != nil {
		h.logger.WarnContext(ctx, "idempotency release failed", "error", err)
	}
	return res
}

// idempotencyKey binds the client key to the creator.
func idempotencyKey(cmd CreateOrderCommand) string {
	return cmd.CreatedBy().String() + ":" + cmd.IdempotencyKey()
}

func (h CreateOrderCommandHandler) replay(ctx context.Context, stored, fingerprint string) result.Result[kernel.UUID] {
	if stored == "" {
		return result.Failure[kernel.UUID](msgRequestInProgress, result.BadRequest)
	}

	rawID, storedFingerprint, ok := strings.Cut(stored, idempotencySeparator)
	if !ok {
		return result.FromError[kernel.UUID](fmt.Errorf("stored idempotent result %q is corrupt", stored))
	}
	if storedFingerprint != fingerprint {
		h.logger.WarnContext(ctx, "idempotency key reused with a different request", "order_id", rawID)
		return result.Failure[kernel.UUID](msgKeyReused, result.BadRequest)
	}

	id, err := kernel.UUIDFromString(rawID)
	if err != nil {
		return result.FromError[kernel.UUID](fmt.Errorf("stored idempotent result is corrupt: %w", err))
	}
	return result.Success(id, msgOrderCreated, result.Created)
}

func (h CreateOrderCommandHandler) create(ctx context.Context, cmd CreateOrderCommand) result.Result[kernel.UUID] {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return result.FromError[kernel.UUID](err)
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	itemRepo := uow.OrderItemRepository()
	productRepo := uow.ProductRepository()
	userRepo := uow.UserRepository()

	if _, err := userRepo.Get(ctx, cmd.CreatedBy()); err != nil {
		return failOnNotFound[kernel.UUID](err, msgUserNotFound, result.NotFound)
	}

	shell, err := order.NewOrder(kernel.NewUUID(), cmd.CreatedBy(), cmd.OrderDate())
	if err != nil {
		return result.FromError[kernel.UUID](err)
	}
	if err = orderRepo.Add(ctx, shell); err != nil {
		return result.FromError[kernel.UUID](err)
	}

	created, err := orderRepo.Get(ctx, shell.ID())
	if err != nil {
		return failOnNotFound[kernel.UUID](err, msgCreatedOrderNotLoaded, result.InternalServerError)
	}

	total := kernel.ZeroMoney()
	for position, req := range cmd.Items() {
		p, getErr := productRepo.Get(ctx, req.ProductID)
		if getErr != nil {
			return failOnNotFound[kernel.UUID](getErr, fmt.Sprintf("product %s not found", req.ProductID), result.NotFound)
		}

		item, itemErr := order.NewItem(kernel.NewUUID(), created.ID(), p.ID(), position, req.Quantity, p.Price())
		if itemErr != nil {
			return result.FromError[kernel.UUID](itemErr)
		}
		if err = itemRepo.Add(ctx, item); err != nil {
			return result.FromError[kernel.UUID](err)
		}

		stored, loadErr := itemRepo.Get(ctx, item.ID())
		if loadErr != nil {
			return failOnNotFound[kernel.UUID](loadErr, msgCreatedItemNotLoaded, result.InternalServerError)
		}
		total = total.Add(stored.TotalPrice())
	}

	withItems, err := orderRepo.Get(ctx, created.ID())
	if err != nil {
		return failOnNotFound[kernel.UUID](err, msgCreatedOrderNotLoaded, result.InternalServerError)
	}
	if err = withItems.CompleteCreation(h.now()); err != nil {
		return result.FromError[kernel.UUID](err)
	}
	if !withItems.TotalAmount().IsEqual(total) {
		return result.Failure[kernel.UUID](
			fmt.Sprintf("order total %s does not match its items %s", withItems.TotalAmount(), total),
			result.InternalServerError,
		)
	}
	if err = orderRepo.Update(ctx, withItems); err != nil {
		return result.FromError[kernel.UUID](err)
	}

	if err = uow.Commit(ctx); err != nil {
		return result.FromError[kernel.UUID](err)
	}

	h.logger.InfoContext(ctx, "order created",
		"order_id", withItems.ID().String(),
		"created_by", withItems.CreatedBy().String(),
		"items", len(withItems.Items()),
		"total", withItems.TotalAmount().String(),
	)
	return result.Success(withItems.ID(), msgOrderCreated, result.Created)
}

// failOnNotFound turns a missing object into a failure with message and status;
// any other error is classified as is.
func failOnNotFound[T any](err error, message string, status result.Status) result.Result[T] {
	if errors.Is(err, errs.ErrObjectNotFound) {
		return result.Failure[T](message, status)
	}
	return result.FromError[T](err)
}
