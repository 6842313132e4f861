package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"salesorder/internal/core/domain/model/kernel"
	"salesorder/internal/core/domain/model/order"
	"salesorder/internal/core/domain/model/product"
	"salesorder/internal/core/domain/services"
	"salesorder/internal/pkg/errs"
	"salesorder/internal/pkg/result"
)

const (
	DefaultActionAttempts = 3

	msgOrderStatusUpdated   = "order status updated"
	msgOrderNotFound        = "order not found"
	msgOrderItemNotFound    = "order item not found"
	msgOrderAlreadyApproved = "order is already approved"
	msgOrderRejected        = "order is rejected"
	msgActionNotAllowed     = "user is not allowed to action orders"
	msgConcurrentUpdate     = "order was modified concurrently, retry the request"
)

// ActionOrderCommandHandler approves or rejects an order.
//
// The order row is locked for the whole transaction. Approval locks every
// referenced product in ascending id order, checks all of them against the
// aggregated demand and only then decrements stock. When stock is short the
// order is stored as InsufficientProducts and no product is changed.
//
// Version conflicts and serialization failures are retried up to the
// configured number of attempts.
//
// Example:
//
//	handler := NewActionOrderCommandHandler(uowFactory, logger)
//	cmd, err := NewActionOrderCommand(orderID, actorID, order.Approved)
//	if err != nil {
//	    return err
//	}
//	res := handler.Handle(ctx, cmd)
//	switch res.Status() {
//	case result.OK:
//	    log.Println("Order approved")
//	case result.Forbidden:
//	    log.Println("Actor may not approve orders")
//	default:
//	    log.Printf("Approval failed: %s", res.Message())
//	}
type ActionOrderCommandHandler struct {
	uowFactory  OrderUoWFactory
	reserver    services.StockReserver
	logger      *slog.Logger
	now         func() time.Time
	maxAttempts int
}

// NewActionOrderCommandHandler creates a handler for order approval and rejection.
// Requires an OrderUoWFactory; a fresh unit of work is opened for every attempt.
func NewActionOrderCommandHandler(uowFactory OrderUoWFactory, logger *slog.Logger) ActionOrderCommandHandler {
	return ActionOrderCommandHandler{
		uowFactory:  uowFactory,
		reserver:    services.NewStockReserver(),
		logger:      logger.With("component", "action_order_handler"),
		now:         time.Now,
		maxAttempts: DefaultActionAttempts,
	}
}

// Handle processes the order action command.
// Returns OK when the order moved to the target status, NotFound for an unknown
// order, actor or product, Forbidden for a Client actor and BadRequest for a
// terminal order, short stock or repeated concurrent conflicts.
func (h ActionOrderCommandHandler) Handle(ctx context.Context, cmd ActionOrderCommand) result.Result[bool] {
	if err := cmd.Validate(); err != nil {
		return result.FromError[bool](err)
	}

	for attempt := 1; ; attempt++ {
		res, err := h.handle(ctx, cmd)
		if err == nil {
			return res
		}

		if !errors.Is(err, errs.ErrVersionIsInvalid) {
			return result.FromError[bool](err)
		}
		if attempt >= h.maxAttempts || ctx.Err() != nil {
			h.logger.WarnContext(ctx, "order action gave up after concurrent updates",
				"order_id", cmd.OrderID().String(), "attempts", attempt, "error", err)
			return result.Failure[bool](msgConcurrentUpdate, result.BadRequest)
		}
		h.logger.InfoContext(ctx, "retrying order action after concurrent update",
			"order_id", cmd.OrderID().String(), "attempt", attempt)
	}
}

// handle runs one attempt. Business outcomes are returned as results; the
// error is set only for failures the caller has to classify or retry.
func (h ActionOrderCommandHandler) handle(ctx context.Context, cmd ActionOrderCommand) (result.Result[bool], error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return result.Result[bool]{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	itemRepo := uow.OrderItemRepository()
	productRepo := uow.ProductRepository()
	userRepo := uow.UserRepository()

	o, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return notFoundOr(err, msgOrderNotFound)
	}

	switch err = o.ValidateCanBeActioned(); {
	case errors.Is(err, order.ErrOrderIsAlreadyApproved):
		return result.Failure[bool](msgOrderAlreadyApproved, result.BadRequest), nil
	case errors.Is(err, order.ErrOrderIsRejected):
		return result.Failure[bool](msgOrderRejected, result.BadRequest), nil
	case err != nil:
		return result.FromError[bool](err), nil
	}

	actor, err := userRepo.Get(ctx, cmd.ActorID())
	if err != nil {
		return notFoundOr(err, msgUserNotFound)
	}
	if !actor.Role().CanActionOrders() {
		h.logger.WarnContext(ctx, "order action denied",
			"order_id", o.ID().String(), "user_id", actor.ID().String(), "role", actor.Role().String())
		return result.Failure[bool](msgActionNotAllowed, result.Forbidden), nil
	}

	now := h.now().UTC()

	if cmd.Target() == order.Approved {
		items := make([]*order.Item, 0, len(o.Items()))
		for _, it := range o.Items() {
			stored, getErr := itemRepo.Get(ctx, it.ID())
			if getErr != nil {
				return notFoundOr(getErr, msgOrderItemNotFound)
			}
			items = append(items, stored)
		}

		locked := make(map[kernel.UUID]*product.Product, len(items))
		for _, id := range services.ProductLockOrder(items) {
			p, getErr := productRepo.GetForUpdate(ctx, id)
			if getErr != nil {
				return notFoundOr(getErr, fmt.Sprintf("product %s not found", id))
			}
			locked[id] = p
		}

		reserved, reserveErr := h.reserver.Reserve(items, locked)
		var stockErr *product.InsufficientStockError
		if errors.As(reserveErr, &stockErr) {
			if err = o.Action(order.InsufficientProducts, actor.ID(), now); err != nil {
				return result.Result[bool]{}, err
			}
			if err = orderRepo.Update(ctx, o); err != nil {
				return result.Result[bool]{}, err
			}
			if err = uow.Commit(ctx); err != nil {
				return result.Result[bool]{}, err
			}

			h.logger.WarnContext(ctx, "order has insufficient products",
				"order_id", o.ID().String(),
				"product_id", stockErr.ProductID.String(),
				"requested", stockErr.Requested,
				"available", stockErr.Available,
			)
			return result.Failure[bool](stockErr.Error(), result.BadRequest), nil
		}
		if reserveErr != nil {
			return result.FromError[bool](reserveErr), nil
		}

		for _, p := range reserved {
			if err = productRepo.Update(ctx, p); err != nil {
				return result.Result[bool]{}, err
			}
		}
		for _, it := range items {
			if err = itemRepo.Update(ctx, it); err != nil {
				return result.Result[bool]{}, err
			}
		}
	}

	if err = o.Action(cmd.Target(), actor.ID(), now); err != nil {
		return result.FromError[bool](err), nil
	}
	if err = orderRepo.Update(ctx, o); err != nil {
		return result.Result[bool]{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return result.Result[bool]{}, err
	}

	h.logger.InfoContext(ctx, "order actioned",
		"order_id", o.ID().String(),
		"status", o.Status().String(),
		"actioned_by", actor.ID().String(),
	)
	return result.Success(true, msgOrderStatusUpdated, result.OK), nil
}

func notFoundOr(err error, message string) (result.Result[bool], error) {
	if errors.Is(err, errs.ErrObjectNotFound) {
		return result.Failure[bool](message, result.NotFound), nil
	}
	return result.Result[bool]{}, err
}
