package http

import (
	"time"

	"salesorder/internal/core/application/usecases/queries"

	"github.com/google/uuid"
)

type NewOrderRequest struct {
	OrderDate *time.Time     `json:"orderDate"`
	Items     []NewOrderItem `json:"items"`
}

type NewOrderItem struct {
	ProductID uuid.UUID `json:"productId"`
	Quantity  int       `json:"quantity"`
}

type OrderActionRequest struct {
	Status string `json:"status"`
}

type CreatedOrder struct {
	OrderID string `json:"orderId"`
}

type Order struct {
	ID          string      `json:"id"`
	Status      string      `json:"status"`
	CreatedBy   string      `json:"createdBy"`
	OrderDate   time.Time   `json:"orderDate"`
	ActionedBy  *string     `json:"actionedBy"`
	ActionedAt  *time.Time  `json:"actionedAt"`
	TotalAmount string      `json:"totalAmount"`
	Items       []OrderItem `json:"items"`
}

type OrderItem struct {
	ID          string `json:"id"`
	ProductID   string `json:"productId"`
	ProductName string `json:"productName"`
	Quantity    int    `json:"quantity"`
	UnitPrice   string `json:"unitPrice"`
	TotalPrice  string `json:"totalPrice"`
}

func toOrder(v queries.OrderView) Order {
	o := Order{
		ID:          v.ID.String(),
		Status:      v.Status.String(),
		CreatedBy:   v.CreatedBy.String(),
		OrderDate:   v.OrderDate,
		ActionedAt:  v.ActionedAt,
		TotalAmount: v.TotalAmount.String(),
		Items:       make([]OrderItem, 0, len(v.Items)),
	}
	if v.ActionedBy != nil {
		by := v.ActionedBy.String()
		o.ActionedBy = &by
	}
	for _, it := range v.Items {
		o.Items = append(o.Items, OrderItem{
			ID:          it.ID.String(),
			ProductID:   it.ProductID.String(),
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice.String(),
			TotalPrice:  it.TotalPrice.String(),
		})
	}
	return o
}

func toOrders(views []queries.OrderView) []Order {
	orders := make([]Order, 0, len(views))
	for _, v := range views {
		orders = append(orders, toOrder(v))
	}
	return orders
}
