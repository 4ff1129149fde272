package service

import (
	"context"
	"fmt"
	"time"

	"LandokProject/logger"
	foodmodel "LandokProject/module/food/model"
	ordermodel "LandokProject/module/order/model"
	"LandokProject/service/chat"
	"LandokProject/service/ratelimit"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Rejection reasons surfaced to the HTTP layer.
var (
	ErrRateLimited = errors.New("too many orders from this address")
	ErrEmptyOrder  = errors.New("no items in order")
)

// ItemUnavailableError names the first item that failed validation; the
// whole order is rejected with it.
type ItemUnavailableError struct {
	FoodID string
}

func (e *ItemUnavailableError) Error() string {
	return fmt.Sprintf("food item not available: %s", e.FoodID)
}

// FoodStore is the slice of the menu storage the orchestrator needs.
type FoodStore interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*foodmodel.Food, error)
	PushOrderRef(ctx context.Context, foodID, orderID primitive.ObjectID) error
}

// OrderStore persists orders.
type OrderStore interface {
	Insert(ctx context.Context, doc *ordermodel.Order) error
}

// Broadcaster announces committed orders to every live connection.
type Broadcaster interface {
	Broadcast(event string, payload any)
}

// ItemRequest is one requested line item; Food is the item's hex ID.
type ItemRequest struct {
	Food     string `json:"food"`
	Quantity int    `json:"quantity"`
}

// PlaceOrderRequest is the submission body.
type PlaceOrderRequest struct {
	Items           []ItemRequest `json:"items"`
	CustomerName    string        `json:"customerName" binding:"required"`
	CustomerPhone   string        `json:"customerPhone" binding:"required"`
	CustomerAddress string        `json:"customerAddress" binding:"required"`
}

// OrderService composes the rate limiter, menu lookups and the realtime
// broadcaster into the order submission flow.
type OrderService struct {
	limiter *ratelimit.Limiter
	foods   FoodStore
	orders  OrderStore
	rt      Broadcaster
}

// NewOrderService rejects nil collaborators outright: initialization order
// bugs surface at startup, not on the first order.
func NewOrderService(limiter *ratelimit.Limiter, foods FoodStore, orders OrderStore, rt Broadcaster) (*OrderService, error) {
	if limiter == nil || foods == nil || orders == nil || rt == nil {
		return nil, errors.New("order service: nil collaborator")
	}
	return &OrderService{limiter: limiter, foods: foods, orders: orders, rt: rt}, nil
}

// PlaceOrder validates, prices, persists and announces one order.
//
// The rate limiter is consulted first, so a submission rejected later at
// item validation has still consumed one unit of quota. That matches the
// deployed behavior and is covered by a test.
func (s *OrderService) PlaceOrder(ctx context.Context, clientIP string, req *PlaceOrderRequest) (*ordermodel.Order, error) {
	if res := s.limiter.Admit(clientIP); !res.Allowed {
		return nil, ErrRateLimited
	}

	if len(req.Items) == 0 {
		return nil, ErrEmptyOrder
	}

	var (
		totalPrice float64
		items      = make([]ordermodel.OrderItem, 0, len(req.Items))
	)
	for _, it := range req.Items {
		foodID, err := primitive.ObjectIDFromHex(it.Food)
		if err != nil {
			return nil, &ItemUnavailableError{FoodID: it.Food}
		}
		food, err := s.foods.FindByID(ctx, foodID)
		if err != nil || food == nil || !food.Available || food.Hidden {
			// First invalid item fails the whole order; nothing has
			// been persisted yet.
			return nil, &ItemUnavailableError{FoodID: it.Food}
		}
		if it.Quantity <= 0 {
			return nil, ErrEmptyOrder
		}

		totalPrice += food.Price * float64(it.Quantity)
		items = append(items, ordermodel.OrderItem{
			Food:     food.ID,
			FoodID:   food.ID,
			Quantity: it.Quantity,
			Name:     food.Name,
			Price:    food.Price,
			Image:    food.Image,
		})
	}

	order := &ordermodel.Order{
		Items:           items,
		TotalPrice:      totalPrice,
		CustomerName:    req.CustomerName,
		CustomerPhone:   req.CustomerPhone,
		CustomerAddress: req.CustomerAddress,
	}
	if err := s.orders.Insert(ctx, order); err != nil {
		return nil, errors.Wrap(err, "persist order")
	}

	// Back-references are best effort; the order is already committed.
	for _, it := range items {
		if err := s.foods.PushOrderRef(ctx, it.FoodID, order.ID); err != nil {
			logger.Warnf("[order] back-ref update failed food=%s order=%s: %v",
				it.FoodID.Hex(), order.ID.Hex(), err)
		}
	}

	s.rt.Broadcast(chat.EventNewOrder, order)
	logger.Infof("[order] created id=%s ip=%s total=%.2f", order.ID.Hex(), clientIP, totalPrice)
	return order, nil
}

// Blocked exposes the limiter's diagnostic view of currently blocked
// addresses with their in-window submission times.
func (s *OrderService) Blocked() map[string][]time.Time {
	return s.limiter.Blocked()
}
