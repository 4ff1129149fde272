package service

import (
	"context"
	"testing"
	"time"

	foodmodel "LandokProject/module/food/model"
	ordermodel "LandokProject/module/order/model"
	"LandokProject/service/chat"
	"LandokProject/service/ratelimit"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type fakeFoodStore struct {
	items  map[string]*foodmodel.Food
	pushed []primitive.ObjectID // food IDs that received a back-ref
}

func (f *fakeFoodStore) FindByID(_ context.Context, id primitive.ObjectID) (*foodmodel.Food, error) {
	item, ok := f.items[id.Hex()]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return item, nil
}

func (f *fakeFoodStore) PushOrderRef(_ context.Context, foodID, _ primitive.ObjectID) error {
	f.pushed = append(f.pushed, foodID)
	return nil
}

type fakeOrderStore struct {
	inserted []*ordermodel.Order
	err      error
}

func (o *fakeOrderStore) Insert(_ context.Context, doc *ordermodel.Order) error {
	if o.err != nil {
		return o.err
	}
	doc.ID = primitive.NewObjectID()
	doc.Status = ordermodel.StatusPending
	o.inserted = append(o.inserted, doc)
	return nil
}

type fakeBroadcaster struct {
	events []string
}

func (b *fakeBroadcaster) Broadcast(event string, _ any) {
	b.events = append(b.events, event)
}

func newFood(name string, price float64, available, hidden bool) *foodmodel.Food {
	return &foodmodel.Food{
		ID:        primitive.NewObjectID(),
		Name:      name,
		Price:     price,
		Image:     "https://img.example/" + name + ".jpg",
		Available: available,
		Hidden:    hidden,
	}
}

type fixture struct {
	svc    *OrderService
	foods  *fakeFoodStore
	orders *fakeOrderStore
	rt     *fakeBroadcaster
	clock  *time.Time
}

func newFixture(t *testing.T, items ...*foodmodel.Food) *fixture {
	t.Helper()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	fx := &fixture{
		foods:  &fakeFoodStore{items: map[string]*foodmodel.Food{}},
		orders: &fakeOrderStore{},
		rt:     &fakeBroadcaster{},
		clock:  &now,
	}
	for _, it := range items {
		fx.foods.items[it.ID.Hex()] = it
	}
	limiter := ratelimit.NewLimiter(ratelimit.Conf{Clock: func() time.Time { return *fx.clock }})
	svc, err := NewOrderService(limiter, fx.foods, fx.orders, fx.rt)
	if err != nil {
		t.Fatal(err)
	}
	fx.svc = svc
	return fx
}

func req(items ...ItemRequest) *PlaceOrderRequest {
	return &PlaceOrderRequest{
		Items:           items,
		CustomerName:    "Alice",
		CustomerPhone:   "123",
		CustomerAddress: "1 Main St",
	}
}

func TestNewOrderServiceRejectsNilCollaborators(t *testing.T) {
	if _, err := NewOrderService(nil, &fakeFoodStore{}, &fakeOrderStore{}, &fakeBroadcaster{}); err == nil {
		t.Error("nil limiter must be rejected at construction")
	}
	limiter := ratelimit.NewLimiter(ratelimit.Conf{})
	if _, err := NewOrderService(limiter, &fakeFoodStore{}, &fakeOrderStore{}, nil); err == nil {
		t.Error("nil broadcaster must be rejected at construction")
	}
}

func TestPlaceOrderHappyPath(t *testing.T) {
	burger := newFood("burger", 9.5, true, false)
	fries := newFood("fries", 3.25, true, false)
	fx := newFixture(t, burger, fries)

	order, err := fx.svc.PlaceOrder(context.Background(), "1.2.3.4", req(
		ItemRequest{Food: burger.ID.Hex(), Quantity: 2},
		ItemRequest{Food: fries.ID.Hex(), Quantity: 1},
	))
	if err != nil {
		t.Fatalf("PlaceOrder: %v", err)
	}

	want := 9.5*2 + 3.25
	if order.TotalPrice != want {
		t.Errorf("total = %v, want %v", order.TotalPrice, want)
	}
	if len(fx.orders.inserted) != 1 {
		t.Fatalf("expected 1 persisted order, got %d", len(fx.orders.inserted))
	}
	if len(fx.foods.pushed) != 2 {
		t.Errorf("expected 2 back-refs, got %d", len(fx.foods.pushed))
	}
	if len(fx.rt.events) != 1 || fx.rt.events[0] != chat.EventNewOrder {
		t.Errorf("expected one new-order broadcast, got %v", fx.rt.events)
	}
}

func TestPlaceOrderSnapshotsFromStorageNotRequest(t *testing.T) {
	burger := newFood("burger", 9.5, true, false)
	fx := newFixture(t, burger)

	order, err := fx.svc.PlaceOrder(context.Background(), "ip", req(
		ItemRequest{Food: burger.ID.Hex(), Quantity: 1},
	))
	if err != nil {
		t.Fatal(err)
	}
	it := order.Items[0]
	if it.Name != "burger" || it.Price != 9.5 || it.Image != burger.Image {
		t.Errorf("snapshot does not match storage values: %+v", it)
	}

	// A later menu edit must not touch the persisted order.
	burger.Price = 99
	burger.Name = "deluxe burger"
	persisted := fx.orders.inserted[0].Items[0]
	if persisted.Price != 9.5 || persisted.Name != "burger" {
		t.Errorf("historical order mutated by menu edit: %+v", persisted)
	}
}

func TestPlaceOrderAtomicRejectionOnUnavailableItem(t *testing.T) {
	ok := newFood("ok", 5, true, false)
	soldOut := newFood("soldout", 5, false, false)
	fx := newFixture(t, ok, soldOut)

	_, err := fx.svc.PlaceOrder(context.Background(), "ip", req(
		ItemRequest{Food: ok.ID.Hex(), Quantity: 1},
		ItemRequest{Food: soldOut.ID.Hex(), Quantity: 1},
	))

	var unavailable *ItemUnavailableError
	if !errors.As(err, &unavailable) {
		t.Fatalf("expected ItemUnavailableError, got %v", err)
	}
	if unavailable.FoodID != soldOut.ID.Hex() {
		t.Errorf("error names wrong item: %s", unavailable.FoodID)
	}
	if len(fx.orders.inserted) != 0 {
		t.Error("no order may be persisted on partial failure")
	}
	if len(fx.foods.pushed) != 0 {
		t.Error("no back-ref may be written for the valid item")
	}
	if len(fx.rt.events) != 0 {
		t.Error("nothing may be broadcast")
	}
}

func TestPlaceOrderRejectsHiddenAndMissingItems(t *testing.T) {
	hidden := newFood("hidden", 5, true, true)
	fx := newFixture(t, hidden)

	if _, err := fx.svc.PlaceOrder(context.Background(), "ip", req(
		ItemRequest{Food: hidden.ID.Hex(), Quantity: 1},
	)); err == nil {
		t.Error("hidden item must be rejected")
	}

	if _, err := fx.svc.PlaceOrder(context.Background(), "ip", req(
		ItemRequest{Food: primitive.NewObjectID().Hex(), Quantity: 1},
	)); err == nil {
		t.Error("missing item must be rejected")
	}

	if _, err := fx.svc.PlaceOrder(context.Background(), "ip", req(
		ItemRequest{Food: "not-a-hex-id", Quantity: 1},
	)); err == nil {
		t.Error("malformed item id must be rejected")
	}
}

func TestPlaceOrderEmptyItems(t *testing.T) {
	fx := newFixture(t)
	_, err := fx.svc.PlaceOrder(context.Background(), "ip", req())
	if !errors.Is(err, ErrEmptyOrder) {
		t.Fatalf("expected ErrEmptyOrder, got %v", err)
	}
}

func TestPlaceOrderRateLimit(t *testing.T) {
	burger := newFood("burger", 9.5, true, false)
	fx := newFixture(t, burger)

	for i := 0; i < ratelimit.OrderLimit; i++ {
		if _, err := fx.svc.PlaceOrder(context.Background(), "1.1.1.1", req(
			ItemRequest{Food: burger.ID.Hex(), Quantity: 1},
		)); err != nil {
			t.Fatalf("order %d: %v", i+1, err)
		}
	}

	_, err := fx.svc.PlaceOrder(context.Background(), "1.1.1.1", req(
		ItemRequest{Food: burger.ID.Hex(), Quantity: 1},
	))
	if !errors.Is(err, ErrRateLimited) {
		t.Fatalf("expected ErrRateLimited, got %v", err)
	}
	if len(fx.orders.inserted) != ratelimit.OrderLimit {
		t.Errorf("persisted %d orders, want %d", len(fx.orders.inserted), ratelimit.OrderLimit)
	}

	blocked := fx.svc.Blocked()
	if ts := blocked["1.1.1.1"]; len(ts) != ratelimit.OrderLimit {
		t.Errorf("blocked view: got %d timestamps, want %d", len(ts), ratelimit.OrderLimit)
	}

	// Other addresses are unaffected.
	if _, err := fx.svc.PlaceOrder(context.Background(), "2.2.2.2", req(
		ItemRequest{Food: burger.ID.Hex(), Quantity: 1},
	)); err != nil {
		t.Errorf("other address should pass: %v", err)
	}
}

func TestRejectedValidationStillConsumesQuota(t *testing.T) {
	burger := newFood("burger", 9.5, true, false)
	fx := newFixture(t, burger)

	// Three empty submissions: each passes the limiter, then fails
	// validation. The quota is spent regardless.
	for i := 0; i < ratelimit.OrderLimit; i++ {
		if _, err := fx.svc.PlaceOrder(context.Background(), "ip", req()); !errors.Is(err, ErrEmptyOrder) {
			t.Fatalf("expected ErrEmptyOrder, got %v", err)
		}
	}

	_, err := fx.svc.PlaceOrder(context.Background(), "ip", req(
		ItemRequest{Food: burger.ID.Hex(), Quantity: 1},
	))
	if !errors.Is(err, ErrRateLimited) {
		t.Fatalf("valid order after three failed ones must be rate limited, got %v", err)
	}
}

func TestPlaceOrderPersistFailure(t *testing.T) {
	burger := newFood("burger", 9.5, true, false)
	fx := newFixture(t, burger)
	fx.orders.err = errors.New("db down")

	_, err := fx.svc.PlaceOrder(context.Background(), "ip", req(
		ItemRequest{Food: burger.ID.Hex(), Quantity: 1},
	))
	if err == nil {
		t.Fatal("expected persist error to propagate")
	}
	if len(fx.rt.events) != 0 {
		t.Error("failed persistence must not broadcast")
	}
	if len(fx.foods.pushed) != 0 {
		t.Error("failed persistence must not write back-refs")
	}
}
