package model

import (
	"context"
	"time"

	"LandokProject/service/mgo"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Order status values.
const (
	StatusPending   = "pending"
	StatusPreparing = "preparing"
	StatusDelivered = "delivered"
	StatusCancelled = "cancelled"
)

// OrderItem carries a snapshot of the menu item at submission time, so
// later catalog edits never alter a historical order.
type OrderItem struct {
	Food     primitive.ObjectID `bson:"food" json:"food"`
	FoodID   primitive.ObjectID `bson:"food_id" json:"foodId"`
	Quantity int                `bson:"quantity" json:"quantity"`
	Name     string             `bson:"name" json:"name"`
	Price    float64            `bson:"price" json:"price"`
	Image    string             `bson:"image" json:"image"`
}

type Order struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Items           []OrderItem        `bson:"items" json:"items"`
	TotalPrice      float64            `bson:"total_price" json:"totalPrice"`
	CustomerName    string             `bson:"customer_name" json:"customerName"`
	CustomerPhone   string             `bson:"customer_phone" json:"customerPhone"`
	CustomerAddress string             `bson:"customer_address" json:"customerAddress"`
	Status          string             `bson:"status" json:"status"`
	CreatedAt       time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updated_at" json:"updatedAt"`
}

func (o *Order) GetTableName() string {
	return "orders"
}

func (o *Order) Collection() *mongo.Collection {
	return mgo.GetDB().Collection(o.GetTableName())
}

// Insert persists the order, filling ID, status and timestamps.
func (o *Order) Insert(ctx context.Context, doc *Order) error {
	now := time.Now()
	doc.CreatedAt = now
	doc.UpdatedAt = now
	if doc.Status == "" {
		doc.Status = StatusPending
	}
	res, err := o.Collection().InsertOne(ctx, doc)
	if err != nil {
		return err
	}
	doc.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// List returns all orders, newest first.
func (o *Order) List(ctx context.Context) ([]Order, error) {
	cur, err := o.Collection().Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make([]Order, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateStatus moves the order to a new status and returns it.
func (o *Order) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) (*Order, error) {
	var out Order
	err := o.Collection().FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": status, "updated_at": time.Now()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (o *Order) DeleteByID(ctx context.Context, id primitive.ObjectID) error {
	_, err := o.Collection().DeleteOne(ctx, bson.M{"_id": id})
	return err
}
