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

// Food is one menu item. Hidden items stay in the catalog but are not
// orderable; Available toggles temporary sell-out.
type Food struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty" json:"_id"`
	Name        string               `bson:"name" json:"name"`
	Description string               `bson:"description" json:"description"`
	Price       float64              `bson:"price" json:"price"`
	Image       string               `bson:"image" json:"image"`
	Category    string               `bson:"category" json:"category"`
	Available   bool                 `bson:"available" json:"available"`
	Hidden      bool                 `bson:"hidden" json:"hidden"`
	Stock       int                  `bson:"stock" json:"stock"`
	Orders      []primitive.ObjectID `bson:"orders" json:"orders"` // back-refs to orders containing this item
	CreatedAt   time.Time            `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time            `bson:"updated_at" json:"updatedAt"`
}

func (f *Food) GetTableName() string {
	return "foods"
}

func (f *Food) Collection() *mongo.Collection {
	return mgo.GetDB().Collection(f.GetTableName())
}

// List returns the full catalog.
func (f *Food) List(ctx context.Context) ([]Food, error) {
	cur, err := f.Collection().Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make([]Food, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// FindByID returns the item or mongo.ErrNoDocuments.
func (f *Food) FindByID(ctx context.Context, id primitive.ObjectID) (*Food, error) {
	var out Food
	err := f.Collection().FindOne(ctx, bson.M{"_id": id}).Decode(&out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Insert stores a new item and fills in ID and timestamps.
func (f *Food) Insert(ctx context.Context, doc *Food) error {
	now := time.Now()
	doc.CreatedAt = now
	doc.UpdatedAt = now
	if doc.Orders == nil {
		doc.Orders = []primitive.ObjectID{}
	}
	res, err := f.Collection().InsertOne(ctx, doc)
	if err != nil {
		return err
	}
	doc.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// UpdateByID applies the given fields and returns the updated document.
func (f *Food) UpdateByID(ctx context.Context, id primitive.ObjectID, fields bson.M) (*Food, error) {
	fields["updated_at"] = time.Now()
	var out Food
	err := f.Collection().FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": fields},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (f *Food) DeleteByID(ctx context.Context, id primitive.ObjectID) error {
	_, err := f.Collection().DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// PushOrderRef appends an order id to the item's back-reference list.
func (f *Food) PushOrderRef(ctx context.Context, foodID, orderID primitive.ObjectID) error {
	_, err := f.Collection().UpdateOne(ctx,
		bson.M{"_id": foodID},
		bson.M{"$push": bson.M{"orders": orderID}},
	)
	return err
}

// DecrementStock lowers stock by quantity, flooring at zero, and returns
// the new stock value.
func (f *Food) DecrementStock(ctx context.Context, id primitive.ObjectID, quantity int) (int, error) {
	item, err := f.FindByID(ctx, id)
	if err != nil {
		return 0, err
	}
	stock := item.Stock - quantity
	if stock < 0 {
		stock = 0
	}
	_, err = f.Collection().UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"stock": stock, "updated_at": time.Now()}},
	)
	if err != nil {
		return 0, err
	}
	return stock, nil
}
