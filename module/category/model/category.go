package model

import (
	"context"

	"LandokProject/service/mgo"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Category groups menu items; Order controls display position.
type Category struct {
	ID    primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name  string             `bson:"name" json:"name"`
	Order int                `bson:"order" json:"order"`
}

func (c *Category) GetTableName() string {
	return "categories"
}

func (c *Category) Collection() *mongo.Collection {
	return mgo.GetDB().Collection(c.GetTableName())
}

// List returns all categories sorted by their display order.
func (c *Category) List(ctx context.Context) ([]Category, error) {
	cur, err := c.Collection().Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "order", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make([]Category, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Category) Insert(ctx context.Context, doc *Category) error {
	res, err := c.Collection().InsertOne(ctx, doc)
	if err != nil {
		return err
	}
	doc.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// UpdateOrder moves the category to a new position and returns it.
func (c *Category) UpdateOrder(ctx context.Context, id primitive.ObjectID, order int) (*Category, error) {
	var out Category
	err := c.Collection().FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"order": order}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Category) DeleteByID(ctx context.Context, id primitive.ObjectID) error {
	_, err := c.Collection().DeleteOne(ctx, bson.M{"_id": id})
	return err
}
