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

// Image records one uploaded asset: the CDN URL the menu references and
// the provider's public ID needed to delete it again.
type Image struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	URL       string             `bson:"url" json:"url"`
	PublicID  string             `bson:"public_id" json:"public_id"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updatedAt"`
}

func (m *Image) GetTableName() string {
	return "images"
}

func (m *Image) Collection() *mongo.Collection {
	return mgo.GetDB().Collection(m.GetTableName())
}

func (m *Image) Insert(ctx context.Context, doc *Image) error {
	now := time.Now()
	doc.CreatedAt = now
	doc.UpdatedAt = now
	res, err := m.Collection().InsertOne(ctx, doc)
	if err != nil {
		return err
	}
	doc.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// List returns every image record, newest first.
func (m *Image) List(ctx context.Context) ([]Image, error) {
	cur, err := m.Collection().Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make([]Image, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteByPublicID removes the record for the given provider public ID;
// returns false when no record matched.
func (m *Image) DeleteByPublicID(ctx context.Context, publicID string) (bool, error) {
	res, err := m.Collection().DeleteOne(ctx, bson.M{"public_id": publicID})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}
