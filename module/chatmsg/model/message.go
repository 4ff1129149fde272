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

// AdminReceiver is the default receiver: customer messages land in the
// admin inbox unless they address someone else.
const AdminReceiver = "admin"

// ChatMessage is one persisted chat line. Timestamp is the client's own
// clock as a string and is display-only; server-side ordering always uses
// CreatedAt.
type ChatMessage struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Sender    string             `bson:"sender" json:"sender"`
	Receiver  string             `bson:"receiver" json:"receiver"`
	Content   string             `bson:"content" json:"content"`
	Timestamp string             `bson:"timestamp" json:"timestamp"`
	Seen      bool               `bson:"seen" json:"seen"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updatedAt"`
}

// InboxThread is one row of the admin inbox: the latest message per sender.
type InboxThread struct {
	Sender      string      `bson:"_id" json:"_id"`
	LastMessage ChatMessage `bson:"lastMessage" json:"lastMessage"`
}

func (m *ChatMessage) GetTableName() string {
	return "chats"
}

func (m *ChatMessage) Collection() *mongo.Collection {
	return mgo.GetDB().Collection(m.GetTableName())
}

// Insert persists a message, filling ID and timestamps.
func (m *ChatMessage) Insert(ctx context.Context, doc *ChatMessage) error {
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

// ListAll returns every message, oldest first.
func (m *ChatMessage) ListAll(ctx context.Context) ([]ChatMessage, error) {
	cur, err := m.Collection().Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make([]ChatMessage, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Conversation returns the two-way thread between sender and the admin,
// oldest first.
func (m *ChatMessage) Conversation(ctx context.Context, sender string) ([]ChatMessage, error) {
	cur, err := m.Collection().Find(ctx, bson.M{
		"$or": bson.A{
			bson.M{"sender": sender, "receiver": AdminReceiver},
			bson.M{"sender": AdminReceiver, "receiver": sender},
		},
	}, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make([]ChatMessage, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// MarkSeen flags every unseen message from sender to the admin and
// returns how many were updated.
func (m *ChatMessage) MarkSeen(ctx context.Context, sender string) (int64, error) {
	res, err := m.Collection().UpdateMany(ctx,
		bson.M{"sender": sender, "receiver": AdminReceiver, "seen": false},
		bson.M{"$set": bson.M{"seen": true, "updated_at": time.Now()}},
	)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

// Inbox aggregates the latest message per sender addressed to the admin,
// most recent thread first.
func (m *ChatMessage) Inbox(ctx context.Context) ([]InboxThread, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"receiver": AdminReceiver}}},
		{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: -1}}}},
		{{Key: "$group", Value: bson.M{
			"_id":         "$sender",
			"lastMessage": bson.M{"$first": "$$ROOT"},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "lastMessage.created_at", Value: -1}}}},
	}
	cur, err := m.Collection().Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make([]InboxThread, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteByID removes one message; returns false when it did not exist.
func (m *ChatMessage) DeleteByID(ctx context.Context, id primitive.ObjectID) (bool, error) {
	res, err := m.Collection().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

// DeleteThread removes every message between sender and the admin in both
// directions; returns the count removed.
func (m *ChatMessage) DeleteThread(ctx context.Context, sender string) (int64, error) {
	res, err := m.Collection().DeleteMany(ctx, bson.M{
		"$or": bson.A{
			bson.M{"sender": sender, "receiver": AdminReceiver},
			bson.M{"sender": AdminReceiver, "receiver": sender},
		},
	})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
