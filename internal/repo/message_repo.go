package repo

import (
	"context"

	"github.com/LauraSouzaCastro/projeto13-batepapo-uol-api/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (s *Store) InsertMessage(ctx context.Context, m *domain.Message) error {
	res, err := s.colMessages.InsertOne(ctx, m)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		m.ID = oid
	}
	return nil
}

// visibilityFilter selects what user may read: their own messages in
// either direction, public chat, and anything sent to the broadcast name.
func visibilityFilter(user string) bson.M {
	return bson.M{"$or": bson.A{
		bson.M{"from": user},
		bson.M{"to": user},
		bson.M{"type": domain.TypeChat},
		bson.M{"to": domain.Broadcast},
	}}
}

// ListMessagesFor returns user's visible history in insertion order.
// limit <= 0 means no cap; a capped query selects the limit most recent
// documents and reverses them back to chronological order, so callers
// see one canonical ordering either way.
func (s *Store) ListMessagesFor(ctx context.Context, user string, limit int64) ([]domain.Message, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	if limit > 0 {
		opts = options.Find().
			SetSort(bson.D{{Key: "_id", Value: -1}}).
			SetLimit(limit)
	}

	cur, err := s.colMessages.Find(ctx, visibilityFilter(user), opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []domain.Message
	for cur.Next(ctx) {
		var m domain.Message
		if err := cur.Decode(&m); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}

	if limit > 0 {
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}
	return out, nil
}
