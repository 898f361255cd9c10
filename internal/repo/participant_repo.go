package repo

import (
	"context"
	"errors"
	"time"

	"github.com/LauraSouzaCastro/projeto13-batepapo-uol-api/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ErrNameTaken = errors.New("name already taken")
	ErrNotFound  = errors.New("not found")
)

func (s *Store) InsertParticipant(ctx context.Context, p *domain.Participant) error {
	res, err := s.colParticipants.InsertOne(ctx, p)
	if IsDup(err) {
		return ErrNameTaken
	}
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		p.ID = oid
	}
	return nil
}

func (s *Store) ListParticipants(ctx context.Context) ([]domain.Participant, error) {
	cur, err := s.colParticipants.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}),
	)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []domain.Participant
	for cur.Next(ctx) {
		var p domain.Participant
		if err := cur.Decode(&p); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, cur.Err()
}

// FindParticipantByName returns (nil, nil) when no participant exists.
func (s *Store) FindParticipantByName(ctx context.Context, name string) (*domain.Participant, error) {
	var p domain.Participant
	err := s.colParticipants.FindOne(ctx, bson.M{"name": name}).Decode(&p)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// TouchParticipant refreshes lastSeenAt in a single update; a zero match
// count is the not-found signal, there is no separate lookup.
func (s *Store) TouchParticipant(ctx context.Context, name string, seen time.Time) error {
	res, err := s.colParticipants.UpdateOne(ctx,
		bson.M{"name": name},
		bson.M{"$set": bson.M{"lastSeenAt": seen}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) FindStaleParticipants(ctx context.Context, cutoff time.Time) ([]domain.Participant, error) {
	cur, err := s.colParticipants.Find(ctx, bson.M{"lastSeenAt": bson.M{"$lt": cutoff}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []domain.Participant
	for cur.Next(ctx) {
		var p domain.Participant
		if err := cur.Decode(&p); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, cur.Err()
}

func (s *Store) DeleteParticipantByName(ctx context.Context, name string) (bool, error) {
	res, err := s.colParticipants.DeleteOne(ctx, bson.M{"name": name})
	if err != nil {
		return false, err
	}
	return res.DeletedCount == 1, nil
}
