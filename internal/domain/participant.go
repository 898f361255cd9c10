package domain

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
	"time"
)

type Participant struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	Name       string             `bson:"name"       json:"name"`
	LastSeenAt time.Time          `bson:"lastSeenAt" json:"lastSeenAt"`
}
