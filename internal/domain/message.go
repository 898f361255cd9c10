package domain

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Broadcast is the reserved recipient meaning "everyone in the room".
// It is never a valid sender name.
const Broadcast = "Todos"

const (
	TypeStatus  = "status"          // system-generated join/leave
	TypeChat    = "message"         // public chat
	TypePrivate = "private_message" // addressed chat
)

// TimeLayout is the wall-clock format of Message.Time.
const TimeLayout = "15:04:05"

// Message is immutable once stored. Ordering relies on _id insertion
// order; Time is display-only and not sortable.
type Message struct {
	ID   primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	From string             `bson:"from" json:"from"`
	To   string             `bson:"to"   json:"to"`
	Text string             `bson:"text" json:"text"`
	Type string             `bson:"type" json:"type"`
	Time string             `bson:"time" json:"time"`
}

const (
	JoinText  = "entra na sala..."
	LeaveText = "sai da sala..."
)
