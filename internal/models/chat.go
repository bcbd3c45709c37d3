package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Message struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	RequestID string             `bson:"requestId" json:"requestId"`
	Msg       string             `bson:"msg" json:"msg"`
	UserID    string             `bson:"userId" json:"userId"`
	UserName  string             `bson:"userName" json:"userName"`
	URL       string             `bson:"url,omitempty" json:"url,omitempty"`
	CDt       time.Time          `bson:"cDt" json:"cDt"`
}

type ChatParticipant struct {
	ID         string `bson:"id" json:"id" validate:"required"`
	Name       string `bson:"Name" json:"Name" validate:"required"`
	Profilepic string `bson:"Profilepic,omitempty" json:"Profilepic,omitempty"`
	Mobile     string `bson:"Mobile,omitempty" json:"Mobile,omitempty"`
}

// ChatList is the per-request conversation summary.
type ChatList struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	RequestID     string             `bson:"requestid" json:"requestid"`
	LatestMsg     string             `bson:"LatestMsg,omitempty" json:"LatestMsg,omitempty"`
	LatestMsgTime *time.Time         `bson:"Latest_msg_time,omitempty" json:"Latest_msg_time,omitempty"`
	Users         []ChatParticipant  `bson:"Users_array" json:"Users_array"`
	CDt           time.Time          `bson:"cDt" json:"cDt"`
}
