package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Category struct {
	ObjectID primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	CID      string             `bson:"cid" json:"cid" yaml:"cid"`
	Name     string             `bson:"name" json:"name" yaml:"name"`
	CPic     string             `bson:"cpic,omitempty" json:"cpic,omitempty" yaml:"cpic"`
	CDt      time.Time          `bson:"cdt" json:"cdt" yaml:"-"`
}

type Subcategory struct {
	ObjectID   primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	SCID       string             `bson:"scid" json:"scid" yaml:"scid"`
	Name       string             `bson:"name" json:"name" yaml:"name"`
	SCPic      string             `bson:"scpic,omitempty" json:"scpic,omitempty" yaml:"scpic"`
	CategoryID string             `bson:"categoryId" json:"categoryId" yaml:"categoryId"`
	CDt        time.Time          `bson:"cdt" json:"cdt" yaml:"-"`
}

type Banner struct {
	ObjectID  primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	ImageURL  string             `bson:"imageUrl" json:"imageUrl" yaml:"imageUrl"`
	Weight    int                `bson:"weight" json:"weight" yaml:"weight"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt" yaml:"-"`
}
