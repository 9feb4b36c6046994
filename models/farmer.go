package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type FarmerStatus string

const (
	FarmerStatusPending  FarmerStatus = "pending"
	FarmerStatusApproved FarmerStatus = "approved"
	FarmerStatusRejected FarmerStatus = "rejected"
)

// FarmerProfile is the onboarding record moderated by admins. A user may
// have at most one profile; only approved farmers can list products.
type FarmerProfile struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID          primitive.ObjectID `bson:"userId" json:"userId"`
	FarmName        string             `bson:"farmName" json:"farmName"`
	Bio             string             `bson:"bio,omitempty" json:"bio,omitempty"`
	Location        string             `bson:"location" json:"location"`
	Latitude        float64            `bson:"latitude,omitempty" json:"latitude,omitempty"`
	Longitude       float64            `bson:"longitude,omitempty" json:"longitude,omitempty"`
	Status          FarmerStatus       `bson:"status" json:"status"`
	RejectionReason string             `bson:"rejectionReason,omitempty" json:"rejectionReason,omitempty"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}
