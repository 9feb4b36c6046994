package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ProductCategory string

const (
	CategoryVegetables ProductCategory = "vegetables"
	CategoryFruits     ProductCategory = "fruits"
	CategoryGrains     ProductCategory = "grains"
	CategoryDairy      ProductCategory = "dairy"
	CategoryOther      ProductCategory = "other"
)

type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FarmerID    primitive.ObjectID `bson:"farmerId" json:"farmerId"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description" json:"description"`
	Category    ProductCategory    `bson:"category" json:"category"`
	Price       float64            `bson:"price" json:"price"` // per unit
	Unit        string             `bson:"unit" json:"unit"`   // kg/dozen/litre
	Quantity    int                `bson:"quantity" json:"quantity"`
	ImageURL    string             `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	Location    string             `bson:"location,omitempty" json:"location,omitempty"`
	Latitude    float64            `bson:"latitude,omitempty" json:"latitude,omitempty"`
	Longitude   float64            `bson:"longitude,omitempty" json:"longitude,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}
