package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Image is a media-host reference. BlurHash is the placeholder the
// host derives from the uploaded image URL.
type Image struct {
	URL      string `bson:"url" json:"url"`
	PublicID string `bson:"publicId" json:"publicId"`
	BlurHash string `bson:"blurHash,omitempty" json:"blurHash,omitempty"`
}

// Asset is the downloadable file a buyer receives. It is stripped
// from public product reads and only exposed to the owner, admins and
// buyers with a matching order.
type Asset struct {
	URL      string `bson:"url" json:"url"`
	PublicID string `bson:"publicId" json:"publicId"`
}

// Product price is stored in minor units (cents). Decimal strings
// exist only at the API boundary, see price.go.
type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OwnerID     primitive.ObjectID `bson:"owner" json:"owner"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	PriceMinor  int64              `bson:"priceMinor" json:"-"`
	CategoryID  primitive.ObjectID `bson:"category" json:"category"`
	Thumbnail   Image              `bson:"thumbnail" json:"thumbnail"`
	Asset       Asset              `bson:"asset,omitempty" json:"-"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}
