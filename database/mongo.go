package database

import (
	"context"
	"log/slog"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var Client *mongo.Client
var DB *mongo.Database

func ConnectMongo() {
	uri := os.Getenv("MONGO_URI")
	dbName := os.Getenv("DB_NAME")

	if uri == "" || dbName == "" {
		slog.Error("MONGO_URI or DB_NAME not set in environment variables")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		slog.Error("MongoDB connection error", "error", err)
		os.Exit(1)
	}

	Client = client
	DB = client.Database(dbName)

	slog.Info("connected to MongoDB", "db", dbName)
}

var ProductCollection *mongo.Collection
var CategoryCollection *mongo.Collection
var CartCollection *mongo.Collection
var IntentCollection *mongo.Collection
var OrderCollection *mongo.Collection

func InitCollections() {
	ProductCollection = DB.Collection("products")
	CategoryCollection = DB.Collection("categories")
	CartCollection = DB.Collection("carts")
	IntentCollection = DB.Collection("payment_intents")
	OrderCollection = DB.Collection("orders")
}

// EnsureIndexes creates the indexes the stores rely on: one cart per
// user, unique category names, unique provider order ids and the
// per-user order listing index.
func EnsureIndexes(ctx context.Context) error {
	_, err := CartCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "userId", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}

	_, err = CategoryCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}

	_, err = IntentCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "providerOrderId", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}

	_, err = OrderCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}},
	})
	return err
}
