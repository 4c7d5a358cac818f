package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ShipmentItemDocument is one product line of a stored shipment.
type ShipmentItemDocument struct {
	ProductID int `bson:"product_id"`
	Quantity  int `bson:"quantity"`
}

// ShipmentDocument represents a shipped package in MongoDB.
type ShipmentDocument struct {
	ID         primitive.ObjectID     `bson:"_id,omitempty"`
	ShipmentID string                 `bson:"shipment_id"`
	OrderID    int                    `bson:"order_id"`
	Items      []ShipmentItemDocument `bson:"items"`
	MassGrams  int                    `bson:"mass_g"`
	ShippedAt  time.Time              `bson:"shipped_at"`
	RecordedAt time.Time              `bson:"recorded_at"`
}

// ShipmentsRepository stores shipment records.
type ShipmentsRepository struct {
	collection *mongo.Collection
}

// NewShipmentsRepository creates a new shipments repository.
func NewShipmentsRepository(db *MongoDB) *ShipmentsRepository {
	return &ShipmentsRepository{
		collection: db.Shipments,
	}
}

func prepareShipment(doc *ShipmentDocument) {
	if doc.ID.IsZero() {
		doc.ID = primitive.NewObjectID()
	}
	if doc.RecordedAt.IsZero() {
		doc.RecordedAt = time.Now().UTC()
	}
}

// Create inserts a shipment document.
func (r *ShipmentsRepository) Create(ctx context.Context, doc *ShipmentDocument) error {
	prepareShipment(doc)
	_, err := r.collection.InsertOne(ctx, doc)
	return err
}

// CreateMany inserts shipment documents in bulk.
func (r *ShipmentsRepository) CreateMany(ctx context.Context, docs []*ShipmentDocument) error {
	if len(docs) == 0 {
		return nil
	}

	batch := make([]interface{}, len(docs))
	for i, doc := range docs {
		prepareShipment(doc)
		batch[i] = doc
	}

	_, err := r.collection.InsertMany(ctx, batch, options.InsertMany().SetOrdered(false))
	return err
}

// ListByOrder returns the shipments of an order, oldest first.
func (r *ShipmentsRepository) ListByOrder(ctx context.Context, orderID int, limit int) ([]*ShipmentDocument, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "shipped_at", Value: 1}})
	if limit > 0 {
		findOptions.SetLimit(int64(limit))
	}

	cursor, err := r.collection.Find(ctx, bson.M{"order_id": orderID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	docs := make([]*ShipmentDocument, 0)
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

// CountByOrder returns the number of shipments recorded for an order.
func (r *ShipmentsRepository) CountByOrder(ctx context.Context, orderID int) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"order_id": orderID})
}
