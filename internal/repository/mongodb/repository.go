package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/warewise/slotkeeper/internal/domain/models"
)

// ErrNotFound signals a lookup or delete against a document that does not exist.
var ErrNotFound = errors.New("document not found")

// Repository defines the persistence operations the services depend on.
type Repository interface {
	ListLots(ctx context.Context) ([]models.Lot, error)
	FindLot(ctx context.Context, id string) (models.Lot, error)
	UpsertLot(ctx context.Context, lot models.Lot) error
	DeleteLot(ctx context.Context, id string) error
	AppendAudit(ctx context.Context, record models.AuditRecord) error
	ListAudit(ctx context.Context, filter models.AuditFilter) ([]models.AuditRecord, error)
	ListCatalog(ctx context.Context) ([]models.MasterProduct, error)
	UpsertCatalogEntry(ctx context.Context, product models.MasterProduct) error
	DeleteCatalogEntry(ctx context.Context, id string) error
	SaveSnapshot(ctx context.Context, snapshot models.StockSnapshot) error
}

// MongoDBRepository implements Repository on top of MongoDB collections.
type MongoDBRepository struct {
	client *mongo.Client
	dbName string
}

const (
	lotsCollection      = "lots"
	auditCollection     = "audit_records"
	catalogCollection   = "catalog"
	snapshotsCollection = "stock_snapshots"
)

// NewMongoDBRepository connects to MongoDB and verifies the connection.
func NewMongoDBRepository(ctx context.Context, uri string, dbName string) (*MongoDBRepository, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	// Ping the database to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &MongoDBRepository{client: client, dbName: dbName}, nil
}

func (r *MongoDBRepository) collection(name string) *mongo.Collection {
	return r.client.Database(r.dbName).Collection(name)
}

// ListLots returns the full lot collection.
func (r *MongoDBRepository) ListLots(ctx context.Context) ([]models.Lot, error) {
	cursor, err := r.collection(lotsCollection).Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list lots: %w", err)
	}

	var lots []models.Lot
	if err := cursor.All(ctx, &lots); err != nil {
		return nil, fmt.Errorf("failed to decode lots: %w", err)
	}
	return lots, nil
}

// FindLot returns one lot by id, or ErrNotFound.
func (r *MongoDBRepository) FindLot(ctx context.Context, id string) (models.Lot, error) {
	var lot models.Lot
	err := r.collection(lotsCollection).FindOne(ctx, bson.M{"_id": id}).Decode(&lot)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Lot{}, fmt.Errorf("lot %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return models.Lot{}, fmt.Errorf("failed to find lot %s: %w", id, err)
	}
	return lot, nil
}

// UpsertLot inserts or replaces a lot document keyed by id.
func (r *MongoDBRepository) UpsertLot(ctx context.Context, lot models.Lot) error {
	opts := options.Replace().SetUpsert(true)
	_, err := r.collection(lotsCollection).ReplaceOne(ctx, bson.M{"_id": lot.ID}, lot, opts)
	if err != nil {
		return fmt.Errorf("failed to upsert lot %s: %w", lot.ID, err)
	}
	return nil
}

// DeleteLot removes a lot document. Deleting a missing lot is ErrNotFound.
func (r *MongoDBRepository) DeleteLot(ctx context.Context, id string) error {
	res, err := r.collection(lotsCollection).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete lot %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("lot %s: %w", id, ErrNotFound)
	}
	return nil
}

// AppendAudit stores one immutable audit record.
func (r *MongoDBRepository) AppendAudit(ctx context.Context, record models.AuditRecord) error {
	if _, err := r.collection(auditCollection).InsertOne(ctx, record); err != nil {
		return fmt.Errorf("failed to append audit record: %w", err)
	}
	return nil
}

// ListAudit returns audit records newest-first, narrowed by the filter.
func (r *MongoDBRepository) ListAudit(ctx context.Context, filter models.AuditFilter) ([]models.AuditRecord, error) {
	query := bson.M{}
	if filter.Actor != "" {
		query["actor"] = filter.Actor
	}
	if filter.Action != "" {
		query["action"] = filter.Action
	}
	if !filter.Since.IsZero() {
		query["created_at"] = bson.M{"$gte": filter.Since}
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if filter.Limit > 0 {
		opts.SetLimit(filter.Limit)
	}

	cursor, err := r.collection(auditCollection).Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit records: %w", err)
	}

	var records []models.AuditRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("failed to decode audit records: %w", err)
	}
	return records, nil
}

// ListCatalog returns every master product, name ascending.
func (r *MongoDBRepository) ListCatalog(ctx context.Context) ([]models.MasterProduct, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := r.collection(catalogCollection).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list catalog: %w", err)
	}

	var products []models.MasterProduct
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}
	return products, nil
}

// UpsertCatalogEntry inserts or replaces one master product.
func (r *MongoDBRepository) UpsertCatalogEntry(ctx context.Context, product models.MasterProduct) error {
	opts := options.Replace().SetUpsert(true)
	_, err := r.collection(catalogCollection).ReplaceOne(ctx, bson.M{"_id": product.ID}, product, opts)
	if err != nil {
		return fmt.Errorf("failed to upsert catalog entry %s: %w", product.ID, err)
	}
	return nil
}

// DeleteCatalogEntry removes one master product.
func (r *MongoDBRepository) DeleteCatalogEntry(ctx context.Context, id string) error {
	res, err := r.collection(catalogCollection).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete catalog entry %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("catalog entry %s: %w", id, ErrNotFound)
	}
	return nil
}

// SaveSnapshot stores a daily stock snapshot.
func (r *MongoDBRepository) SaveSnapshot(ctx context.Context, snapshot models.StockSnapshot) error {
	if _, err := r.collection(snapshotsCollection).InsertOne(ctx, snapshot); err != nil {
		return fmt.Errorf("failed to insert stock snapshot: %w", err)
	}
	return nil
}

// Close closes the MongoDB connection.
func (r *MongoDBRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}
