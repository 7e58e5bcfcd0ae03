package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mediboard/hospital-system/internal/core/domain"
)

const auditCollection = "audit_log"

// AuditRepository implements ports.AuditRepository on MongoDB. The collection
// is insert-only; no update or delete is exposed.
type AuditRepository struct {
	coll *mongo.Collection
}

// NewAuditRepository creates an AuditRepository over the audit_log collection.
func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{coll: db.Collection(auditCollection)}
}

type mongoAuditEntry struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Actor     string             `bson:"actor"`
	Action    string             `bson:"action"`
	Details   string             `bson:"details,omitempty"`
	Timestamp time.Time          `bson:"timestamp"`
}

// Insert appends one entry. Each insert is atomic at single-entry
// granularity, so concurrent appends cannot interleave mid-record.
func (r *AuditRepository) Insert(ctx context.Context, entry *domain.AuditEntry) error {
	doc := mongoAuditEntry{
		Actor:     entry.Actor,
		Action:    entry.Action,
		Details:   entry.Details,
		Timestamp: entry.Timestamp.UTC(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("%w: insert audit entry: %v", domain.ErrStorage, err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		entry.ID = oid.Hex()
	}
	return nil
}

// List returns the full history sorted most recent first. The ObjectID is the
// secondary sort key so entries sharing a timestamp keep a consistent order.
func (r *AuditRepository) List(ctx context.Context) ([]domain.AuditEntry, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "timestamp", Value: -1},
		{Key: "_id", Value: -1},
	})

	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: list audit entries: %v", domain.ErrCorruptStore, err)
	}
	defer cursor.Close(ctx)

	var entries []domain.AuditEntry
	for cursor.Next(ctx) {
		var me mongoAuditEntry
		if err := cursor.Decode(&me); err != nil {
			return nil, fmt.Errorf("%w: decode audit entry: %v", domain.ErrCorruptStore, err)
		}
		entries = append(entries, domain.AuditEntry{
			ID:        me.ID.Hex(),
			Actor:     me.Actor,
			Action:    me.Action,
			Details:   me.Details,
			Timestamp: me.Timestamp,
		})
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate audit entries: %v", domain.ErrCorruptStore, err)
	}
	return entries, nil
}

// EnsureIndexes creates the timestamp index used by List.
func (r *AuditRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "timestamp", Value: -1}},
	})
	return err
}
