package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mediboard/hospital-system/internal/core/domain"
)

const recordsCollection = "records"

// RecordRepository implements ports.RecordRepository on MongoDB. All tables
// share one collection keyed by (table, record_id); each write touches a
// single document, replacing the whole-collection rewrite of a flat-file
// store.
type RecordRepository struct {
	coll *mongo.Collection
}

func NewRecordRepository(db *mongo.Database) *RecordRepository {
	return &RecordRepository{coll: db.Collection(recordsCollection)}
}

type mongoRecord struct {
	RecordID  string            `bson:"record_id"`
	Table     string            `bson:"table"`
	Fields    map[string]string `bson:"fields"`
	CreatedAt time.Time         `bson:"created_at"`
}

func (m mongoRecord) toDomain() domain.Record {
	return domain.Record{
		ID:        m.RecordID,
		Table:     m.Table,
		Fields:    m.Fields,
		CreatedAt: m.CreatedAt,
	}
}

// List returns every record of table in insertion order.
func (r *RecordRepository) List(ctx context.Context, table string) ([]domain.Record, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{"table": table}, opts)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", table, err)
	}
	defer cursor.Close(ctx)

	var records []domain.Record
	for cursor.Next(ctx) {
		var mr mongoRecord
		if err := cursor.Decode(&mr); err != nil {
			return nil, fmt.Errorf("decode %s record: %w", table, err)
		}
		records = append(records, mr.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", table, err)
	}
	return records, nil
}

func (r *RecordRepository) FindByID(ctx context.Context, table, id string) (*domain.Record, error) {
	var mr mongoRecord
	err := r.coll.FindOne(ctx, bson.M{"table": table, "record_id": id}).Decode(&mr)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrRecordNotFound
		}
		return nil, fmt.Errorf("find %s record: %w", table, err)
	}
	rec := mr.toDomain()
	return &rec, nil
}

func (r *RecordRepository) Insert(ctx context.Context, record *domain.Record) error {
	doc := mongoRecord{
		RecordID:  record.ID,
		Table:     record.Table,
		Fields:    record.Fields,
		CreatedAt: record.CreatedAt.UTC(),
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("%w: insert %s record: %v", domain.ErrStorage, record.Table, err)
	}
	return nil
}

func (r *RecordRepository) Update(ctx context.Context, table, id string, fields map[string]string) error {
	update := bson.M{"$set": bson.M{"fields": fields}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"table": table, "record_id": id}, update)
	if err != nil {
		return fmt.Errorf("%w: update %s record: %v", domain.ErrStorage, table, err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrRecordNotFound
	}
	return nil
}

func (r *RecordRepository) Delete(ctx context.Context, table, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"table": table, "record_id": id})
	if err != nil {
		return fmt.Errorf("%w: delete %s record: %v", domain.ErrStorage, table, err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrRecordNotFound
	}
	return nil
}

func (r *RecordRepository) Count(ctx context.Context, table string) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{"table": table})
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", table, err)
	}
	return n, nil
}

// EnsureIndexes creates the (table, record_id) lookup index.
func (r *RecordRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "table", Value: 1}, {Key: "record_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "table", Value: 1}, {Key: "created_at", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
