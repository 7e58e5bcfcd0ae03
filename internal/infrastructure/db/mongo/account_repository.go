package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mediboard/hospital-system/internal/core/domain"
)

const accountsCollection = "accounts"

// AccountRepository implements ports.AccountRepository on MongoDB. The unique
// index on username enforces the shared admin+staff namespace across
// processes.
type AccountRepository struct {
	coll *mongo.Collection
}

func NewAccountRepository(db *mongo.Database) *AccountRepository {
	return &AccountRepository{coll: db.Collection(accountsCollection)}
}

type mongoAccount struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	Username   string             `bson:"username"`
	SecretHash string             `bson:"secret_hash"`
	Role       string             `bson:"role"`
	CreatedAt  int64              `bson:"created_at"`
	LastLogin  int64              `bson:"last_login,omitempty"`
}

func (r *AccountRepository) Create(ctx context.Context, account *domain.Account) (*domain.Account, error) {
	doc := mongoAccount{
		Username:   account.Username,
		SecretHash: account.SecretHash,
		Role:       account.Role,
		CreatedAt:  account.CreatedAt.Unix(),
	}

	_, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrDuplicateUsername
		}
		return nil, fmt.Errorf("%w: insert account: %v", domain.ErrStorage, err)
	}

	// fetch back to get ID
	created, err := r.FindByUsername(ctx, account.Username)
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (r *AccountRepository) FindByUsername(ctx context.Context, username string) (*domain.Account, error) {
	var ma mongoAccount
	if err := r.coll.FindOne(ctx, bson.M{"username": username}).Decode(&ma); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("%w: find account: %v", domain.ErrCorruptStore, err)
	}
	if ma.Username == "" || ma.SecretHash == "" || ma.Role == "" {
		return nil, fmt.Errorf("%w: account %q missing required fields", domain.ErrCorruptStore, username)
	}

	return &domain.Account{
		ID:         ma.ID.Hex(),
		Username:   ma.Username,
		SecretHash: ma.SecretHash,
		Role:       ma.Role,
		CreatedAt:  unixToTime(ma.CreatedAt),
		LastLogin:  unixToTime(ma.LastLogin),
	}, nil
}

func (r *AccountRepository) CountByRole(ctx context.Context, role string) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{"role": role})
	if err != nil {
		return 0, fmt.Errorf("%w: count accounts: %v", domain.ErrCorruptStore, err)
	}
	return n, nil
}

func (r *AccountRepository) UpdateLastLogin(ctx context.Context, username string) error {
	update := bson.M{"$set": bson.M{"last_login": time.Now().UTC().Unix()}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"username": username}, update)
	if err != nil {
		return fmt.Errorf("%w: update last_login: %v", domain.ErrStorage, err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

// EnsureIndexes creates the unique username index on the accounts collection.
func (r *AccountRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "role", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}

func unixToTime(ts int64) time.Time {
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0).UTC()
}
