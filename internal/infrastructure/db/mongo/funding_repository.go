package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/donorhub/donorhub-api/internal/core/domain"
	"github.com/donorhub/donorhub-api/internal/core/ports"
)

const fundingsCollection = "fundings"

// FundingRepository implements ports.FundingRepository on MongoDB.
type FundingRepository struct {
	coll *mongo.Collection
}

func NewFundingRepository(db *mongo.Database) *FundingRepository {
	return &FundingRepository{coll: db.Collection(fundingsCollection)}
}

type mongoFunding struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	Email         string             `bson:"email"`
	Name          string             `bson:"name"`
	Amount        float64            `bson:"amount"`
	TransactionID string             `bson:"transaction_id,omitempty"`
	CreatedAt     time.Time          `bson:"created_at"`
}

func (mf *mongoFunding) toDomain() *domain.Funding {
	return &domain.Funding{
		ID:            mf.ID.Hex(),
		Email:         mf.Email,
		Name:          mf.Name,
		Amount:        mf.Amount,
		TransactionID: mf.TransactionID,
		CreatedAt:     mf.CreatedAt,
	}
}

func (r *FundingRepository) Create(ctx context.Context, f *domain.Funding) (*domain.Funding, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoFunding{
		Email:         f.Email,
		Name:          f.Name,
		Amount:        f.Amount,
		TransactionID: f.TransactionID,
		CreatedAt:     f.CreatedAt,
	}
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert funding: %w", err)
	}

	created := *f
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *FundingRepository) List(ctx context.Context, filter ports.ListFundingsFilter) ([]*domain.Funding, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	total, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, fmt.Errorf("count fundings: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((filter.Page - 1) * filter.Limit)).
		SetLimit(int64(filter.Limit))

	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list fundings: %w", err)
	}
	defer cur.Close(ctx)

	var items []*domain.Funding
	for cur.Next(ctx) {
		var mf mongoFunding
		if err := cur.Decode(&mf); err != nil {
			return nil, 0, fmt.Errorf("decode funding: %w", err)
		}
		items = append(items, mf.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate fundings: %w", err)
	}
	return items, total, nil
}

// Total sums all contribution amounts with a single $group stage.
func (r *FundingRepository) Total(ctx context.Context) (float64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := []bson.D{
		{{Key: "$group", Value: bson.M{
			"_id":   nil,
			"total": bson.M{"$sum": "$amount"},
		}}},
	}

	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("aggregate funding total: %w", err)
	}
	defer cur.Close(ctx)

	if !cur.Next(ctx) {
		// empty collection
		return 0, cur.Err()
	}

	var row struct {
		Total float64 `bson:"total"`
	}
	if err := cur.Decode(&row); err != nil {
		return 0, fmt.Errorf("decode funding total: %w", err)
	}
	return row.Total, nil
}
