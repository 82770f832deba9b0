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
)

const auditCollection = "audit_log"

// AuditRepository implements ports.AuditRepository on MongoDB.
type AuditRepository struct {
	coll *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{coll: db.Collection(auditCollection)}
}

func (r *AuditRepository) Insert(ctx context.Context, entry *domain.AuditEntry) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := bson.M{
		"actor_email": entry.ActorEmail,
		"subject":     entry.Subject,
		"action":      entry.Action,
		"timestamp":   entry.Timestamp.UTC(),
	}
	if entry.Detail != "" {
		doc["detail"] = entry.Detail
	}

	_, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}

func (r *AuditRepository) List(ctx context.Context, subject string, page, limit int) ([]*domain.AuditEntry, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if subject != "" {
		query["subject"] = subject
	}

	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count audit entries: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cur, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list audit entries: %w", err)
	}
	defer cur.Close(ctx)

	var items []*domain.AuditEntry
	for cur.Next(ctx) {
		var row struct {
			ID         primitive.ObjectID `bson:"_id"`
			ActorEmail string             `bson:"actor_email"`
			Subject    string             `bson:"subject"`
			Action     string             `bson:"action"`
			Detail     string             `bson:"detail,omitempty"`
			Timestamp  time.Time          `bson:"timestamp"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, 0, fmt.Errorf("decode audit entry: %w", err)
		}
		items = append(items, &domain.AuditEntry{
			ID:         row.ID.Hex(),
			ActorEmail: row.ActorEmail,
			Subject:    row.Subject,
			Action:     row.Action,
			Detail:     row.Detail,
			Timestamp:  row.Timestamp,
		})
	}
	if err := cur.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate audit entries: %w", err)
	}
	return items, total, nil
}

// EnsureIndexes creates the subject/time lookup index.
func (r *AuditRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "subject", Value: 1}, {Key: "timestamp", Value: -1}},
	})
	return err
}
