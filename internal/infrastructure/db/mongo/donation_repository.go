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

	"github.com/donorhub/donorhub-api/internal/core/domain"
	"github.com/donorhub/donorhub-api/internal/core/ports"
)

const donationsCollection = "donation_requests"

// DonationRepository implements ports.DonationRepository on MongoDB.
type DonationRepository struct {
	coll *mongo.Collection
}

func NewDonationRepository(db *mongo.Database) *DonationRepository {
	return &DonationRepository{coll: db.Collection(donationsCollection)}
}

type mongoDonation struct {
	ID             primitive.ObjectID    `bson:"_id,omitempty"`
	RequesterEmail string                `bson:"requester_email"`
	RequesterName  string                `bson:"requester_name"`
	RecipientName  string                `bson:"recipient_name"`
	BloodGroup     string                `bson:"blood_group"`
	District       string                `bson:"district"`
	Upazila        string                `bson:"upazila,omitempty"`
	Hospital       string                `bson:"hospital"`
	Address        string                `bson:"address,omitempty"`
	DonationDate   string                `bson:"donation_date"`
	DonationTime   string                `bson:"donation_time"`
	Message        string                `bson:"message,omitempty"`
	Status         domain.DonationStatus `bson:"donation_status"`
	DonorInfo      *domain.DonorInfo     `bson:"donor_info,omitempty"`
	CreatedAt      time.Time             `bson:"created_at"`
	UpdatedAt      time.Time             `bson:"updated_at"`
}

func (md *mongoDonation) toDomain() *domain.DonationRequest {
	return &domain.DonationRequest{
		ID:             md.ID.Hex(),
		RequesterEmail: md.RequesterEmail,
		RequesterName:  md.RequesterName,
		RecipientName:  md.RecipientName,
		BloodGroup:     md.BloodGroup,
		District:       md.District,
		Upazila:        md.Upazila,
		Hospital:       md.Hospital,
		Address:        md.Address,
		DonationDate:   md.DonationDate,
		DonationTime:   md.DonationTime,
		Message:        md.Message,
		Status:         md.Status,
		DonorInfo:      md.DonorInfo,
		CreatedAt:      md.CreatedAt,
		UpdatedAt:      md.UpdatedAt,
	}
}

func (r *DonationRepository) Create(ctx context.Context, d *domain.DonationRequest) (*domain.DonationRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoDonation{
		RequesterEmail: d.RequesterEmail,
		RequesterName:  d.RequesterName,
		RecipientName:  d.RecipientName,
		BloodGroup:     d.BloodGroup,
		District:       d.District,
		Upazila:        d.Upazila,
		Hospital:       d.Hospital,
		Address:        d.Address,
		DonationDate:   d.DonationDate,
		DonationTime:   d.DonationTime,
		Message:        d.Message,
		Status:         d.Status,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert donation request: %w", err)
	}

	created := *d
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *DonationRepository) FindByID(ctx context.Context, id string) (*domain.DonationRequest, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrDonationNotFound
	}
	var md mongoDonation
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&md); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrDonationNotFound
		}
		return nil, fmt.Errorf("find donation request: %w", err)
	}
	return md.toDomain(), nil
}

func (r *DonationRepository) List(ctx context.Context, filter ports.ListDonationsFilter) ([]*domain.DonationRequest, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.Status != "" {
		query["donation_status"] = filter.Status
	}
	if filter.RequesterEmail != "" {
		query["requester_email"] = filter.RequesterEmail
	}

	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count donation requests: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((filter.Page - 1) * filter.Limit)).
		SetLimit(int64(filter.Limit))

	cur, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list donation requests: %w", err)
	}
	defer cur.Close(ctx)

	var items []*domain.DonationRequest
	for cur.Next(ctx) {
		var md mongoDonation
		if err := cur.Decode(&md); err != nil {
			return nil, 0, fmt.Errorf("decode donation request: %w", err)
		}
		items = append(items, md.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate donation requests: %w", err)
	}
	return items, total, nil
}

// Respond flips a still-pending request to inprogress and attaches the
// donor. The pending filter makes a repeated respond a zero-modified no-op.
func (r *DonationRepository) Respond(ctx context.Context, id string, donor domain.DonorInfo) (int64, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return 0, domain.ErrDonationNotFound
	}
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": oid, "donation_status": domain.DonationPending},
		bson.M{"$set": bson.M{
			"donation_status": domain.DonationInProgress,
			"donor_info":      donor,
			"updated_at":      time.Now().UTC(),
		}},
	)
	if err != nil {
		return 0, fmt.Errorf("respond to donation request: %w", err)
	}
	return res.ModifiedCount, nil
}

func (r *DonationRepository) UpdateStatus(ctx context.Context, id string, status domain.DonationStatus) (int64, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return 0, domain.ErrDonationNotFound
	}
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"donation_status": status, "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		return 0, fmt.Errorf("update donation status: %w", err)
	}
	if res.MatchedCount == 0 {
		return 0, domain.ErrDonationNotFound
	}
	return res.ModifiedCount, nil
}

func (r *DonationRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrDonationNotFound
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete donation request: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrDonationNotFound
	}
	return nil
}

// EnsureIndexes creates listing and ownership indexes.
func (r *DonationRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "donation_status", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "requester_email", Value: 1}}},
	}
	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
