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

const usersCollection = "users"

// UserRepository implements ports.UserRepository on MongoDB.
type UserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{coll: db.Collection(usersCollection)}
}

type mongoRoleRequest struct {
	Type        string    `bson:"type"`
	Status      string    `bson:"status"`
	RequestedAt time.Time `bson:"requested_at"`
}

type mongoUser struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Email       string             `bson:"email"`
	Name        string             `bson:"name,omitempty"`
	Role        string             `bson:"role"`
	Status      string             `bson:"status"`
	RoleRequest *mongoRoleRequest  `bson:"role_request,omitempty"`
	LoginCount  int64              `bson:"login_count"`
	BloodGroup  string             `bson:"blood_group,omitempty"`
	District    string             `bson:"district,omitempty"`
	Upazila     string             `bson:"upazila,omitempty"`
	ShopName    string             `bson:"shop_name,omitempty"`
	ShopAddress string             `bson:"shop_address,omitempty"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

func (mu *mongoUser) toDomain() *domain.User {
	u := &domain.User{
		ID:          mu.ID.Hex(),
		Email:       mu.Email,
		Name:        mu.Name,
		Role:        domain.Role(mu.Role),
		Status:      mu.Status,
		LoginCount:  mu.LoginCount,
		BloodGroup:  mu.BloodGroup,
		District:    mu.District,
		Upazila:     mu.Upazila,
		ShopName:    mu.ShopName,
		ShopAddress: mu.ShopAddress,
		CreatedAt:   mu.CreatedAt,
		UpdatedAt:   mu.UpdatedAt,
	}
	if mu.RoleRequest != nil {
		u.RoleRequest = &domain.RoleRequest{
			Type:        domain.Role(mu.RoleRequest.Type),
			Status:      mu.RoleRequest.Status,
			RequestedAt: mu.RoleRequest.RequestedAt,
		}
	}
	return u
}

// UpsertLogin performs the single atomic login write keyed on email:
// $setOnInsert seeds the default grants, $inc counts the login. Using the
// driver's native upsert removes the find-then-insert race entirely.
func (r *UserRepository) UpsertLogin(ctx context.Context, identity ports.Identity) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	now := time.Now().UTC()
	update := bson.M{
		"$inc": bson.M{"login_count": 1},
		"$set": bson.M{"updated_at": now},
		"$setOnInsert": bson.M{
			"email":      identity.Email,
			"name":       identity.Name,
			"role":       domain.RoleCustomer,
			"status":     domain.StatusActive,
			"created_at": now,
		},
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var mu mongoUser
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"email": identity.Email}, update, opts).Decode(&mu)
	if err != nil {
		return nil, fmt.Errorf("upsert login: %w", err)
	}
	return mu.toDomain(), nil
}

// UpsertProfile creates or refreshes the self-service profile. Grants and
// the login counter are only seeded on insert, never overwritten.
func (r *UserRepository) UpsertProfile(ctx context.Context, input ports.UpsertProfileInput) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	now := time.Now().UTC()
	set := bson.M{"updated_at": now}
	if input.Name != "" {
		set["name"] = input.Name
	}
	if input.BloodGroup != "" {
		set["blood_group"] = input.BloodGroup
	}
	if input.District != "" {
		set["district"] = input.District
	}
	if input.Upazila != "" {
		set["upazila"] = input.Upazila
	}
	if input.ShopName != "" {
		set["shop_name"] = input.ShopName
	}
	if input.ShopAddress != "" {
		set["shop_address"] = input.ShopAddress
	}

	update := bson.M{
		"$set": set,
		"$setOnInsert": bson.M{
			"email":       input.Email,
			"role":        domain.RoleCustomer,
			"status":      domain.StatusActive,
			"login_count": 0,
			"created_at":  now,
		},
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var mu mongoUser
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"email": input.Email}, update, opts).Decode(&mu)
	if err != nil {
		return nil, fmt.Errorf("upsert profile: %w", err)
	}
	return mu.toDomain(), nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var mu mongoUser
	if err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&mu); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return mu.toDomain(), nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	var mu mongoUser
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mu); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return mu.toDomain(), nil
}

// SetPendingRequest installs the request only while no other is pending,
// so concurrent submissions cannot queue a second envelope.
func (r *UserRepository) SetPendingRequest(ctx context.Context, email string, req domain.RoleRequest) (int64, error) {
	filter := bson.M{
		"email": email,
		"$or": []bson.M{
			{"role_request": nil},
			{"role_request": bson.M{"$exists": false}},
			{"role_request.status": bson.M{"$ne": domain.RequestPending}},
		},
	}
	update := bson.M{
		"$set": bson.M{
			"role_request": mongoRoleRequest{
				Type:        string(req.Type),
				Status:      req.Status,
				RequestedAt: req.RequestedAt,
			},
			"updated_at": time.Now().UTC(),
		},
	}
	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return 0, fmt.Errorf("set pending request: %w", err)
	}
	return res.ModifiedCount, nil
}

// ResolveMerchantRequest settles the envelope with a write conditional on
// it still being a pending merchant request, closing the approve/reject race.
func (r *UserRepository) ResolveMerchantRequest(ctx context.Context, id string, approve bool) (int64, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return 0, domain.ErrUserNotFound
	}

	filter := bson.M{
		"_id":                 oid,
		"role_request.type":   domain.RoleMerchant,
		"role_request.status": domain.RequestPending,
	}
	set := bson.M{"updated_at": time.Now().UTC()}
	if approve {
		set["role"] = domain.RoleMerchant
		set["role_request.status"] = domain.RequestApproved
	} else {
		set["role"] = domain.RoleCustomer
		set["role_request.status"] = domain.RequestRejected
	}

	res, err := r.coll.UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		return 0, fmt.Errorf("resolve merchant request: %w", err)
	}
	return res.ModifiedCount, nil
}

func (r *UserRepository) ActivateIfPending(ctx context.Context, id string) (int64, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return 0, domain.ErrUserNotFound
	}
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": oid, "status": domain.StatusPending},
		bson.M{"$set": bson.M{"status": domain.StatusActive, "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		return 0, fmt.Errorf("activate user: %w", err)
	}
	return res.ModifiedCount, nil
}

func (r *UserRepository) UpdateRole(ctx context.Context, id string, role domain.Role) (int64, error) {
	return r.setField(ctx, id, "role", string(role))
}

func (r *UserRepository) UpdateStatus(ctx context.Context, id, status string) (int64, error) {
	return r.setField(ctx, id, "status", status)
}

func (r *UserRepository) setField(ctx context.Context, id, field, value string) (int64, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return 0, domain.ErrUserNotFound
	}
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{field: value, "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		return 0, fmt.Errorf("update user %s: %w", field, err)
	}
	if res.MatchedCount == 0 {
		return 0, domain.ErrUserNotFound
	}
	return res.ModifiedCount, nil
}

// List returns a page of non-admin accounts, newest first.
func (r *UserRepository) List(ctx context.Context, filter ports.ListUsersFilter) ([]*domain.User, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{"role": bson.M{"$ne": domain.RoleAdmin}}
	if filter.Role != "" {
		query["role"] = filter.Role
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}

	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((filter.Page - 1) * filter.Limit)).
		SetLimit(int64(filter.Limit))

	cur, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}
	defer cur.Close(ctx)

	users, err := decodeUsers(ctx, cur)
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrUserNotFound
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// SearchDonors matches active accounts with a blood group against the
// already-normalized filter fields.
func (r *UserRepository) SearchDonors(ctx context.Context, filter ports.DonorSearchFilter) ([]*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{
		"status":      domain.StatusActive,
		"blood_group": bson.M{"$exists": true, "$ne": ""},
	}
	if filter.BloodGroup != "" {
		query["blood_group"] = filter.BloodGroup
	}
	if filter.District != "" {
		query["district"] = filter.District
	}
	if filter.Upazila != "" {
		query["upazila"] = filter.Upazila
	}

	cur, err := r.coll.Find(ctx, query, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("search donors: %w", err)
	}
	defer cur.Close(ctx)

	return decodeUsers(ctx, cur)
}

func decodeUsers(ctx context.Context, cur *mongo.Cursor) ([]*domain.User, error) {
	var users []*domain.User
	for cur.Next(ctx) {
		var mu mongoUser
		if err := cur.Decode(&mu); err != nil {
			return nil, fmt.Errorf("decode user: %w", err)
		}
		users = append(users, mu.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}
	return users, nil
}

// EnsureIndexes creates the unique email key and the donor-search indexes.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "blood_group", Value: 1}, {Key: "district", Value: 1}}},
		{Keys: bson.D{{Key: "role", Value: 1}, {Key: "status", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
