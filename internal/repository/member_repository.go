package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Marga-Ghale/ora-member-service/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const MembersCollection = "members"

// MemberRepository persists members. Lookups by an id that does not exist,
// including ids that are not valid ObjectIDs, return a nil member and no error.
type MemberRepository interface {
	Create(ctx context.Context, member *models.Member) error
	FindByID(ctx context.Context, id string) (*models.Member, error)
	FindAll(ctx context.Context) ([]*models.Member, error)
	Update(ctx context.Context, id string, update *models.UpdateMemberRequest) (*models.Member, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type mongoMemberRepository struct {
	coll *mongo.Collection
}

func NewMemberRepository(coll *mongo.Collection) MemberRepository {
	return &mongoMemberRepository{coll: coll}
}

// Create validates the member, assigns its id and a default createdAt, and
// inserts it.
func (r *mongoMemberRepository) Create(ctx context.Context, member *models.Member) error {
	if err := member.Validate(); err != nil {
		return err
	}

	member.ID = primitive.NewObjectID()
	if member.CreatedAt.IsZero() {
		member.CreatedAt = time.Now()
	}
	// BSON dates carry millisecond precision.
	member.CreatedAt = member.CreatedAt.UTC().Truncate(time.Millisecond)

	if _, err := r.coll.InsertOne(ctx, member); err != nil {
		member.ID = primitive.NilObjectID
		return fmt.Errorf("insert member: %w", err)
	}
	return nil
}

func (r *mongoMemberRepository) FindByID(ctx context.Context, id string) (*models.Member, error) {
	oid, ok := parseID(id)
	if !ok {
		return nil, nil
	}

	m := &models.Member{}
	err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(m)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find member: %w", err)
	}
	return m, nil
}

// FindAll returns every member in insertion order.
func (r *mongoMemberRepository) FindAll(ctx context.Context) ([]*models.Member, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find members: %w", err)
	}
	defer cursor.Close(ctx)

	members := []*models.Member{}
	if err := cursor.All(ctx, &members); err != nil {
		return nil, fmt.Errorf("decode members: %w", err)
	}
	return members, nil
}

// Update applies the non-nil fields of update and returns the resulting
// document. An empty update returns the stored document unchanged.
func (r *mongoMemberRepository) Update(ctx context.Context, id string, update *models.UpdateMemberRequest) (*models.Member, error) {
	if err := update.Validate(); err != nil {
		return nil, err
	}
	if update.IsEmpty() {
		return r.FindByID(ctx, id)
	}

	oid, ok := parseID(id)
	if !ok {
		return nil, nil
	}

	set := bson.M{}
	if update.Name != nil {
		set["name"] = *update.Name
	}
	if update.Email != nil {
		set["email"] = *update.Email
	}
	if update.Phone != nil {
		set["phone"] = *update.Phone
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	m := &models.Member{}
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(m)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("update member: %w", err)
	}
	return m, nil
}

// Delete removes the member and reports whether a document matched.
func (r *mongoMemberRepository) Delete(ctx context.Context, id string) (bool, error) {
	oid, ok := parseID(id)
	if !ok {
		return false, nil
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return false, fmt.Errorf("delete member: %w", err)
	}
	return res.DeletedCount > 0, nil
}

func parseID(id string) (primitive.ObjectID, bool) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return oid, true
}
