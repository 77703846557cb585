package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/guardian-ae/fleetwatch/internal/core/domain"
)

const usersCollection = "auth_users"

// UserRepository serves the credential registry from MongoDB.
type UserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{coll: db.Collection(usersCollection)}
}

type mongoUser struct {
	Email            string `bson:"_id"`
	PasswordHash     string `bson:"password_hash"`
	UserID           string `bson:"user_id"`
	Name             string `bson:"name"`
	Role             string `bson:"role"`
	Location         string `bson:"location,omitempty"`
	Department       string `bson:"department,omitempty"`
	VehicleID        string `bson:"vehicle_id,omitempty"`
	HealthKitEnabled bool   `bson:"healthkit_enabled,omitempty"`
}

// FindByEmail matches the email exactly; it is the document key.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.CredentialRecord, error) {
	var mu mongoUser
	if err := r.coll.FindOne(ctx, bson.M{"_id": email}).Decode(&mu); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &domain.CredentialRecord{
		Email:            mu.Email,
		PasswordHash:     mu.PasswordHash,
		ID:               mu.UserID,
		Name:             mu.Name,
		Role:             domain.Role(mu.Role),
		Location:         mu.Location,
		Department:       mu.Department,
		VehicleID:        mu.VehicleID,
		HealthKitEnabled: mu.HealthKitEnabled,
	}, nil
}

// Seed upserts records, replacing any existing entry with the same email.
func (r *UserRepository) Seed(ctx context.Context, records []domain.CredentialRecord) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	models := make([]mongo.WriteModel, 0, len(records))
	for _, rec := range records {
		doc := mongoUser{
			Email:            rec.Email,
			PasswordHash:     rec.PasswordHash,
			UserID:           rec.ID,
			Name:             rec.Name,
			Role:             string(rec.Role),
			Location:         rec.Location,
			Department:       rec.Department,
			VehicleID:        rec.VehicleID,
			HealthKitEnabled: rec.HealthKitEnabled,
		}
		models = append(models, mongo.NewReplaceOneModel().
			SetFilter(bson.M{"_id": rec.Email}).
			SetReplacement(doc).
			SetUpsert(true))
	}

	res, err := r.coll.BulkWrite(ctx, models, options.BulkWrite().SetOrdered(false))
	if err != nil {
		return 0, fmt.Errorf("seed users: %w", err)
	}
	return int(res.UpsertedCount + res.ModifiedCount), nil
}
