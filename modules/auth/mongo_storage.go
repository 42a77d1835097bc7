package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const usersCollection = "users"

// MongoStorage implements Storage on top of a MongoDB database.
type MongoStorage struct {
	users *mongo.Collection
}

// NewMongoStorage returns a Storage backed by the "users" collection of the
// given database and ensures the unique email index exists.
func NewMongoStorage(ctx context.Context, db *mongo.Database) (*MongoStorage, error) {
	users := db.Collection(usersCollection)

	_, err := users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return nil, fmt.Errorf("auth: failed to ensure email index: %w", err)
	}

	return &MongoStorage{users: users}, nil
}

func (s *MongoStorage) CreateUser(ctx context.Context, user *User) error {
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	if _, err := s.users.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrEmailTaken
		}
		return fmt.Errorf("auth: failed to create user: %w", err)
	}
	return nil
}

func (s *MongoStorage) GetUserByID(ctx context.Context, id string) (*User, error) {
	return s.findOne(ctx, bson.M{"_id": id})
}

func (s *MongoStorage) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	return s.findOne(ctx, bson.M{"email": email})
}

func (s *MongoStorage) GetUserByResetToken(ctx context.Context, token string) (*User, error) {
	return s.findOne(ctx, bson.M{"reset_token": token})
}

func (s *MongoStorage) SetOTP(ctx context.Context, userID, code string, expiresAt time.Time) error {
	return s.update(ctx, userID, bson.M{
		"$set": bson.M{
			"otp_code":       code,
			"otp_expires_at": expiresAt,
		},
	})
}

func (s *MongoStorage) MarkVerified(ctx context.Context, userID string) error {
	return s.update(ctx, userID, bson.M{
		"$set":   bson.M{"is_verified": true},
		"$unset": bson.M{"otp_code": "", "otp_expires_at": ""},
	})
}

func (s *MongoStorage) SetRefreshToken(ctx context.Context, userID, token string) error {
	if token == "" {
		return s.update(ctx, userID, bson.M{
			"$unset": bson.M{"refresh_token": ""},
		})
	}
	return s.update(ctx, userID, bson.M{
		"$set": bson.M{"refresh_token": token},
	})
}

func (s *MongoStorage) SetResetToken(ctx context.Context, userID, token string, expiresAt time.Time) error {
	return s.update(ctx, userID, bson.M{
		"$set": bson.M{
			"reset_token":      token,
			"reset_expires_at": expiresAt,
		},
	})
}

func (s *MongoStorage) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	return s.update(ctx, userID, bson.M{
		"$set": bson.M{"password_hash": passwordHash},
		"$unset": bson.M{
			"reset_token":      "",
			"reset_expires_at": "",
			"refresh_token":    "",
		},
	})
}

func (s *MongoStorage) findOne(ctx context.Context, filter bson.M) (*User, error) {
	var user User
	if err := s.users.FindOne(ctx, filter).Decode(&user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("auth: failed to find user: %w", err)
	}
	return &user, nil
}

func (s *MongoStorage) update(ctx context.Context, userID string, update bson.M) error {
	if set, ok := update["$set"].(bson.M); ok {
		set["updated_at"] = time.Now().UTC()
	} else {
		update["$set"] = bson.M{"updated_at": time.Now().UTC()}
	}

	res, err := s.users.UpdateOne(ctx, bson.M{"_id": userID}, update)
	if err != nil {
		return fmt.Errorf("auth: failed to update user: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}
