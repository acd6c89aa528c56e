package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Abdurahmanit/GroupProject/tutoring-service/internal/entity"
	"github.com/Abdurahmanit/GroupProject/tutoring-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/tutoring-service/internal/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

type UserRepository struct {
	coll   *mongo.Collection
	logger *logger.Logger
}

var _ repository.UserRepository = (*UserRepository)(nil)

// NewUserRepository ensures the users indexes exist. The unique email index is what
// settles concurrent registrations, so failing to create it is fatal.
func NewUserRepository(ctx context.Context, db *mongo.Database, log *logger.Logger) (*UserRepository, error) {
	coll := db.Collection(usersCollection)
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "confirmation_token_hash", Value: 1}}, Options: options.Index().SetSparse(true)},
	}
	if _, err := coll.Indexes().CreateMany(ctx, indexes); err != nil {
		return nil, fmt.Errorf("create users indexes: %w", err)
	}
	log.Info("Ensured indexes for users collection")

	return &UserRepository{coll: coll, logger: log.Named("UserRepository")}, nil
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	doc := userFromEntity(u)
	doc.Email = entity.NormalizeEmail(doc.Email)
	if doc.ID.IsZero() {
		doc.ID = primitive.NewObjectID()
	}
	now := time.Now().UTC()
	doc.CreatedAt = now
	doc.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			r.logger.Warn("Duplicate email during user creation", zap.String("email", doc.Email))
			return repository.ErrDuplicateEmail
		}
		r.logger.Error("Database error during user creation", zap.String("email", doc.Email), zap.Error(err))
		return err
	}

	u.ID = doc.ID
	u.Email = doc.Email
	u.CreatedAt = now
	u.UpdatedAt = now
	r.logger.Debug("User created", zap.String("userID", doc.ID.Hex()))
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*entity.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.findOne(ctx, bson.M{"email": entity.NormalizeEmail(email)})
}

func (r *UserRepository) GetPendingByTokenHash(ctx context.Context, tokenHash string) (*entity.User, error) {
	if tokenHash == "" {
		return nil, repository.ErrNotFound
	}
	return r.findOne(ctx, bson.M{"confirmation_token_hash": tokenHash, "confirmed": false})
}

func (r *UserRepository) Confirm(ctx context.Context, id primitive.ObjectID, tokenHash string) error {
	filter := bson.M{"_id": id, "confirmation_token_hash": tokenHash, "confirmed": false}
	update := bson.M{
		"$set":   bson.M{"confirmed": true, "updated_at": time.Now().UTC()},
		"$unset": bson.M{"confirmation_token_hash": ""},
	}
	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		r.logger.Error("DB error confirming user", zap.String("userID", id.Hex()), zap.Error(err))
		return err
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *UserRepository) SetConfirmationToken(ctx context.Context, id primitive.ObjectID, tokenHash string) error {
	filter := bson.M{"_id": id, "confirmed": false}
	update := bson.M{"$set": bson.M{"confirmation_token_hash": tokenHash, "updated_at": time.Now().UTC()}}
	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		r.logger.Error("DB error replacing confirmation token", zap.String("userID", id.Hex()), zap.Error(err))
		return err
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*entity.User, error) {
	var doc mongoUser
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		r.logger.Error("Database error fetching user", zap.Error(err))
		return nil, err
	}
	return doc.toEntity(), nil
}
