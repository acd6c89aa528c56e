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

type TeacherRepository struct {
	coll   *mongo.Collection
	logger *logger.Logger
}

var _ repository.TeacherRepository = (*TeacherRepository)(nil)

func NewTeacherRepository(ctx context.Context, db *mongo.Database, log *logger.Logger) (*TeacherRepository, error) {
	coll := db.Collection(teachersCollection)
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "subjects", Value: 1}}},
	}
	if _, err := coll.Indexes().CreateMany(ctx, indexes); err != nil {
		return nil, fmt.Errorf("create teachers indexes: %w", err)
	}
	log.Info("Ensured indexes for teachers collection")

	return &TeacherRepository{coll: coll, logger: log.Named("TeacherRepository")}, nil
}

func (r *TeacherRepository) Create(ctx context.Context, t *entity.Teacher) error {
	doc := teacherFromEntity(t)
	doc.Email = entity.NormalizeEmail(doc.Email)
	if doc.ID.IsZero() {
		doc.ID = primitive.NewObjectID()
	}
	now := time.Now().UTC()
	doc.CreatedAt = now
	doc.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			r.logger.Warn("Duplicate email during teacher creation", zap.String("email", doc.Email))
			return repository.ErrDuplicateEmail
		}
		r.logger.Error("Database error during teacher creation", zap.String("email", doc.Email), zap.Error(err))
		return err
	}

	t.ID = doc.ID
	t.Email = doc.Email
	t.CreatedAt = now
	t.UpdatedAt = now
	return nil
}

func (r *TeacherRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*entity.Teacher, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *TeacherRepository) GetByEmail(ctx context.Context, email string) (*entity.Teacher, error) {
	return r.findOne(ctx, bson.M{"email": entity.NormalizeEmail(email)})
}

func (r *TeacherRepository) List(ctx context.Context) ([]*entity.Teacher, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		r.logger.Error("DB error listing teachers", zap.Error(err))
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []*mongoTeacher
	if err := cursor.All(ctx, &docs); err != nil {
		r.logger.Error("Error decoding listed teachers", zap.Error(err))
		return nil, err
	}

	teachers := make([]*entity.Teacher, 0, len(docs))
	for _, doc := range docs {
		teachers = append(teachers, doc.toEntity())
	}
	return teachers, nil
}

func (r *TeacherRepository) Update(ctx context.Context, id primitive.ObjectID, upd entity.TeacherUpdate) (*entity.Teacher, error) {
	if upd.IsEmpty() {
		return r.GetByID(ctx, id)
	}
	return r.findOneAndUpdate(ctx, id, bson.M{"$set": updateFields(upd)})
}

func (r *TeacherRepository) AddReview(ctx context.Context, id primitive.ObjectID, review entity.Review) (*entity.Teacher, error) {
	update := bson.M{
		"$push": bson.M{"reviews": reviewFromEntity(review)},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	}
	return r.findOneAndUpdate(ctx, id, update)
}

func (r *TeacherRepository) findOneAndUpdate(ctx context.Context, id primitive.ObjectID, update bson.M) (*entity.Teacher, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc mongoTeacher
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		r.logger.Error("DB error updating teacher", zap.String("teacherID", id.Hex()), zap.Error(err))
		return nil, err
	}
	return doc.toEntity(), nil
}

func (r *TeacherRepository) findOne(ctx context.Context, filter bson.M) (*entity.Teacher, error) {
	var doc mongoTeacher
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		r.logger.Error("Database error fetching teacher", zap.Error(err))
		return nil, err
	}
	return doc.toEntity(), nil
}

// updateFields builds the $set document from the non-nil fields only.
func updateFields(upd entity.TeacherUpdate) bson.M {
	set := bson.M{"updated_at": time.Now().UTC()}
	if upd.FullName != nil {
		set["full_name"] = *upd.FullName
	}
	if upd.PhoneNumber != nil {
		set["phone_number"] = *upd.PhoneNumber
	}
	if upd.Password != nil {
		set["password"] = *upd.Password
	}
	if upd.Subjects != nil {
		set["subjects"] = emptyIfNil(*upd.Subjects)
	}
	if upd.ServiceArea != nil {
		set["service_area"] = *upd.ServiceArea
	}
	if upd.Availability != nil {
		set["availability"] = emptyIfNil(*upd.Availability)
	}
	if upd.HourlyCost != nil {
		set["hourly_cost"] = *upd.HourlyCost
	}
	if upd.Qualifications != nil {
		set["qualifications"] = emptyIfNil(*upd.Qualifications)
	}
	return set
}
