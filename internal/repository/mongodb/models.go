package mongodb

import (
	"time"

	"github.com/Abdurahmanit/GroupProject/tutoring-service/internal/entity"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type mongoUser struct {
	ID                    primitive.ObjectID `bson:"_id,omitempty"`
	FullName              string             `bson:"full_name"`
	Email                 string             `bson:"email"`
	PhoneNumber           string             `bson:"phone_number,omitempty"`
	Password              string             `bson:"password"`
	Role                  string             `bson:"role"`
	Confirmed             bool               `bson:"confirmed"`
	ConfirmationTokenHash string             `bson:"confirmation_token_hash,omitempty"`
	CreatedAt             time.Time          `bson:"created_at"`
	UpdatedAt             time.Time          `bson:"updated_at"`
}

func (m *mongoUser) toEntity() *entity.User {
	return &entity.User{
		ID:                    m.ID,
		FullName:              m.FullName,
		Email:                 m.Email,
		PhoneNumber:           m.PhoneNumber,
		Password:              m.Password,
		Role:                  entity.Role(m.Role),
		Confirmed:             m.Confirmed,
		ConfirmationTokenHash: m.ConfirmationTokenHash,
		CreatedAt:             m.CreatedAt,
		UpdatedAt:             m.UpdatedAt,
	}
}

func userFromEntity(u *entity.User) *mongoUser {
	return &mongoUser{
		ID:                    u.ID,
		FullName:              u.FullName,
		Email:                 u.Email,
		PhoneNumber:           u.PhoneNumber,
		Password:              u.Password,
		Role:                  string(u.Role),
		Confirmed:             u.Confirmed,
		ConfirmationTokenHash: u.ConfirmationTokenHash,
		CreatedAt:             u.CreatedAt,
		UpdatedAt:             u.UpdatedAt,
	}
}

type mongoReview struct {
	ReviewerID primitive.ObjectID `bson:"reviewer_id"`
	Rating     int                `bson:"rating"`
	Comment    string             `bson:"comment,omitempty"`
	CreatedAt  time.Time          `bson:"created_at"`
}

type mongoTeacher struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	FullName       string             `bson:"full_name"`
	Email          string             `bson:"email"`
	PhoneNumber    string             `bson:"phone_number,omitempty"`
	Password       string             `bson:"password"`
	Subjects       []string           `bson:"subjects"`
	ServiceArea    string             `bson:"service_area,omitempty"`
	Availability   []string           `bson:"availability"`
	HourlyCost     float64            `bson:"hourly_cost"`
	Qualifications []string           `bson:"qualifications"`
	Reviews        []mongoReview      `bson:"reviews"`
	CreatedAt      time.Time          `bson:"created_at"`
	UpdatedAt      time.Time          `bson:"updated_at"`
}

func (m *mongoTeacher) toEntity() *entity.Teacher {
	reviews := make([]entity.Review, 0, len(m.Reviews))
	for _, r := range m.Reviews {
		reviews = append(reviews, entity.Review{
			ReviewerID: r.ReviewerID,
			Rating:     r.Rating,
			Comment:    r.Comment,
			CreatedAt:  r.CreatedAt,
		})
	}
	return &entity.Teacher{
		ID:             m.ID,
		FullName:       m.FullName,
		Email:          m.Email,
		PhoneNumber:    m.PhoneNumber,
		Password:       m.Password,
		Subjects:       m.Subjects,
		ServiceArea:    m.ServiceArea,
		Availability:   m.Availability,
		HourlyCost:     m.HourlyCost,
		Qualifications: m.Qualifications,
		Reviews:        reviews,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

func teacherFromEntity(t *entity.Teacher) *mongoTeacher {
	reviews := make([]mongoReview, 0, len(t.Reviews))
	for _, r := range t.Reviews {
		reviews = append(reviews, reviewFromEntity(r))
	}
	return &mongoTeacher{
		ID:             t.ID,
		FullName:       t.FullName,
		Email:          t.Email,
		PhoneNumber:    t.PhoneNumber,
		Password:       t.Password,
		Subjects:       emptyIfNil(t.Subjects),
		ServiceArea:    t.ServiceArea,
		Availability:   emptyIfNil(t.Availability),
		HourlyCost:     t.HourlyCost,
		Qualifications: emptyIfNil(t.Qualifications),
		Reviews:        reviews,
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      t.UpdatedAt,
	}
}

func reviewFromEntity(r entity.Review) mongoReview {
	return mongoReview{
		ReviewerID: r.ReviewerID,
		Rating:     r.Rating,
		Comment:    r.Comment,
		CreatedAt:  r.CreatedAt,
	}
}

// emptyIfNil keeps array fields as [] in the document so $push works on them.
func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
