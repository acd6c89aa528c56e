package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	MinRating = 1
	MaxRating = 5
)

// Review is a learner's or parent's rating of a teacher.
type Review struct {
	ReviewerID primitive.ObjectID
	Rating     int
	Comment    string
	CreatedAt  time.Time
}

// Teacher is a tutor account. Teachers are active from registration on.
type Teacher struct {
	ID             primitive.ObjectID
	FullName       string
	Email          string
	PhoneNumber    string
	Password       string // bcrypt hash
	Subjects       []string
	ServiceArea    string
	Availability   []string
	HourlyCost     float64
	Qualifications []string
	Reviews        []Review
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TeacherUpdate lists the fields a teacher may change. Nil fields are left untouched.
type TeacherUpdate struct {
	FullName       *string
	PhoneNumber    *string
	Password       *string // already hashed when it reaches the repository
	Subjects       *[]string
	ServiceArea    *string
	Availability   *[]string
	HourlyCost     *float64
	Qualifications *[]string
}

// IsEmpty reports whether the update would change nothing.
func (u TeacherUpdate) IsEmpty() bool {
	return u.FullName == nil && u.PhoneNumber == nil && u.Password == nil &&
		u.Subjects == nil && u.ServiceArea == nil && u.Availability == nil &&
		u.HourlyCost == nil && u.Qualifications == nil
}

// Apply copies the set fields onto t.
func (u TeacherUpdate) Apply(t *Teacher) {
	if u.FullName != nil {
		t.FullName = *u.FullName
	}
	if u.PhoneNumber != nil {
		t.PhoneNumber = *u.PhoneNumber
	}
	if u.Password != nil {
		t.Password = *u.Password
	}
	if u.Subjects != nil {
		t.Subjects = append([]string(nil), (*u.Subjects)...)
	}
	if u.ServiceArea != nil {
		t.ServiceArea = *u.ServiceArea
	}
	if u.Availability != nil {
		t.Availability = append([]string(nil), (*u.Availability)...)
	}
	if u.HourlyCost != nil {
		t.HourlyCost = *u.HourlyCost
	}
	if u.Qualifications != nil {
		t.Qualifications = append([]string(nil), (*u.Qualifications)...)
	}
}

type ReviewView struct {
	ReviewerID string    `json:"reviewer_id"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment"`
	CreatedAt  time.Time `json:"created_at"`
}

// TeacherProfile is the public view of a Teacher.
type TeacherProfile struct {
	ID             string       `json:"id"`
	FullName       string       `json:"full_name"`
	Email          string       `json:"email"`
	PhoneNumber    string       `json:"phone_number"`
	Subjects       []string     `json:"subjects"`
	ServiceArea    string       `json:"service_area"`
	Availability   []string     `json:"availability"`
	HourlyCost     float64      `json:"hourly_cost"`
	Qualifications []string     `json:"qualifications"`
	Reviews        []ReviewView `json:"reviews"`
	AverageRating  float64      `json:"average_rating"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
}

func (t *Teacher) Profile() *TeacherProfile {
	reviews := make([]ReviewView, 0, len(t.Reviews))
	for _, r := range t.Reviews {
		reviews = append(reviews, ReviewView{
			ReviewerID: r.ReviewerID.Hex(),
			Rating:     r.Rating,
			Comment:    r.Comment,
			CreatedAt:  r.CreatedAt,
		})
	}
	return &TeacherProfile{
		ID:             t.ID.Hex(),
		FullName:       t.FullName,
		Email:          t.Email,
		PhoneNumber:    t.PhoneNumber,
		Subjects:       nonNil(t.Subjects),
		ServiceArea:    t.ServiceArea,
		Availability:   nonNil(t.Availability),
		HourlyCost:     t.HourlyCost,
		Qualifications: nonNil(t.Qualifications),
		Reviews:        reviews,
		AverageRating:  t.AverageRating(),
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      t.UpdatedAt,
	}
}

// AverageRating returns the mean review rating, or 0 without reviews.
func (t *Teacher) AverageRating() float64 {
	if len(t.Reviews) == 0 {
		return 0
	}
	sum := 0
	for _, r := range t.Reviews {
		sum += r.Rating
	}
	return float64(sum) / float64(len(t.Reviews))
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
