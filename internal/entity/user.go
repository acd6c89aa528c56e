package entity

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role of a learner/parent account.
type Role string

const (
	RoleLearner Role = "learner"
	RoleParent  Role = "parent"
)

// IsValid checks if the Role is one of the defined constants.
func (r Role) IsValid() bool {
	switch r {
	case RoleLearner, RoleParent:
		return true
	}
	return false
}

// AccountKind names the collection an account lives in.
type AccountKind string

const (
	KindUser    AccountKind = "user"
	KindTeacher AccountKind = "teacher"
)

func (k AccountKind) IsValid() bool {
	return k == KindUser || k == KindTeacher
}

// User is a learner or parent account.
// Mapping to database documents is handled by the repository implementations.
type User struct {
	ID                    primitive.ObjectID
	FullName              string
	Email                 string
	PhoneNumber           string
	Password              string // bcrypt hash, never the plaintext
	Role                  Role
	Confirmed             bool
	ConfirmationTokenHash string // set only while the account is pending
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// IsPending reports whether the account still awaits email confirmation.
func (u *User) IsPending() bool {
	return !u.Confirmed
}

// UserProfile is the public view of a User.
type UserProfile struct {
	ID          string    `json:"id"`
	FullName    string    `json:"full_name"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phone_number"`
	Role        Role      `json:"role"`
	Confirmed   bool      `json:"confirmed"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (u *User) Profile() *UserProfile {
	return &UserProfile{
		ID:          u.ID.Hex(),
		FullName:    u.FullName,
		Email:       u.Email,
		PhoneNumber: u.PhoneNumber,
		Role:        u.Role,
		Confirmed:   u.Confirmed,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

// Account is the authenticated principal the access guard attaches to a request.
type Account struct {
	ID        string
	Kind      AccountKind
	Email     string
	FullName  string
	Role      Role // empty for teachers
	Confirmed bool
}

// NormalizeEmail trims and lower-cases an address before storage or lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
