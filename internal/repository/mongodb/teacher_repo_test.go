package mongodb

import (
	"testing"

	"github.com/Abdurahmanit/GroupProject/tutoring-service/internal/entity"
	"github.com/stretchr/testify/assert"
)

func TestUpdateFields_OnlySetFields(t *testing.T) {
	subjects := []string{"Math"}
	set := updateFields(entity.TeacherUpdate{Subjects: &subjects})

	assert.Equal(t, []string{"Math"}, set["subjects"])
	assert.Contains(t, set, "updated_at")
	assert.Len(t, set, 2)
	assert.NotContains(t, set, "password")
	assert.NotContains(t, set, "full_name")
}

func TestUpdateFields_EmptySliceStaysArray(t *testing.T) {
	var none []string
	set := updateFields(entity.TeacherUpdate{Availability: &none})

	assert.Equal(t, []string{}, set["availability"])
}

func TestTeacherModel_KeepsArraysNonNil(t *testing.T) {
	doc := teacherFromEntity(&entity.Teacher{FullName: "T"})

	assert.NotNil(t, doc.Subjects)
	assert.NotNil(t, doc.Availability)
	assert.NotNil(t, doc.Qualifications)
	assert.NotNil(t, doc.Reviews)
}
