package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Aywac/tawzifak1122/internal/domain/entity"
)

func TestCategoryByID(t *testing.T) {
	cat := entity.CategoryByID("it")
	if assert.NotNil(t, cat) {
		assert.Equal(t, "تكنولوجيا المعلومات", cat.Name)
		assert.Equal(t, "Code", cat.IconName)
	}

	assert.Nil(t, entity.CategoryByID("nope"))
}

func TestOrganizerByName(t *testing.T) {
	org := entity.OrganizerByName("الصحة العامة")
	if assert.NotNil(t, org) {
		assert.Equal(t, "Stethoscope", org.Icon)
	}

	assert.Nil(t, entity.OrganizerByName(""))
	assert.Nil(t, entity.OrganizerByName("unknown"))
}

func TestGetProgramTypeDetails(t *testing.T) {
	assert.Equal(t, "Briefcase", entity.GetProgramTypeDetails("work").Icon)
	assert.Equal(t, "Plane", entity.GetProgramTypeDetails("other").Icon)
}

func TestPostTypeValid(t *testing.T) {
	assert.True(t, entity.PostTypeSeekingWorker.Valid())
	assert.True(t, entity.PostTypeSeekingJob.Valid())
	assert.False(t, entity.PostType("seeking_cat").Valid())
}
