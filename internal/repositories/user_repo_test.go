package repositories

import (
	"testing"

	"github.com/halcyonlabs/userdir/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestBuildExampleWhere_EmptyTemplateIsWildcard(t *testing.T) {
	where, args := buildExampleWhere(models.User{})

	assert.Empty(t, where)
	assert.Empty(t, args)
}

func TestBuildExampleWhere_SingleField(t *testing.T) {
	where, args := buildExampleWhere(models.User{Name: "ali"})

	assert.Equal(t, " WHERE name ~ $1", where)
	assert.Equal(t, []interface{}{"ali"}, args)
}

func TestBuildExampleWhere_MultipleFieldsAnded(t *testing.T) {
	where, args := buildExampleWhere(models.User{
		Profile: "USER",
		Email:   "@example.com",
		Phone:   "^123",
	})

	assert.Equal(t, " WHERE profile ~ $1 AND email ~ $2 AND phone ~ $3", where)
	assert.Equal(t, []interface{}{"USER", "@example.com", "^123"}, args)
}

func TestBuildExampleWhere_IDMatchedAsText(t *testing.T) {
	where, args := buildExampleWhere(models.User{ID: "abc"})

	assert.Equal(t, " WHERE id::text ~ $1", where)
	assert.Equal(t, []interface{}{"abc"}, args)
}

func TestBuildOrderBy_Empty(t *testing.T) {
	assert.Empty(t, buildOrderBy(nil, nil))
}

func TestBuildOrderBy_AscBeforeDesc(t *testing.T) {
	order := buildOrderBy([]string{"name", "email"}, []string{"profile"})

	assert.Equal(t, " ORDER BY name ASC, email ASC, profile DESC", order)
}

func TestBuildOrderBy_UnknownFieldsSkipped(t *testing.T) {
	order := buildOrderBy([]string{"name", "drop table"}, []string{"password"})

	assert.Equal(t, " ORDER BY name ASC", order)
}
