package validation

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

type stepIn struct {
	Number      int    `json:"step_number" validate:"gte=1"`
	Description string `json:"description" validate:"required"`
}

type recipeIn struct {
	Name     string   `json:"name" validate:"min=3"`
	Email    string   `json:"email" validate:"omitempty,email"`
	Duration int      `json:"duration" validate:"gte=1"`
	Steps    []stepIn `json:"steps" validate:"dive"`
}

func TestStruct(t *testing.T) {
	assert.Nil(t, Struct(recipeIn{Name: "Soup", Duration: 10}))

	details := Struct(recipeIn{
		Name:     "ab",
		Email:    "nope",
		Duration: 0,
		Steps:    []stepIn{{Number: 1, Description: "ok"}, {Number: 0}},
	})
	assert.Equal(t, "must be at least 3 characters long", details["name"])
	assert.Equal(t, "must be a valid email", details["email"])
	assert.Equal(t, "must be greater than or equal to 1", details["duration"])
	assert.Equal(t, "must be greater than or equal to 1", details["steps[1].step_number"])
	assert.Equal(t, "is required", details["steps[1].description"])
	assert.NotContains(t, details, "steps[0].step_number")
}

func TestToDetails_Payload(t *testing.T) {
	var v map[string]any
	err := json.Unmarshal([]byte("{"), &v)
	assert.Equal(t, map[string]string{"payload": "invalid json"}, ToDetails(err))
	assert.Nil(t, ToDetails(nil))
}

func TestStruct_AliasAndSliceMessages(t *testing.T) {
	type in struct {
		Password string   `json:"password" validate:"pwd"`
		Tags     []string `json:"tags" validate:"min=1"`
	}
	details := Struct(in{Password: "short"})
	assert.Equal(t, "must be 8 to 72 characters long", details["password"])
	assert.Equal(t, "must be at least 1 items", details["tags"])
}
