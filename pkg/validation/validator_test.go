package validation

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type signup struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,pwd"`
	Role     string `json:"role" validate:"omitempty,role"`
	Category string `json:"category" validate:"omitempty,category"`
	Score    int    `json:"score" validate:"gte=0,lte=10"`
}

func TestStruct_Messages(t *testing.T) {
	fields := Struct(signup{Email: "nope", Password: "short", Role: "root", Category: "spoilers", Score: 11})

	assert.Equal(t, map[string]string{
		"email":    "must be a valid email",
		"password": "min length 8",
		"role":     "must be one of: admin, client",
		"category": "must be one of: paint, wheels, interior, exterior, performance",
		"score":    "must be at most 10",
	}, fields)

	assert.Nil(t, Struct(signup{Email: "a@b.co", Password: "longenough"}))
	assert.Nil(t, Struct(signup{Email: "a@b.co", Password: strings.Repeat("p", 72)}))
	assert.Equal(t, map[string]string{"password": "max length 72 bytes"},
		Struct(signup{Email: "a@b.co", Password: strings.Repeat("p", 73)}))
}

func TestRun_MergesInOrder(t *testing.T) {
	first := func(signup) map[string]string { return map[string]string{"email": "first"} }
	second := func(signup) map[string]string { return map[string]string{"email": "second", "name": "taken"} }
	pass := func(signup) map[string]string { return nil }

	assert.Equal(t, map[string]string{"email": "first", "name": "taken"}, Run(signup{}, first, second))
	assert.Nil(t, Run(signup{}, pass))
}

func TestToDetails_DecodeErrors(t *testing.T) {
	var out struct {
		Year int `json:"year"`
	}
	err := json.Unmarshal([]byte(`{"year":"soon"}`), &out)
	assert.Equal(t, map[string]string{"year": "must be a int"}, ToDetails(err))

	err = json.Unmarshal([]byte(`{`), &out)
	assert.Equal(t, map[string]string{"payload": "invalid json"}, ToDetails(err))

	assert.Equal(t, map[string]string{"payload": "invalid payload"}, ToDetails(errors.New("boom")))
	assert.Nil(t, ToDetails(nil))
}
