package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sample struct {
	Name  string `json:"name" validate:"required"`
	Count int    `json:"count,omitempty" validate:"gte=0"`
}

func TestValidate(t *testing.T) {
	v := New()

	tests := []struct {
		name    string
		input   sample
		wantErr string
	}{
		{"valid", sample{Name: "x"}, ""},
		{"missing name", sample{}, "name is required"},
		{"both fail", sample{Count: -1}, `name is required; count failed the "gte" rule`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.input)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, tt.wantErr)
		})
	}
}

func TestValidate_NonStruct(t *testing.T) {
	assert.Error(t, New().Validate("not a struct"))
}
