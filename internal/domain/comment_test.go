package domain

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateContent(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr bool
	}{
		{name: "empty", content: "", wantErr: true},
		{name: "whitespace only", content: "    ", wantErr: true},
		{name: "too short", content: "ab", wantErr: true},
		{name: "min length", content: "abc"},
		{name: "max length", content: strings.Repeat("a", MaxContentLength)},
		{name: "too long", content: strings.Repeat("a", MaxContentLength+1), wantErr: true},
		{name: "multibyte counted as characters", content: "жжж"},
		{name: "multibyte max", content: strings.Repeat("ж", MaxContentLength)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateContent(tt.content)
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrValidation), "got %v", err)
				return
			}
			assert.NoError(t, err)
		})
	}
}
