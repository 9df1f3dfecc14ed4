package secretcheck

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/greenlight-dev/greenlight/pkg/check"
	"github.com/greenlight-dev/greenlight/pkg/settings"
	"github.com/greenlight-dev/greenlight/pkg/testutil"
)

const placeholder = "your-production-secret-key-change-this"

func source(pairs string) settings.Source {
	return settings.Parse(pairs)
}

func TestCheck_Run(t *testing.T) {
	tests := []struct {
		name       string
		value      string
		wantStatus check.Status
	}{
		{"placeholder still set", placeholder, check.StatusFail},
		{"rotated value", "f3a9c1e07b", check.StatusOK},
		{"near-miss suffix", placeholder + "2", check.StatusOK},
		{"near-miss prefix", "x" + placeholder, check.StatusOK},
		{"empty value", "", check.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Check{
				Key:         "SECRET_KEY",
				Placeholder: placeholder,
				Source:      source("SECRET_KEY=" + tt.value),
			}

			result := c.Run()

			assert.Equal(t, tt.wantStatus, result.Status)
			assert.Equal(t, "secret: SECRET_KEY", result.Name)
		})
	}
}

func TestCheck_KeyNotSet(t *testing.T) {
	c := &Check{
		Key:         "JWT_SECRET_KEY",
		Placeholder: placeholder,
		Source:      source("OTHER=value"),
	}

	result := c.Run()

	assert.Equal(t, check.StatusFail, result.Status)
	assert.True(t, testutil.ContainsDetail(result.Details, "key not set"))
}

func TestCheck_ValueNeverEchoed(t *testing.T) {
	c := &Check{
		Key:         "SECRET_KEY",
		Placeholder: placeholder,
		Source:      source("SECRET_KEY=super-secret-value"),
	}

	result := c.Run()

	assert.False(t, testutil.ContainsDetail(result.Details, "super-secret-value"))
}
