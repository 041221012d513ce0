package validation

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidateUsername(t *testing.T) {
	assert.NoError(t, ValidateUsername("a"))
	assert.NoError(t, ValidateUsername(strings.Repeat("a", 50)))
	assert.Error(t, ValidateUsername(""))
	assert.Error(t, ValidateUsername(strings.Repeat("a", 51)))
}

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, ValidateEmail("user@example.com"))
	assert.Error(t, ValidateEmail("not-an-email"))
	assert.Error(t, ValidateEmail("user@"))
	assert.Error(t, ValidateEmail("@example.com"))
	assert.Error(t, ValidateEmail("user space@example.com"))
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("12345678"))
	assert.NoError(t, ValidatePassword(strings.Repeat("x", 32)))
	assert.Error(t, ValidatePassword("1234567"))
	assert.Error(t, ValidatePassword(strings.Repeat("x", 33)))
}

func TestValidateGenreName(t *testing.T) {
	assert.NoError(t, ValidateGenreName("Rock"))
	assert.NoError(t, ValidateGenreName(strings.Repeat("a", 25)))
	assert.Error(t, ValidateGenreName(""))
	assert.Error(t, ValidateGenreName(strings.Repeat("a", 26)))
}

func TestValidateName(t *testing.T) {
	assert.NoError(t, ValidateName("title", "My Song"))
	assert.Error(t, ValidateName("title", ""))
	assert.Error(t, ValidateName("name", strings.Repeat("a", 101)))
}

func TestValidateSongLength(t *testing.T) {
	tests := []struct {
		length string
		valid  bool
	}{
		{"00:03:45", true},
		{"12:59:59", true},
		{"00:00:00", true},
		{"0:03:45", false},  // 7 chars
		{"00:03:455", false}, // 9 chars
		{"00:60:00", false},  // minutes out of range
		{"00:00:60", false},  // seconds out of range
		{"ab:cd:ef", false},
		{"", false},
	}
	for _, tt := range tests {
		err := ValidateSongLength(tt.length)
		if tt.valid {
			assert.NoError(t, err, tt.length)
		} else {
			assert.Error(t, err, tt.length)
		}
	}
}

func TestValidateRating(t *testing.T) {
	for rating := 1; rating <= 5; rating++ {
		assert.NoError(t, ValidateRating(rating))
	}
	assert.Error(t, ValidateRating(0))
	assert.Error(t, ValidateRating(6))
	assert.Error(t, ValidateRating(-1))
}

func TestValidateAbout(t *testing.T) {
	assert.NoError(t, ValidateAbout(""))
	assert.NoError(t, ValidateAbout(strings.Repeat("a", 420)))
	assert.Error(t, ValidateAbout(strings.Repeat("a", 421)))
}

func TestValidateNotFuture(t *testing.T) {
	assert.NoError(t, ValidateNotFuture("releaseDate", time.Now().Add(-time.Hour)))
	assert.Error(t, ValidateNotFuture("releaseDate", time.Now().Add(time.Hour)))
}
