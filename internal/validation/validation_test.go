package validation

import (
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type samplePayload struct {
	Name   string    `json:"name" validate:"required,notblank,max=10"`
	Rating int       `json:"rating" validate:"min=1,max=5"`
	Born   time.Time `json:"birthDate" validate:"required,notfuture"`
	Hidden string    `json:"-"`
}

func TestValidator_Valid(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC))
	v := New(clock)

	errs := v.Struct(samplePayload{Name: "Pikachu", Rating: 5, Born: clock.Now()})
	assert.Nil(t, errs)
}

func TestValidator_FieldErrors(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC))
	v := New(clock)

	tests := []struct {
		name    string
		payload samplePayload
		field   string
		message string
	}{
		{
			name:    "missing name",
			payload: samplePayload{Rating: 3, Born: clock.Now()},
			field:   "name",
			message: "is required",
		},
		{
			name:    "blank name",
			payload: samplePayload{Name: " \t ", Rating: 3, Born: clock.Now()},
			field:   "name",
			message: "must not be blank",
		},
		{
			name:    "long name",
			payload: samplePayload{Name: strings.Repeat("a", 11), Rating: 3, Born: clock.Now()},
			field:   "name",
			message: "must not exceed 10 characters",
		},
		{
			name:    "rating too low",
			payload: samplePayload{Name: "Pikachu", Rating: 0, Born: clock.Now()},
			field:   "rating",
			message: "must be at least 1",
		},
		{
			name:    "rating too high",
			payload: samplePayload{Name: "Pikachu", Rating: 6, Born: clock.Now()},
			field:   "rating",
			message: "must not exceed 5",
		},
		{
			name:    "missing birth date",
			payload: samplePayload{Name: "Pikachu", Rating: 3},
			field:   "birthDate",
			message: "is required",
		},
		{
			name:    "birth date in the future",
			payload: samplePayload{Name: "Pikachu", Rating: 3, Born: clock.Now().Add(time.Second)},
			field:   "birthDate",
			message: "must not be in the future",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := v.Struct(tt.payload)
			require.Len(t, errs, 1)
			assert.Equal(t, tt.field, errs[0].Field)
			assert.Equal(t, tt.message, errs[0].Error)
		})
	}
}

func TestValidator_NotFutureFollowsClock(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC))
	v := New(clock)

	tomorrow := clock.Now().Add(24 * time.Hour)
	payload := samplePayload{Name: "Pikachu", Rating: 3, Born: tomorrow}
	require.Len(t, v.Struct(payload), 1)

	clock.Advance(48 * time.Hour)
	assert.Nil(t, v.Struct(payload))
}

func TestNew_DefaultsToRealClock(t *testing.T) {
	v := New(nil)
	assert.Nil(t, v.Struct(samplePayload{Name: "Mew", Rating: 1, Born: time.Now().Add(-time.Hour)}))
}
