package validate

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bft-labs/officetimer/internal/domain"
)

func TestDuration_Valid(t *testing.T) {
	tests := []struct {
		name             string
		hours, min, secs string
		want             domain.Seconds
	}{
		{"pomodoro", "0", "25", "0", 1500},
		{"empty fields are zero", "", "", "5", 5},
		{"whitespace", " 1 ", "\t0", "0 ", 3600},
		{"all fields", "2", "59", "59", 2*3600 + 59*60 + 59},
		{"hours unbounded", "250", "", "", 250 * 3600},
		{"explicit plus sign", "+0", "+1", "0", 60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Duration(tt.hours, tt.min, tt.secs)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDuration_Errors(t *testing.T) {
	tests := []struct {
		name             string
		hours, min, secs string
		kind             domain.ValidationKind
		field            string
	}{
		{"letters", "a", "0", "0", domain.NotNumeric, FieldHours},
		{"decimal", "0", "1.5", "0", domain.NotNumeric, FieldMinutes},
		{"not numeric wins over negative", "-1", "x", "0", domain.NotNumeric, FieldMinutes},
		{"negative hours", "-1", "0", "0", domain.Negative, FieldHours},
		{"negative seconds", "0", "0", "-30", domain.Negative, FieldSeconds},
		{"negative wins over range", "0", "75", "-1", domain.Negative, FieldSeconds},
		{"minutes 60", "0", "60", "0", domain.OutOfRange, FieldMinutes},
		{"seconds 60", "0", "0", "60", domain.OutOfRange, FieldSeconds},
		{"hours overflow", "99999999999999999999", "0", "0", domain.OutOfRange, FieldHours},
		{"hours too large for seconds", fmt.Sprint(maxHours + 1), "0", "0", domain.OutOfRange, FieldHours},
		{"zero", "0", "0", "0", domain.ZeroDuration, ""},
		{"all empty", "", "", "", domain.ZeroDuration, ""},
		{"blank hours", " ", "0", "5", domain.NotNumeric, FieldHours},
		{"tab seconds", "0", "1", "\t", domain.NotNumeric, FieldSeconds},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Duration(tt.hours, tt.min, tt.secs)
			require.Error(t, err)

			var ve *domain.ValidationError
			require.True(t, errors.As(err, &ve), "want *domain.ValidationError, got %T", err)
			assert.Equal(t, tt.kind, ve.Kind)
			assert.Equal(t, tt.field, ve.Field)
		})
	}
}

func TestDuration_OutOfRangeProperty(t *testing.T) {
	for h := 0; h < 3; h++ {
		for m := 0; m < 120; m += 7 {
			for s := 0; s < 120; s += 11 {
				_, err := Duration(fmt.Sprint(h), fmt.Sprint(m), fmt.Sprint(s))
				if m >= 60 || s >= 60 {
					assert.ErrorIs(t, err, domain.ErrOutOfRange, "h=%d m=%d s=%d", h, m, s)
				}
			}
		}
	}
}

func TestDuration_ZeroProperty(t *testing.T) {
	_, err := Duration("0", "0", "0")
	assert.ErrorIs(t, err, domain.ErrZeroDuration)
}
