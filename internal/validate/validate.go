// Package validate turns the three timer input fields into a countdown duration.
package validate

import (
	"errors"
	"strconv"
	"strings"

	"github.com/bft-labs/officetimer/internal/domain"
)

const (
	FieldHours   = "hours"
	FieldMinutes = "minutes"
	FieldSeconds = "seconds"
)

const maxHours = int64(domain.MaxSeconds) / 3600

// Duration validates hours, minutes and seconds text and returns the total in
// seconds. Empty fields count as zero; whitespace-only fields are not numeric. Checks run in this order: every field
// numeric, every field non-negative, minutes and seconds below 60, total
// non-zero. The returned error is always a *domain.ValidationError.
func Duration(hoursText, minutesText, secondsText string) (domain.Seconds, error) {
	fields := [3]struct {
		name string
		text string
		val  int64
	}{
		{name: FieldHours, text: hoursText},
		{name: FieldMinutes, text: minutesText},
		{name: FieldSeconds, text: secondsText},
	}

	for i := range fields {
		v, err := parseField(fields[i].text)
		if err != nil {
			kind := domain.NotNumeric
			if errors.Is(err, strconv.ErrRange) {
				kind = domain.OutOfRange
			}
			return 0, &domain.ValidationError{Kind: kind, Field: fields[i].name, Value: fields[i].text}
		}
		fields[i].val = v
	}

	for _, f := range fields {
		if f.val < 0 {
			return 0, &domain.ValidationError{Kind: domain.Negative, Field: f.name, Value: f.text}
		}
	}

	hours, minutes, seconds := fields[0], fields[1], fields[2]
	if minutes.val >= 60 {
		return 0, &domain.ValidationError{Kind: domain.OutOfRange, Field: FieldMinutes, Value: minutes.text}
	}
	if seconds.val >= 60 {
		return 0, &domain.ValidationError{Kind: domain.OutOfRange, Field: FieldSeconds, Value: seconds.text}
	}
	if hours.val > maxHours {
		return 0, &domain.ValidationError{Kind: domain.OutOfRange, Field: FieldHours, Value: hours.text}
	}

	total := domain.Seconds(hours.val*3600 + minutes.val*60 + seconds.val)
	if total == 0 {
		return 0, &domain.ValidationError{Kind: domain.ZeroDuration}
	}
	return total, nil
}

// parseField treats only an empty field as zero. Surrounding whitespace is
// ignored, but a field of nothing but whitespace is not a number.
func parseField(text string) (int64, error) {
	if text == "" {
		return 0, nil
	}
	return strconv.ParseInt(strings.TrimSpace(text), 10, 64)
}
