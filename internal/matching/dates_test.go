package matching

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseFlexibleDate(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected time.Time
		ok       bool
	}{
		{
			name:     "Day first with slashes",
			value:    "14/03/2024",
			expected: time.Date(2024, 3, 14, 0, 0, 0, 0, time.UTC),
			ok:       true,
		},
		{
			name:     "Day first with dashes",
			value:    "14-03-2024",
			expected: time.Date(2024, 3, 14, 0, 0, 0, 0, time.UTC),
			ok:       true,
		},
		{
			name:     "Dots and two digit year",
			value:    "1.2.23",
			expected: time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC),
			ok:       true,
		},
		{
			name:     "Year first",
			value:    "2024-03-14",
			expected: time.Date(2024, 3, 14, 0, 0, 0, 0, time.UTC),
			ok:       true,
		},
		{
			name:     "Written month",
			value:    "15 March 2024",
			expected: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
			ok:       true,
		},
		{
			name:  "Garbage",
			value: "not a date",
			ok:    false,
		},
		{
			name:  "Empty",
			value: "",
			ok:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, ok := ParseFlexibleDate(tt.value)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.True(t, parsed.Equal(tt.expected), "got %v, want %v", parsed, tt.expected)
			}
		})
	}
}

func TestResolveInvoiceDate(t *testing.T) {
	t.Run("Most recent parseable date wins", func(t *testing.T) {
		resolved, ok := ResolveInvoiceDate([]string{"01/01/2024", "15/03/2024", "garbage", "10/02/2024"})

		assert.True(t, ok)
		assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), resolved)
	})

	t.Run("Nothing parses", func(t *testing.T) {
		_, ok := ResolveInvoiceDate([]string{"garbage", "also garbage"})
		assert.False(t, ok)
	})

	t.Run("Empty input", func(t *testing.T) {
		_, ok := ResolveInvoiceDate(nil)
		assert.False(t, ok)
	})
}

func TestFilterJobsByDate(t *testing.T) {
	invoiceDate := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	jobs := []JobRecord{
		{JobRef: 30001, BookingDate: "01/04/2024"},
		{JobRef: 30002, BookingDate: "01/02/2024"},
		{JobRef: 30003, BookingDate: "10/07/2024"},
		{JobRef: 30004, BookingDate: "20/07/2024"},
		{JobRef: 30005, BookingDate: ""},
		{JobRef: 30006, BookingDate: "not a date"},
	}

	t.Run("Window keeps three months back to one month forward", func(t *testing.T) {
		kept := FilterJobsByDate(jobs, invoiceDate, true)

		var refs []int
		for _, job := range kept {
			refs = append(refs, job.JobRef)
		}
		assert.Equal(t, []int{30001, 30003, 30005, 30006}, refs)
	})

	t.Run("No invoice date keeps everything", func(t *testing.T) {
		kept := FilterJobsByDate(jobs, time.Time{}, false)
		assert.Equal(t, jobs, kept)
	})

	t.Run("Window boundaries are inclusive", func(t *testing.T) {
		boundary := []JobRecord{
			{JobRef: 30010, BookingDate: "15/03/2024"},
			{JobRef: 30011, BookingDate: "15/07/2024"},
			{JobRef: 30012, BookingDate: "14/03/2024"},
			{JobRef: 30013, BookingDate: "16/07/2024"},
		}

		kept := FilterJobsByDate(boundary, invoiceDate, true)

		var refs []int
		for _, job := range kept {
			refs = append(refs, job.JobRef)
		}
		assert.Equal(t, []int{30010, 30011}, refs)
	})
}
