package util

import (
	"testing"
	"time"
)

func TestSchoolYearStart(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{"september belongs to its own year", Date(2024, time.September, 1), Date(2024, time.September, 1)},
		{"december belongs to its own year", Date(2024, time.December, 31), Date(2024, time.September, 1)},
		{"january belongs to the previous year", Date(2025, time.January, 1), Date(2024, time.September, 1)},
		{"august belongs to the previous year", Date(2025, time.August, 31), Date(2024, time.September, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SchoolYearStart(tt.in); !got.Equal(tt.want) {
				t.Errorf("SchoolYearStart(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestSchoolYearQuarters(t *testing.T) {
	quarters := SchoolYearQuarters(Date(2024, time.September, 15))

	want := [4]struct{ start, end time.Time }{
		{Date(2024, time.September, 1), Date(2024, time.November, 30)},
		{Date(2024, time.December, 1), Date(2025, time.February, 28)},
		{Date(2025, time.March, 1), Date(2025, time.May, 31)},
		{Date(2025, time.June, 1), Date(2025, time.August, 31)},
	}

	for i, q := range quarters {
		if !q.Start.Equal(want[i].start) || !q.End.Equal(want[i].end) {
			t.Errorf("quarter %d = [%v, %v], want [%v, %v]",
				i+1, q.Start, q.End, want[i].start, want[i].end)
		}
		if q.Quarter != i+1 {
			t.Errorf("quarter index = %d, want %d", q.Quarter, i+1)
		}
	}
}

func TestSchoolYearQuartersLeapYear(t *testing.T) {
	// school year 2023-24 crosses Feb 29
	quarters := SchoolYearQuarters(Date(2023, time.October, 1))

	if got, want := quarters[1].End, Date(2024, time.February, 29); !got.Equal(want) {
		t.Errorf("Q2 end = %v, want %v", got, want)
	}
}

func TestSchoolYearQuartersCoverTheYear(t *testing.T) {
	quarters := SchoolYearQuarters(Date(2024, time.October, 1))

	if !quarters[0].Start.Equal(SchoolYearStart(Date(2024, time.October, 1))) {
		t.Errorf("Q1 does not start at the school year start")
	}
	for i := 0; i < 3; i++ {
		next := quarters[i].End.AddDate(0, 0, 1)
		if !next.Equal(quarters[i+1].Start) {
			t.Errorf("gap between quarter %d and %d: %v vs %v",
				i+1, i+2, quarters[i].End, quarters[i+1].Start)
		}
	}
	if got, want := quarters[3].End, Date(2025, time.August, 31); !got.Equal(want) {
		t.Errorf("Q4 end = %v, want %v", got, want)
	}
}

func TestParseFormatDateRoundTrip(t *testing.T) {
	d, err := ParseDate("2024-12-14")
	if err != nil {
		t.Fatalf("ParseDate: %v", err)
	}
	if d.Location() != time.UTC {
		t.Errorf("parsed date not in UTC: %v", d.Location())
	}
	if got := FormatDate(d); got != "2024-12-14" {
		t.Errorf("FormatDate = %q, want %q", got, "2024-12-14")
	}
}

func TestDateOnly(t *testing.T) {
	in := time.Date(2024, time.June, 3, 23, 45, 12, 0, time.FixedZone("EST", -5*3600))
	got := DateOnly(in)
	if !got.Equal(Date(2024, time.June, 3)) {
		t.Errorf("DateOnly = %v, want %v", got, Date(2024, time.June, 3))
	}
}
