package services

import (
	"errors"
	"testing"
	"time"
)

func TestReportFilterBounds(t *testing.T) {
	from := time.Date(2026, time.March, 10, 14, 30, 0, 0, time.UTC)
	to := time.Date(2026, time.March, 12, 9, 15, 0, 0, time.UTC)

	filter := ReportFilter{UseDateRange: true, From: from, To: to}
	lo, hi, ok := filter.Bounds()
	if !ok {
		t.Fatal("Bounds() ok = false for range filter")
	}

	wantLo := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)
	if !lo.Equal(wantLo) {
		t.Errorf("lower bound = %v, want start of day %v", lo, wantLo)
	}
	// upper bound still falls on the To day, at its very end
	if hi.Day() != 12 || hi.Hour() != 23 || hi.Minute() != 59 {
		t.Errorf("upper bound = %v, want end of March 12", hi)
	}

	// a record at 00:00 on From and one at 23:59 on To both fall inside
	first := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)
	last := time.Date(2026, time.March, 12, 23, 59, 0, 0, time.UTC)
	if first.Before(lo) || last.After(hi) {
		t.Error("day boundaries are not inclusive")
	}
}

func TestReportFilterNoRange(t *testing.T) {
	filter := ReportFilter{}
	if _, _, ok := filter.Bounds(); ok {
		t.Error("Bounds() ok = true without a range")
	}
	if err := filter.Validate(); err != nil {
		t.Errorf("Validate() = %v for empty filter", err)
	}
}

func TestReportFilterInvertedRange(t *testing.T) {
	filter := ReportFilter{
		UseDateRange: true,
		From:         time.Date(2026, time.March, 12, 0, 0, 0, 0, time.UTC),
		To:           time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC),
	}
	if err := filter.Validate(); !errors.Is(err, ErrInvalidDateRange) {
		t.Errorf("Validate() = %v, want ErrInvalidDateRange", err)
	}
}

func TestReportFilterSameDayRange(t *testing.T) {
	day := time.Date(2026, time.March, 10, 16, 45, 0, 0, time.UTC)
	filter := ReportFilter{UseDateRange: true, From: day, To: day}
	if err := filter.Validate(); err != nil {
		t.Errorf("Validate() = %v for single-day range", err)
	}
}
