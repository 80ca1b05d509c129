package services

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestPercent(t *testing.T) {
	tests := []struct {
		name  string
		part  int
		total int
		want  string
	}{
		{"zero total", 5, 0, "0.00%"},
		{"zero part", 0, 10, "0.00%"},
		{"one third", 1, 3, "33.33%"},
		{"two thirds", 2, 3, "66.67%"},
		{"full", 10, 10, "100.00%"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Percent(tt.part, tt.total); got != tt.want {
				t.Errorf("Percent(%d, %d) = %q, want %q", tt.part, tt.total, got, tt.want)
			}
		})
	}
}

func TestPercentDecimalZeroTotal(t *testing.T) {
	got := PercentDecimal(decimal.NewFromInt(5), decimal.Zero)
	if got != "0.00%" {
		t.Errorf("PercentDecimal with zero total = %q, want 0.00%%", got)
	}
}

func TestRatio(t *testing.T) {
	if got := Ratio(10, 0); got != 0 {
		t.Errorf("Ratio(10, 0) = %v, want 0", got)
	}
	if got := Ratio(3, 4); got != 0.75 {
		t.Errorf("Ratio(3, 4) = %v, want 0.75", got)
	}
}

func TestMonthLabel(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"2026-01", "Enero 2026"},
		{"2025-12", "Diciembre 2025"},
		{"2026-08", "Agosto 2026"},
		{"not-a-month", "not-a-month"},
	}

	for _, tt := range tests {
		if got := monthLabel(tt.key); got != tt.want {
			t.Errorf("monthLabel(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}
}

func TestMonthSeriesChronological(t *testing.T) {
	counts := map[string]int{
		"2026-03": 2,
		"2025-11": 5,
		"2026-01": 1,
	}

	series := monthSeries(counts)
	want := []MesCantidad{
		{Mes: "Noviembre 2025", Cantidad: 5},
		{Mes: "Enero 2026", Cantidad: 1},
		{Mes: "Marzo 2026", Cantidad: 2},
	}

	if len(series) != len(want) {
		t.Fatalf("got %d points, want %d", len(series), len(want))
	}
	for i := range want {
		if series[i] != want[i] {
			t.Errorf("series[%d] = %+v, want %+v", i, series[i], want[i])
		}
	}
}

func TestMonthRevenueSeries(t *testing.T) {
	totals := map[string]decimal.Decimal{
		"2026-02": decimal.RequireFromString("10.10").Add(decimal.RequireFromString("20.20")),
		"2026-01": decimal.RequireFromString("0.30"),
	}

	series := monthRevenueSeries(totals)
	if len(series) != 2 {
		t.Fatalf("got %d points, want 2", len(series))
	}
	if series[0].Ingresos != "0.30" || series[1].Ingresos != "30.30" {
		t.Errorf("unexpected totals: %+v", series)
	}
}

func TestTopCounts(t *testing.T) {
	counts := map[string]int{
		"Amoxicilina": 3,
		"Ivermectina": 7,
		"Carprofeno":  3,
		"Vacuna":      1,
	}

	top := topCounts(counts, 3)
	if len(top) != 3 {
		t.Fatalf("got %d entries, want 3", len(top))
	}
	if top[0].Nombre != "Ivermectina" {
		t.Errorf("top[0] = %q, want Ivermectina", top[0].Nombre)
	}
	// equal counts break ties by name
	if top[1].Nombre != "Amoxicilina" || top[2].Nombre != "Carprofeno" {
		t.Errorf("tie order = %q, %q", top[1].Nombre, top[2].Nombre)
	}
}

func TestDayAndMonthKeys(t *testing.T) {
	ts := time.Date(2026, time.August, 9, 23, 30, 0, 0, time.UTC)
	if got := dayKey(ts); got != "2026-08-09" {
		t.Errorf("dayKey = %q", got)
	}
	if got := monthKey(ts); got != "2026-08" {
		t.Errorf("monthKey = %q", got)
	}
}

func TestTruncateName(t *testing.T) {
	if got := truncateName("Corte"); got != "Corte" {
		t.Errorf("short name changed: %q", got)
	}
	long := "Limpieza dental profunda con anestesia"
	got := truncateName(long)
	if got != long[:20]+"..." {
		t.Errorf("truncateName = %q", got)
	}
}
