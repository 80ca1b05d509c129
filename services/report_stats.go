// services/report_stats.go
package services

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// Percent renders (part/total)*100 as "NN.NN%". A zero total yields "0.00%"
// so empty report periods never surface NaN.
func Percent(part, total int) string {
	if total == 0 {
		return "0.00%"
	}
	return fmt.Sprintf("%.2f%%", float64(part)/float64(total)*100)
}

// PercentDecimal is the decimal-arithmetic variant for monetary shares.
func PercentDecimal(part, total decimal.Decimal) string {
	if total.IsZero() {
		return "0.00%"
	}
	return part.Div(total).Mul(decimal.NewFromInt(100)).StringFixed(2) + "%"
}

// Ratio is the guarded float division used for count averages.
func Ratio(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total)
}

// dayKey buckets a timestamp by calendar day. ISO keys keep the grouping
// locale-independent; labels are applied at the chart boundary only.
func dayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// monthKey buckets a timestamp by calendar month, as "2006-01".
func monthKey(t time.Time) string {
	return t.Format("2006-01")
}

var spanishMonths = [...]string{
	"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
	"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
}

var spanishWeekdays = [...]string{
	"Domingo", "Lunes", "Martes", "Miercoles", "Jueves", "Viernes", "Sabado",
}

// monthLabel turns a monthKey into a display label, e.g. "Enero 2026".
func monthLabel(key string) string {
	t, err := time.Parse("2006-01", key)
	if err != nil {
		return key
	}
	return fmt.Sprintf("%s %d", spanishMonths[t.Month()-1], t.Year())
}

func weekdayLabel(t time.Time) string {
	return spanishWeekdays[t.Weekday()]
}

// monthSeries converts a month-keyed count map into a chronological series
// with display labels.
func monthSeries(counts map[string]int) []MesCantidad {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	series := make([]MesCantidad, 0, len(keys))
	for _, k := range keys {
		series = append(series, MesCantidad{Mes: monthLabel(k), Cantidad: counts[k]})
	}
	return series
}

// monthRevenueSeries is the decimal-sum variant of monthSeries.
func monthRevenueSeries(totals map[string]decimal.Decimal) []MesIngresos {
	keys := make([]string, 0, len(totals))
	for k := range totals {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	series := make([]MesIngresos, 0, len(keys))
	for _, k := range keys {
		series = append(series, MesIngresos{Mes: monthLabel(k), Ingresos: totals[k].StringFixed(2)})
	}
	return series
}

// topCounts sorts a name-keyed count map descending and caps it at n.
func topCounts(counts map[string]int, n int) []NombreCantidad {
	out := make([]NombreCantidad, 0, len(counts))
	for nombre, cantidad := range counts {
		out = append(out, NombreCantidad{Nombre: nombre, Cantidad: cantidad})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Cantidad != out[j].Cantidad {
			return out[i].Cantidad > out[j].Cantidad
		}
		return out[i].Nombre < out[j].Nombre
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// truncateName shortens long catalog names for chart axes.
func truncateName(name string) string {
	if len(name) > 20 {
		return name[:20] + "..."
	}
	return name
}
