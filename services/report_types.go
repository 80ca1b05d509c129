// services/report_types.go
//
// Shared input and chart types for the per-domain report builders. Every
// report returns rows, a statistics block and chart-ready series; monetary
// values travel as decimal.Decimal through the reductions and are rendered
// as fixed two-decimal strings only at the output boundary.
package services

import (
	"errors"
	"time"

	"vetcare-backend/utils"

	"gorm.io/gorm"
)

// ErrInvalidDateRange is returned when a filter's From day falls after its
// To day. Inverted ranges are rejected rather than silently emptied.
var ErrInvalidDateRange = errors.New("invalid date range: from is after to")

// ReportFilter selects the records feeding a report. When UseDateRange is
// set, From is floored to the start of its day and To is ceiled to the end
// of its day, both inclusive.
type ReportFilter struct {
	UseDateRange bool
	From         time.Time
	To           time.Time
}

// Bounds returns the effective inclusive range, or ok=false when no range
// filtering applies.
func (f ReportFilter) Bounds() (from, to time.Time, ok bool) {
	if !f.UseDateRange {
		return time.Time{}, time.Time{}, false
	}
	return utils.BeginningOfDay(f.From), utils.EndOfDay(f.To), true
}

// Validate rejects inverted ranges.
func (f ReportFilter) Validate() error {
	if !f.UseDateRange {
		return nil
	}
	from, to, _ := f.Bounds()
	if from.After(to) {
		return ErrInvalidDateRange
	}
	return nil
}

// scope restricts a query to non-removed rows within the filter range on the
// given timestamp column.
func (f ReportFilter) scope(column string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		db = db.Where("estado <> 0")
		if from, to, ok := f.Bounds(); ok {
			db = db.Where(column+" BETWEEN ? AND ?", from, to)
		}
		return db
	}
}

// Chart point shapes. The JSON keys match the category each series groups by.

type EstadoCantidad struct {
	Estado   string `json:"estado"`
	Cantidad int    `json:"cantidad"`
}

type EspecieCantidad struct {
	Especie  string `json:"especie"`
	Cantidad int    `json:"cantidad"`
}

type SexoCantidad struct {
	Sexo     string `json:"sexo"`
	Cantidad int    `json:"cantidad"`
}

type RangoCantidad struct {
	Rango    string `json:"rango"`
	Cantidad int    `json:"cantidad"`
}

type MesCantidad struct {
	Mes      string `json:"mes"`
	Cantidad int    `json:"cantidad"`
}

type MesIngresos struct {
	Mes      string `json:"mes"`
	Ingresos string `json:"ingresos"`
}

type MetodoCantidad struct {
	Metodo   string `json:"metodo"`
	Cantidad int    `json:"cantidad"`
}

type DiaCantidad struct {
	Dia      string `json:"dia"`
	Cantidad int    `json:"cantidad"`
}

type HoraCantidad struct {
	Hora     string `json:"hora"`
	Cantidad int    `json:"cantidad"`
}

type FechaCantidad struct {
	Fecha    string `json:"fecha"`
	Cantidad int    `json:"cantidad"`
}

type NombreCantidad struct {
	Nombre   string `json:"nombre"`
	Cantidad int    `json:"cantidad"`
}
