// services/report_dashboard.go
//
// Admin dashboard aggregates. Unlike the per-domain reports, the queries
// here run as database aggregations fanned out across goroutines, and any
// failed sub-query fails the whole call.
package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"vetcare-backend/models"

	"github.com/shopspring/decimal"
)

type UserStats struct {
	Total            int               `json:"total"`
	PorRol           map[string]int    `json:"porRol"`
	PorcentajePorRol map[string]string `json:"porcentajePorRol"`
	Verificados      int               `json:"verificados"`
	NoVerificados    int               `json:"noVerificados"`
}

type PetStats struct {
	Total                     int               `json:"total"`
	PorEspecie                map[string]int    `json:"porEspecie"`
	PorcentajePorEspecie      map[string]string `json:"porcentajePorEspecie"`
	PorSexo                   map[string]int    `json:"porSexo"`
	PorcentajePorSexo         map[string]string `json:"porcentajePorSexo"`
	Esterilizados             int               `json:"esterilizados"`
	NoEsterilizados           int               `json:"noEsterilizados"`
	PorcentajeEsterilizados   string            `json:"porcentajeEsterilizados"`
	PorcentajeNoEsterilizados string            `json:"porcentajeNoEsterilizados"`
}

type StatusStats struct {
	Total               int            `json:"total"`
	PorEstado           map[int]int    `json:"porEstado"`
	PorcentajePorEstado map[int]string `json:"porcentajePorEstado"`
}

type PaymentStats struct {
	Total                       int               `json:"total"`
	PorEstado                   map[int]int       `json:"porEstado"`
	PorcentajePorEstado         map[int]string    `json:"porcentajePorEstado"`
	AyudaVoluntaria             int               `json:"ayudaVoluntaria"`
	NoAyudaVoluntaria           int               `json:"noAyudaVoluntaria"`
	PorcentajeAyudaVoluntaria   string            `json:"porcentajeAyudaVoluntaria"`
	PorcentajeNoAyudaVoluntaria string            `json:"porcentajeNoAyudaVoluntaria"`
	PorMetodo                   map[string]int    `json:"porMetodo"`
	PorcentajePorMetodo         map[string]string `json:"porcentajePorMetodo"`
}

type MedicationStats struct {
	Total               int               `json:"total"`
	PorTipo             map[string]int    `json:"porTipo"`
	PorcentajePorTipo   map[string]string `json:"porcentajePorTipo"`
	ConCodigo           int               `json:"conCodigo"`
	PorcentajeConCodigo string            `json:"porcentajeConCodigo"`
}

type DashboardStats struct {
	Usuarios                UserStats       `json:"usuarios"`
	Mascotas                PetStats        `json:"mascotas"`
	Historiales             StatusStats     `json:"historiales"`
	Tratamientos            StatusStats     `json:"tratamientos"`
	Pagos                   PaymentStats    `json:"pagos"`
	Medicamentos            MedicationStats `json:"medicamentos"`
	Servicios               StatusStats     `json:"servicios"`
	Reservas                StatusStats     `json:"reservas"`
	ServicioTratamientos    int64           `json:"servicioTratamientos"`
	TratamientoMedicamentos int64           `json:"tratamientoMedicamentos"`
}

// Grouped-count scan targets.

type RoleCount struct {
	Rol      string `json:"rol"`
	Cantidad int    `json:"cantidad"`
}

type PetGroupCount struct {
	Especie      string `json:"especie"`
	Sexo         string `json:"sexo"`
	Esterilizado *bool  `json:"esterilizado"`
	Cantidad     int    `json:"cantidad"`
}

type StatusCount struct {
	Estado   int `json:"estado"`
	Cantidad int `json:"cantidad"`
}

type PaymentGroupCount struct {
	Estado            int     `json:"estado"`
	EsAyudaVoluntaria bool    `json:"esAyudaVoluntaria"`
	MetodoPago        *string `json:"metodoPago"`
	Cantidad          int     `json:"cantidad"`
}

type MedicationGroupCount struct {
	Tipo      string `json:"tipo"`
	Cantidad  int    `json:"cantidad"`
	ConCodigo int    `json:"conCodigo"`
}

// Statistics runs the dashboard's grouped counts concurrently and assembles
// the aggregate view. Any failed sub-query fails the whole call.
func (s *ReportService) Statistics(ctx context.Context) (*DashboardStats, error) {
	db := s.db.WithContext(ctx)

	var (
		roleRows    []RoleCount
		petRows     []PetGroupCount
		histRows    []StatusCount
		treatRows   []StatusCount
		payRows     []PaymentGroupCount
		medRows     []MedicationGroupCount
		svcRows     []StatusCount
		resRows     []StatusCount
		verified    int64
		unverified  int64
		svcLinks    int64
		medLinks    int64
	)

	queries := []struct {
		name string
		run  func() error
	}{
		{"usuarios", func() error {
			return db.Model(&models.User{}).
				Select("rol, COUNT(*) AS cantidad").
				Where("estado <> 0").Group("rol").Scan(&roleRows).Error
		}},
		{"mascotas", func() error {
			return db.Model(&models.Pet{}).
				Select("especie, sexo, esterilizado, COUNT(*) AS cantidad").
				Where("estado <> 0").Group("especie, sexo, esterilizado").Scan(&petRows).Error
		}},
		{"historiales", func() error {
			return db.Model(&models.MedicalHistory{}).
				Select("estado, COUNT(*) AS cantidad").
				Where("estado <> 0").Group("estado").Scan(&histRows).Error
		}},
		{"tratamientos", func() error {
			return db.Model(&models.Treatment{}).
				Select("estado, COUNT(*) AS cantidad").
				Where("estado <> 0").Group("estado").Scan(&treatRows).Error
		}},
		{"pagos", func() error {
			return db.Model(&models.Payment{}).
				Select("estado, es_ayuda_voluntaria, metodo_pago, COUNT(*) AS cantidad").
				Where("estado <> 0").Group("estado, es_ayuda_voluntaria, metodo_pago").Scan(&payRows).Error
		}},
		{"medicamentos", func() error {
			return db.Model(&models.Medication{}).
				Select("tipo, COUNT(*) AS cantidad, COUNT(codigo) AS con_codigo").
				Where("estado <> 0").Group("tipo").Scan(&medRows).Error
		}},
		{"servicios", func() error {
			return db.Model(&models.Service{}).
				Select("estado, COUNT(*) AS cantidad").
				Where("estado <> 0").Group("estado").Scan(&svcRows).Error
		}},
		{"reservas", func() error {
			return db.Model(&models.Reservation{}).
				Select("estado, COUNT(*) AS cantidad").
				Where("estado <> 0").Group("estado").Scan(&resRows).Error
		}},
		{"usuarios verificados", func() error {
			return db.Model(&models.User{}).
				Where("email_verified IS NOT NULL AND estado <> 0").Count(&verified).Error
		}},
		{"usuarios no verificados", func() error {
			return db.Model(&models.User{}).
				Where("email_verified IS NULL AND estado <> 0").Count(&unverified).Error
		}},
		{"servicio tratamientos", func() error {
			return db.Model(&models.TreatmentService{}).Count(&svcLinks).Error
		}},
		{"tratamiento medicamentos", func() error {
			return db.Model(&models.TreatmentMedication{}).Count(&medLinks).Error
		}},
	}

	errc := make(chan error, len(queries))
	for _, q := range queries {
		q := q
		go func() {
			if err := q.run(); err != nil {
				errc <- fmt.Errorf("estadisticas %s: %w", q.name, err)
				return
			}
			errc <- nil
		}()
	}
	for range queries {
		if err := <-errc; err != nil {
			return nil, err
		}
	}

	stats := &DashboardStats{
		Usuarios:                BuildUserStats(roleRows, int(verified), int(unverified)),
		Mascotas:                BuildPetStats(petRows),
		Historiales:             BuildStatusStats(histRows),
		Tratamientos:            BuildStatusStats(treatRows),
		Pagos:                   BuildPaymentStats(payRows),
		Medicamentos:            BuildMedicationStats(medRows),
		Servicios:               BuildStatusStats(svcRows),
		Reservas:                BuildStatusStats(resRows),
		ServicioTratamientos:    svcLinks,
		TratamientoMedicamentos: medLinks,
	}
	return stats, nil
}

func BuildUserStats(rows []RoleCount, verified, unverified int) UserStats {
	total := 0
	for _, r := range rows {
		total += r.Cantidad
	}
	stats := UserStats{
		Total:            total,
		PorRol:           map[string]int{},
		PorcentajePorRol: map[string]string{},
		Verificados:      verified,
		NoVerificados:    unverified,
	}
	for _, r := range rows {
		stats.PorRol[r.Rol] = r.Cantidad
		stats.PorcentajePorRol[r.Rol] = Percent(r.Cantidad, total)
	}
	return stats
}

func BuildPetStats(rows []PetGroupCount) PetStats {
	total := 0
	for _, r := range rows {
		total += r.Cantidad
	}
	stats := PetStats{
		Total:                total,
		PorEspecie:           map[string]int{},
		PorcentajePorEspecie: map[string]string{},
		PorSexo:              map[string]int{},
		PorcentajePorSexo:    map[string]string{},
	}
	for _, especie := range []string{models.EspeciePerro, models.EspecieGato, models.EspecieOtro} {
		n := 0
		for _, r := range rows {
			if r.Especie == especie {
				n += r.Cantidad
			}
		}
		stats.PorEspecie[especie] = n
		stats.PorcentajePorEspecie[especie] = Percent(n, total)
	}
	for _, sexo := range []string{models.SexoMacho, models.SexoHembra} {
		n := 0
		for _, r := range rows {
			if r.Sexo == sexo {
				n += r.Cantidad
			}
		}
		stats.PorSexo[sexo] = n
		stats.PorcentajePorSexo[sexo] = Percent(n, total)
	}
	for _, r := range rows {
		if r.Esterilizado != nil && *r.Esterilizado {
			stats.Esterilizados += r.Cantidad
		} else {
			stats.NoEsterilizados += r.Cantidad
		}
	}
	stats.PorcentajeEsterilizados = Percent(stats.Esterilizados, total)
	stats.PorcentajeNoEsterilizados = Percent(stats.NoEsterilizados, total)
	return stats
}

func BuildStatusStats(rows []StatusCount) StatusStats {
	total := 0
	for _, r := range rows {
		total += r.Cantidad
	}
	stats := StatusStats{
		Total:               total,
		PorEstado:           map[int]int{},
		PorcentajePorEstado: map[int]string{},
	}
	for _, r := range rows {
		stats.PorEstado[r.Estado] = r.Cantidad
		stats.PorcentajePorEstado[r.Estado] = Percent(r.Cantidad, total)
	}
	return stats
}

func BuildPaymentStats(rows []PaymentGroupCount) PaymentStats {
	total := 0
	for _, r := range rows {
		total += r.Cantidad
	}
	stats := PaymentStats{
		Total:               total,
		PorEstado:           map[int]int{},
		PorcentajePorEstado: map[int]string{},
		PorMetodo:           map[string]int{},
		PorcentajePorMetodo: map[string]string{},
	}
	for _, estado := range []int{models.PagoPendiente, models.PagoCompletado, models.PagoCancelado} {
		n := 0
		for _, r := range rows {
			if r.Estado == estado {
				n += r.Cantidad
			}
		}
		stats.PorEstado[estado] = n
		stats.PorcentajePorEstado[estado] = Percent(n, total)
	}
	for _, r := range rows {
		if r.EsAyudaVoluntaria {
			stats.AyudaVoluntaria += r.Cantidad
		} else {
			stats.NoAyudaVoluntaria += r.Cantidad
		}
	}
	stats.PorcentajeAyudaVoluntaria = Percent(stats.AyudaVoluntaria, total)
	stats.PorcentajeNoAyudaVoluntaria = Percent(stats.NoAyudaVoluntaria, total)
	for _, metodo := range models.MetodosPago {
		n := 0
		for _, r := range rows {
			if r.MetodoPago != nil && *r.MetodoPago == metodo {
				n += r.Cantidad
			}
		}
		stats.PorMetodo[metodo] = n
		stats.PorcentajePorMetodo[metodo] = Percent(n, total)
	}
	return stats
}

func BuildMedicationStats(rows []MedicationGroupCount) MedicationStats {
	total, coded := 0, 0
	for _, r := range rows {
		total += r.Cantidad
		coded += r.ConCodigo
	}
	stats := MedicationStats{
		Total:             total,
		PorTipo:           map[string]int{},
		PorcentajePorTipo: map[string]string{},
		ConCodigo:         coded,
	}
	for _, r := range rows {
		stats.PorTipo[r.Tipo] = r.Cantidad
		stats.PorcentajePorTipo[r.Tipo] = Percent(r.Cantidad, total)
	}
	stats.PorcentajeConCodigo = Percent(coded, total)
	return stats
}

// ActivityPoint is one day in the pets/treatments series.
type ActivityPoint struct {
	Date         string `json:"date"`
	Mascotas     int    `json:"mascotas"`
	Tratamientos int    `json:"tratamientos"`
}

// FinancePoint is one day in the income/reservations series.
type FinancePoint struct {
	Date     string `json:"date"`
	Ingresos string `json:"ingresos"`
	Reservas int    `json:"reservas"`
}

type ActivityData struct {
	Actividad []ActivityPoint `json:"datosGrafico1"`
	Finanzas  []FinancePoint  `json:"datosGrafico2"`
}

// ActivitySeries builds the two 90-day dashboard series ending at the given
// reference time. Income only counts completed payments; the other series
// include every non-removed row.
func (s *ReportService) ActivitySeries(ctx context.Context, now time.Time) (*ActivityData, error) {
	since := now.AddDate(0, 0, -90)
	db := s.db.WithContext(ctx)

	var pets, treatments, reservations []time.Time
	type paidRow struct {
		CreatedAt time.Time
		Total     decimal.Decimal
	}
	var payments []paidRow

	pull := func(model interface{}, dst *[]time.Time) error {
		return db.Model(model).
			Where("created_at BETWEEN ? AND ? AND estado <> 0", since, now).
			Pluck("created_at", dst).Error
	}

	queries := []struct {
		name string
		run  func() error
	}{
		{"mascotas", func() error { return pull(&models.Pet{}, &pets) }},
		{"tratamientos", func() error { return pull(&models.Treatment{}, &treatments) }},
		{"reservas", func() error { return pull(&models.Reservation{}, &reservations) }},
		{"pagos", func() error {
			return db.Model(&models.Payment{}).
				Select("created_at, total").
				Where("created_at BETWEEN ? AND ? AND estado = ?", since, now, models.PagoCompletado).
				Scan(&payments).Error
		}},
	}

	errc := make(chan error, len(queries))
	for _, q := range queries {
		q := q
		go func() {
			if err := q.run(); err != nil {
				errc <- fmt.Errorf("actividad %s: %w", q.name, err)
				return
			}
			errc <- nil
		}()
	}
	for range queries {
		if err := <-errc; err != nil {
			return nil, err
		}
	}

	payDates := make([]time.Time, 0, len(payments))
	payTotals := map[string]decimal.Decimal{}
	for _, p := range payments {
		payDates = append(payDates, p.CreatedAt)
		key := dayKey(p.CreatedAt)
		payTotals[key] = payTotals[key].Add(p.Total)
	}

	return BuildActivitySeries(pets, treatments, payDates, payTotals, reservations), nil
}

// BuildActivitySeries merges the per-domain timestamps into two aligned
// day-keyed series covering the union of active days.
func BuildActivitySeries(pets, treatments, payDates []time.Time, payTotals map[string]decimal.Decimal, reservations []time.Time) *ActivityData {
	days := map[string]bool{}
	petCounts := map[string]int{}
	treatCounts := map[string]int{}
	resCounts := map[string]int{}

	for _, t := range pets {
		k := dayKey(t)
		days[k] = true
		petCounts[k]++
	}
	for _, t := range treatments {
		k := dayKey(t)
		days[k] = true
		treatCounts[k]++
	}
	for _, t := range payDates {
		days[dayKey(t)] = true
	}
	for _, t := range reservations {
		k := dayKey(t)
		days[k] = true
		resCounts[k]++
	}

	keys := make([]string, 0, len(days))
	for k := range days {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	activity := make([]ActivityPoint, 0, len(keys))
	finance := make([]FinancePoint, 0, len(keys))
	for _, k := range keys {
		activity = append(activity, ActivityPoint{
			Date:         k,
			Mascotas:     petCounts[k],
			Tratamientos: treatCounts[k],
		})
		finance = append(finance, FinancePoint{
			Date:     k,
			Ingresos: payTotals[k].StringFixed(2),
			Reservas: resCounts[k],
		})
	}

	return &ActivityData{Actividad: activity, Finanzas: finance}
}
