// services/report_services_domain.go
package services

import (
	"context"
	"log"
	"sort"
	"time"

	"vetcare-backend/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ServiceReportRow struct {
	ID          uuid.UUID `json:"id"`
	Nombre      string    `json:"nombre"`
	Descripcion string    `json:"descripcion"`
	Precio      string    `json:"precio"`
	Estado      int       `json:"estado"`
	CreadoEn    time.Time `json:"creadoEn"`
	Usos        int       `json:"usos"`
	Ingresos    string    `json:"ingresos"`
}

type NombreUsos struct {
	Nombre string `json:"nombre"`
	Usos   int    `json:"usos"`
}

type NombreIngresos struct {
	Nombre   string `json:"nombre"`
	Ingresos string `json:"ingresos"`
}

type MesUsos struct {
	Mes  string `json:"mes"`
	Usos int    `json:"usos"`
}

type ServiceReportData struct {
	Servicios    []ServiceReportRow  `json:"servicios"`
	Estadisticas ServiceReportStats  `json:"estadisticas"`
	Graficos     ServiceReportCharts `json:"graficos"`
}

type ServiceReportStats struct {
	TotalServicios         int          `json:"totalServicios"`
	ServiciosActivos       int          `json:"serviciosActivos"`
	ServiciosInactivos     int          `json:"serviciosInactivos"`
	PromedioPrecios        string       `json:"promedioPrecios"`
	ServiciosMasUtilizados []NombreUsos `json:"serviciosMasUtilizados"`
	IngresosTotales        string       `json:"ingresosTotales"`
}

type ServiceReportCharts struct {
	ServiciosPorEstado  []EstadoCantidad `json:"serviciosPorEstado"`
	ServiciosPorPrecio  []NombrePrecio   `json:"serviciosPorPrecio"`
	ServiciosPorUso     []NombreUsos     `json:"serviciosPorUso"`
	IngresosPorServicio []NombreIngresos `json:"ingresosPorServicio"`
	TendenciaUso        []MesUsos        `json:"tendenciaUsoServicios"`
}

// ServiceReport builds the service-catalog report for the given filter.
// Rows come back ordered by name.
func (s *ReportService) ServiceReport(ctx context.Context, filter ReportFilter) (*ServiceReportData, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	var services []models.Service
	err := s.db.WithContext(ctx).
		Scopes(filter.scope("created_at")).
		Preload("Treatments").
		Preload("Treatments.Treatment").
		Order("nombre ASC").
		Find(&services).Error
	if err != nil {
		log.Printf("[REPORT] servicios: query failed: %v", err)
		return BuildServiceReport(nil), nil
	}

	return BuildServiceReport(services), nil
}

// BuildServiceReport reduces the fetched catalog into the report shape.
// Revenue only counts line items attached to completed treatments.
func BuildServiceReport(services []models.Service) *ServiceReportData {
	rows := make([]ServiceReportRow, 0, len(services))
	stats := ServiceReportStats{TotalServicios: len(services)}
	priceSum := decimal.Zero
	totalIncome := decimal.Zero
	usageByMonth := map[string]int{}

	for _, svc := range services {
		switch svc.Status {
		case models.ServicioDisponible:
			stats.ServiciosActivos++
		case models.ServicioNoDisponible:
			stats.ServiciosInactivos++
		}
		priceSum = priceSum.Add(svc.Price)

		income := decimal.Zero
		for _, st := range svc.Treatments {
			usageByMonth[monthKey(st.Treatment.CreatedAt)]++
			if st.Treatment.Status == models.TratamientoCompletado {
				income = income.Add(st.Price)
			}
		}
		totalIncome = totalIncome.Add(income)

		rows = append(rows, ServiceReportRow{
			ID:          svc.ID,
			Nombre:      svc.Name,
			Descripcion: svc.Description,
			Precio:      svc.Price.StringFixed(2),
			Estado:      svc.Status,
			CreadoEn:    svc.CreatedAt,
			Usos:        len(svc.Treatments),
			Ingresos:    income.StringFixed(2),
		})
	}

	avg := decimal.Zero
	if len(services) > 0 {
		avg = priceSum.Div(decimal.NewFromInt(int64(len(services))))
	}
	stats.PromedioPrecios = avg.StringFixed(2)
	stats.IngresosTotales = totalIncome.StringFixed(2)

	mostUsed := make([]NombreUsos, 0, len(rows))
	for _, r := range rows {
		mostUsed = append(mostUsed, NombreUsos{Nombre: r.Nombre, Usos: r.Usos})
	}
	sort.SliceStable(mostUsed, func(i, j int) bool { return mostUsed[i].Usos > mostUsed[j].Usos })
	if len(mostUsed) > 10 {
		stats.ServiciosMasUtilizados = mostUsed[:10]
	} else {
		stats.ServiciosMasUtilizados = mostUsed
	}

	byPrice := make([]NombrePrecio, 0, len(rows))
	for _, r := range rows {
		byPrice = append(byPrice, NombrePrecio{Nombre: truncateName(r.Nombre), Precio: r.Precio})
	}
	sort.SliceStable(byPrice, func(i, j int) bool {
		a, _ := decimal.NewFromString(byPrice[i].Precio)
		b, _ := decimal.NewFromString(byPrice[j].Precio)
		return a.GreaterThan(b)
	})

	byUse := make([]NombreUsos, 0, len(rows))
	for _, r := range rows {
		byUse = append(byUse, NombreUsos{Nombre: truncateName(r.Nombre), Usos: r.Usos})
	}
	sort.SliceStable(byUse, func(i, j int) bool { return byUse[i].Usos > byUse[j].Usos })
	if len(byUse) > 10 {
		byUse = byUse[:10]
	}

	byIncome := make([]NombreIngresos, 0, len(rows))
	for _, r := range rows {
		byIncome = append(byIncome, NombreIngresos{Nombre: truncateName(r.Nombre), Ingresos: r.Ingresos})
	}
	sort.SliceStable(byIncome, func(i, j int) bool {
		a, _ := decimal.NewFromString(byIncome[i].Ingresos)
		b, _ := decimal.NewFromString(byIncome[j].Ingresos)
		return a.GreaterThan(b)
	})

	trendKeys := make([]string, 0, len(usageByMonth))
	for k := range usageByMonth {
		trendKeys = append(trendKeys, k)
	}
	sort.Strings(trendKeys)
	trend := make([]MesUsos, 0, len(trendKeys))
	for _, k := range trendKeys {
		trend = append(trend, MesUsos{Mes: monthLabel(k), Usos: usageByMonth[k]})
	}

	return &ServiceReportData{
		Servicios:    rows,
		Estadisticas: stats,
		Graficos: ServiceReportCharts{
			ServiciosPorEstado: []EstadoCantidad{
				{Estado: "Disponibles", Cantidad: stats.ServiciosActivos},
				{Estado: "No Disponibles", Cantidad: stats.ServiciosInactivos},
			},
			ServiciosPorPrecio:  byPrice,
			ServiciosPorUso:     byUse,
			IngresosPorServicio: byIncome,
			TendenciaUso:        trend,
		},
	}
}
