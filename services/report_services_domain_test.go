// services/report_services_domain_test.go
package services

import (
	"testing"
	"time"

	"vetcare-backend/models"

	"github.com/shopspring/decimal"
)

func TestBuildServiceReport(t *testing.T) {
	createdAt := time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)

	bath := models.Service{
		Name:        "Baño",
		Description: "Baño completo",
		Price:       decimal.RequireFromString("20.00"),
		Status:      models.ServicioDisponible,
		Treatments: []models.TreatmentService{
			{
				Price:     decimal.RequireFromString("20.00"),
				Treatment: models.Treatment{Status: models.TratamientoCompletado, CreatedAt: createdAt},
			},
			{
				Price:     decimal.RequireFromString("18.00"),
				Treatment: models.Treatment{Status: models.TratamientoEnProgreso, CreatedAt: createdAt},
			},
		},
	}
	grooming := models.Service{
		Name:   "Peluqueria",
		Price:  decimal.RequireFromString("30.00"),
		Status: models.ServicioNoDisponible,
	}

	data := BuildServiceReport([]models.Service{bath, grooming})

	stats := data.Estadisticas
	if stats.TotalServicios != 2 {
		t.Fatalf("TotalServicios = %d, want 2", stats.TotalServicios)
	}
	if stats.ServiciosActivos != 1 || stats.ServiciosInactivos != 1 {
		t.Errorf("activos/inactivos = %d/%d, want 1/1", stats.ServiciosActivos, stats.ServiciosInactivos)
	}
	if stats.PromedioPrecios != "25.00" {
		t.Errorf("PromedioPrecios = %q, want 25.00", stats.PromedioPrecios)
	}
	// Only the line attached to a completed treatment earns income.
	if stats.IngresosTotales != "20.00" {
		t.Errorf("IngresosTotales = %q, want 20.00", stats.IngresosTotales)
	}
	if stats.ServiciosMasUtilizados[0].Nombre != "Baño" || stats.ServiciosMasUtilizados[0].Usos != 2 {
		t.Errorf("ServiciosMasUtilizados = %+v", stats.ServiciosMasUtilizados)
	}

	byPrice := data.Graficos.ServiciosPorPrecio
	if byPrice[0].Nombre != "Peluqueria" {
		t.Errorf("ServiciosPorPrecio = %+v, want Peluqueria first", byPrice)
	}

	trend := data.Graficos.TendenciaUso
	if len(trend) != 1 || trend[0].Mes != "Agosto 2026" || trend[0].Usos != 2 {
		t.Errorf("TendenciaUso = %+v", trend)
	}
}

func TestBuildServiceReportEmpty(t *testing.T) {
	data := BuildServiceReport(nil)
	if data.Estadisticas.PromedioPrecios != "0.00" {
		t.Errorf("PromedioPrecios = %q, want 0.00", data.Estadisticas.PromedioPrecios)
	}
	if data.Estadisticas.IngresosTotales != "0.00" {
		t.Errorf("IngresosTotales = %q, want 0.00", data.Estadisticas.IngresosTotales)
	}
	if len(data.Servicios) != 0 {
		t.Errorf("Servicios = %+v, want empty", data.Servicios)
	}
}
