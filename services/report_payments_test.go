// services/report_payments_test.go
package services

import (
	"testing"
	"time"

	"vetcare-backend/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func paymentWithOwner(owner *models.User, total string, status int, aid bool, createdAt time.Time) models.Payment {
	method := models.MetodoEfectivo
	return models.Payment{
		ID:           uuid.New(),
		Total:        decimal.RequireFromString(total),
		Method:       &method,
		VoluntaryAid: aid,
		Status:       status,
		CreatedAt:    createdAt,
		Treatment: models.Treatment{
			ID:          uuid.New(),
			Description: "Control",
			Status:      models.TratamientoCompletado,
			History: models.MedicalHistory{
				Pet: models.Pet{
					ID:      uuid.New(),
					Name:    "Firulais",
					Species: models.EspeciePerro,
					Owner:   owner,
				},
			},
		},
	}
}

func TestBuildPaymentReportIncome(t *testing.T) {
	createdAt := time.Date(2026, 8, 12, 10, 0, 0, 0, time.UTC)
	owner := &models.User{ID: uuid.New(), Name: "Ana"}

	payments := []models.Payment{
		paymentWithOwner(owner, "10.10", models.PagoCompletado, false, createdAt),
		paymentWithOwner(owner, "20.20", models.PagoCompletado, true, createdAt),
		paymentWithOwner(owner, "99.00", models.PagoPendiente, false, createdAt),
		paymentWithOwner(owner, "50.00", models.PagoCancelado, false, createdAt),
	}

	data := BuildPaymentReport(payments)

	stats := data.Estadisticas
	if stats.TotalPagos != 4 {
		t.Fatalf("TotalPagos = %d, want 4", stats.TotalPagos)
	}
	if stats.PagosPendientes != 1 || stats.PagosCompletados != 2 || stats.PagosCancelados != 1 {
		t.Errorf("status counts = %d/%d/%d", stats.PagosPendientes, stats.PagosCompletados, stats.PagosCancelados)
	}
	if stats.TotalIngresos != "30.30" {
		t.Errorf("TotalIngresos = %q, want 30.30 (pending and cancelled excluded)", stats.TotalIngresos)
	}
	if stats.PromedioIngresos != "15.15" {
		t.Errorf("PromedioIngresos = %q, want 15.15", stats.PromedioIngresos)
	}
	if stats.TotalAyudaVoluntaria != "20.20" {
		t.Errorf("TotalAyudaVoluntaria = %q, want 20.20", stats.TotalAyudaVoluntaria)
	}
	if stats.PagosEfectivo != 4 {
		t.Errorf("PagosEfectivo = %d, want 4", stats.PagosEfectivo)
	}

	months := data.Graficos.IngresosPorMes
	if len(months) != 1 || months[0].Ingresos != "30.30" {
		t.Errorf("IngresosPorMes = %+v, want one month at 30.30", months)
	}
}

func TestBuildPaymentReportTopClients(t *testing.T) {
	createdAt := time.Date(2026, 8, 12, 10, 0, 0, 0, time.UTC)
	ana := &models.User{ID: uuid.New(), Name: "Ana"}
	beto := &models.User{ID: uuid.New(), Name: "Beto"}

	payments := []models.Payment{
		paymentWithOwner(ana, "10.00", models.PagoCompletado, false, createdAt),
		paymentWithOwner(beto, "5.00", models.PagoCompletado, false, createdAt),
		paymentWithOwner(beto, "5.00", models.PagoPendiente, false, createdAt),
	}

	data := BuildPaymentReport(payments)

	clients := data.Graficos.TopClientesPagos
	if len(clients) != 2 {
		t.Fatalf("TopClientesPagos len = %d, want 2", len(clients))
	}
	if clients[0].NombreCliente != "Beto" || clients[0].CantidadPagos != 2 {
		t.Errorf("clients[0] = %+v, want Beto with 2 payments", clients[0])
	}
	if clients[0].TotalPagado != "10.00" {
		t.Errorf("Beto TotalPagado = %q, want 10.00", clients[0].TotalPagado)
	}
}

func TestBuildPaymentReportEmpty(t *testing.T) {
	data := BuildPaymentReport(nil)

	if data.Estadisticas.TotalIngresos != "0.00" {
		t.Errorf("TotalIngresos = %q, want 0.00", data.Estadisticas.TotalIngresos)
	}
	if data.Estadisticas.PromedioIngresos != "0.00" {
		t.Errorf("PromedioIngresos = %q, want 0.00", data.Estadisticas.PromedioIngresos)
	}
	if len(data.Graficos.PagosPorDia) != 0 {
		t.Errorf("PagosPorDia = %+v, want empty", data.Graficos.PagosPorDia)
	}
}

func TestBuildRevenueSummary(t *testing.T) {
	summary := BuildRevenueSummary(
		decimal.RequireFromString("50.00"),
		decimal.RequireFromString("200.00"),
	)
	if summary.TotalVerificado != "50.00" || summary.TotalGeneral != "200.00" {
		t.Errorf("totals = %q/%q", summary.TotalVerificado, summary.TotalGeneral)
	}
	if summary.PorcentajeVerificados != 25 || summary.PorcentajeTotales != 100 {
		t.Errorf("percentages = %v/%v, want 25/100", summary.PorcentajeVerificados, summary.PorcentajeTotales)
	}
}

func TestBuildRevenueSummaryZeroOverall(t *testing.T) {
	summary := BuildRevenueSummary(decimal.Zero, decimal.Zero)
	if summary.TotalVerificado != "0.00" || summary.TotalGeneral != "0.00" {
		t.Errorf("totals = %q/%q, want 0.00/0.00", summary.TotalVerificado, summary.TotalGeneral)
	}
	if summary.PorcentajeVerificados != 0 || summary.PorcentajeTotales != 0 {
		t.Errorf("percentages = %v/%v, want 0/0", summary.PorcentajeVerificados, summary.PorcentajeTotales)
	}
}
