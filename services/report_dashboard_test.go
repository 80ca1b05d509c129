// services/report_dashboard_test.go
package services

import (
	"reflect"
	"testing"
	"time"

	"vetcare-backend/models"

	"github.com/shopspring/decimal"
)

func TestBuildUserStats(t *testing.T) {
	rows := []RoleCount{
		{Rol: models.RolAdministrador, Cantidad: 1},
		{Rol: models.RolUsuario, Cantidad: 2},
	}

	stats := BuildUserStats(rows, 2, 1)

	if stats.Total != 3 {
		t.Errorf("Total = %d, want 3", stats.Total)
	}
	if got := stats.PorcentajePorRol[models.RolAdministrador]; got != "33.33%" {
		t.Errorf("admin percent = %q, want 33.33%%", got)
	}
	if got := stats.PorcentajePorRol[models.RolUsuario]; got != "66.67%" {
		t.Errorf("user percent = %q, want 66.67%%", got)
	}
	if stats.Verificados != 2 || stats.NoVerificados != 1 {
		t.Errorf("verificados/no = %d/%d, want 2/1", stats.Verificados, stats.NoVerificados)
	}
}

func TestBuildUserStatsEmpty(t *testing.T) {
	stats := BuildUserStats(nil, 0, 0)
	if stats.Total != 0 {
		t.Errorf("Total = %d, want 0", stats.Total)
	}
	if len(stats.PorcentajePorRol) != 0 {
		t.Errorf("PorcentajePorRol = %v, want empty", stats.PorcentajePorRol)
	}
}

func TestBuildPetStats(t *testing.T) {
	yes, no := true, false
	rows := []PetGroupCount{
		{Especie: models.EspeciePerro, Sexo: models.SexoMacho, Esterilizado: &yes, Cantidad: 2},
		{Especie: models.EspecieGato, Sexo: models.SexoHembra, Esterilizado: &no, Cantidad: 1},
		{Especie: models.EspecieGato, Sexo: models.SexoHembra, Esterilizado: nil, Cantidad: 1},
	}

	stats := BuildPetStats(rows)

	if stats.Total != 4 {
		t.Fatalf("Total = %d, want 4", stats.Total)
	}
	if stats.PorEspecie[models.EspecieGato] != 2 {
		t.Errorf("gatos = %d, want 2", stats.PorEspecie[models.EspecieGato])
	}
	if got := stats.PorcentajePorEspecie[models.EspeciePerro]; got != "50.00%" {
		t.Errorf("perro percent = %q, want 50.00%%", got)
	}
	if stats.Esterilizados != 2 || stats.NoEsterilizados != 2 {
		t.Errorf("esterilizados/no = %d/%d, want 2/2", stats.Esterilizados, stats.NoEsterilizados)
	}
	if stats.PorSexo[models.SexoHembra] != 2 {
		t.Errorf("hembras = %d, want 2", stats.PorSexo[models.SexoHembra])
	}
}

func TestBuildStatusStatsZeroTotalGuard(t *testing.T) {
	stats := BuildStatusStats([]StatusCount{{Estado: models.ReservaPendiente, Cantidad: 0}})
	if got := stats.PorcentajePorEstado[models.ReservaPendiente]; got != "0.00%" {
		t.Errorf("percent with zero total = %q, want 0.00%%", got)
	}
}

func TestBuildPaymentStats(t *testing.T) {
	cash := models.MetodoEfectivo
	rows := []PaymentGroupCount{
		{Estado: models.PagoCompletado, EsAyudaVoluntaria: false, MetodoPago: &cash, Cantidad: 3},
		{Estado: models.PagoPendiente, EsAyudaVoluntaria: true, MetodoPago: nil, Cantidad: 1},
	}

	stats := BuildPaymentStats(rows)

	if stats.Total != 4 {
		t.Fatalf("Total = %d, want 4", stats.Total)
	}
	if stats.PorEstado[models.PagoCompletado] != 3 || stats.PorEstado[models.PagoCancelado] != 0 {
		t.Errorf("PorEstado = %v", stats.PorEstado)
	}
	if got := stats.PorcentajeAyudaVoluntaria; got != "25.00%" {
		t.Errorf("ayuda percent = %q, want 25.00%%", got)
	}
	if stats.PorMetodo[models.MetodoEfectivo] != 3 {
		t.Errorf("efectivo = %d, want 3", stats.PorMetodo[models.MetodoEfectivo])
	}
	if got := stats.PorcentajePorMetodo[models.MetodoTarjeta]; got != "0.00%" {
		t.Errorf("tarjeta percent = %q, want 0.00%%", got)
	}
}

func TestBuildMedicationStats(t *testing.T) {
	rows := []MedicationGroupCount{
		{Tipo: models.TipoAntibiotico, Cantidad: 3, ConCodigo: 2},
		{Tipo: models.TipoVacuna, Cantidad: 1, ConCodigo: 1},
	}

	stats := BuildMedicationStats(rows)

	if stats.Total != 4 || stats.ConCodigo != 3 {
		t.Errorf("total/conCodigo = %d/%d, want 4/3", stats.Total, stats.ConCodigo)
	}
	if got := stats.PorcentajeConCodigo; got != "75.00%" {
		t.Errorf("PorcentajeConCodigo = %q, want 75.00%%", got)
	}
	if got := stats.PorcentajePorTipo[models.TipoAntibiotico]; got != "75.00%" {
		t.Errorf("antibiotico percent = %q, want 75.00%%", got)
	}
}

func TestBuildActivitySeries(t *testing.T) {
	day1 := time.Date(2026, 8, 10, 9, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 8, 11, 15, 30, 0, 0, time.UTC)
	day3 := time.Date(2026, 8, 12, 8, 0, 0, 0, time.UTC)

	pets := []time.Time{day1, day1}
	treatments := []time.Time{day2}
	payDates := []time.Time{day3}
	payTotals := map[string]decimal.Decimal{
		dayKey(day3): decimal.RequireFromString("45.50"),
	}
	reservations := []time.Time{day1}

	data := BuildActivitySeries(pets, treatments, payDates, payTotals, reservations)

	if len(data.Actividad) != 3 || len(data.Finanzas) != 3 {
		t.Fatalf("series lengths = %d/%d, want 3/3", len(data.Actividad), len(data.Finanzas))
	}
	want := []ActivityPoint{
		{Date: "2026-08-10", Mascotas: 2, Tratamientos: 0},
		{Date: "2026-08-11", Mascotas: 0, Tratamientos: 1},
		{Date: "2026-08-12", Mascotas: 0, Tratamientos: 0},
	}
	if !reflect.DeepEqual(data.Actividad, want) {
		t.Errorf("Actividad = %+v, want %+v", data.Actividad, want)
	}

	// Days without completed payments report a zero amount.
	if data.Finanzas[0].Ingresos != "0.00" {
		t.Errorf("Finanzas[0].Ingresos = %q, want 0.00", data.Finanzas[0].Ingresos)
	}
	if data.Finanzas[2].Ingresos != "45.50" {
		t.Errorf("Finanzas[2].Ingresos = %q, want 45.50", data.Finanzas[2].Ingresos)
	}
	if data.Finanzas[0].Reservas != 1 {
		t.Errorf("Finanzas[0].Reservas = %d, want 1", data.Finanzas[0].Reservas)
	}

	again := BuildActivitySeries(pets, treatments, payDates, payTotals, reservations)
	if !reflect.DeepEqual(data, again) {
		t.Error("series must be deterministic for identical input")
	}
}

func TestBuildActivitySeriesEmpty(t *testing.T) {
	data := BuildActivitySeries(nil, nil, nil, nil, nil)
	if len(data.Actividad) != 0 || len(data.Finanzas) != 0 {
		t.Errorf("empty input produced %d/%d points", len(data.Actividad), len(data.Finanzas))
	}
}
