// services/report_reservations_test.go
package services

import (
	"testing"
	"time"

	"vetcare-backend/models"
)

func TestBuildReservationReport(t *testing.T) {
	// 2026-08-10 is a Monday, 2026-08-12 a Wednesday.
	monday := time.Date(2026, 8, 10, 9, 30, 0, 0, time.UTC)
	wednesday := time.Date(2026, 8, 12, 15, 0, 0, 0, time.UTC)

	ana := models.User{Name: "Ana"}
	beto := models.User{Name: "Beto"}

	reservations := []models.Reservation{
		{ScheduledAt: monday, Status: models.ReservaPendiente, User: ana},
		{ScheduledAt: monday, Status: models.ReservaCompletada, User: ana},
		{ScheduledAt: wednesday, Status: models.ReservaCancelada, User: beto},
	}

	data := BuildReservationReport(reservations)

	stats := data.Estadisticas
	if stats.TotalReservas != 3 {
		t.Fatalf("TotalReservas = %d, want 3", stats.TotalReservas)
	}
	if stats.ReservasPendientes != 1 || stats.ReservasCompletadas != 1 || stats.ReservasCanceladas != 1 {
		t.Errorf("status counts = %d/%d/%d", stats.ReservasPendientes,
			stats.ReservasCompletadas, stats.ReservasCanceladas)
	}
	if stats.ReservasPorUsuario["Ana"] != 2 || stats.ReservasPorUsuario["Beto"] != 1 {
		t.Errorf("ReservasPorUsuario = %v", stats.ReservasPorUsuario)
	}

	dates := data.Graficos.ReservasPorFecha
	if len(dates) != 2 || dates[0].Fecha != "2026-08-10" || dates[0].Cantidad != 2 {
		t.Errorf("ReservasPorFecha = %+v", dates)
	}

	hours := data.Graficos.ReservasPorHora
	if len(hours) != 2 || hours[0].Hora != "09:00" || hours[1].Hora != "15:00" {
		t.Errorf("ReservasPorHora = %+v", hours)
	}

	weekdays := data.Graficos.ReservasPorDiaSemana
	if len(weekdays) != 2 {
		t.Fatalf("ReservasPorDiaSemana len = %d, want 2", len(weekdays))
	}
	if weekdays[0].Dia != "Lunes" || weekdays[0].Cantidad != 2 {
		t.Errorf("weekdays[0] = %+v, want Lunes with 2", weekdays[0])
	}
	if weekdays[1].Dia != "Miercoles" || weekdays[1].Cantidad != 1 {
		t.Errorf("weekdays[1] = %+v, want Miercoles with 1", weekdays[1])
	}
}

func TestBuildReservationReportEmpty(t *testing.T) {
	data := BuildReservationReport(nil)

	if data.Reservas == nil {
		t.Fatal("Reservas must be a non-nil slice")
	}
	if data.Estadisticas.TotalReservas != 0 {
		t.Errorf("TotalReservas = %d, want 0", data.Estadisticas.TotalReservas)
	}
	if len(data.Graficos.ReservasPorDiaSemana) != 0 {
		t.Errorf("ReservasPorDiaSemana = %+v, want empty", data.Graficos.ReservasPorDiaSemana)
	}
}
