// services/report_users_test.go
package services

import (
	"testing"
	"time"

	"vetcare-backend/models"

	"github.com/shopspring/decimal"
)

func paidTreatment(total string) models.Treatment {
	return models.Treatment{
		Status: models.TratamientoCompletado,
		Payment: &models.Payment{
			Total:  decimal.RequireFromString(total),
			Status: models.PagoCompletado,
		},
	}
}

func pendingTreatment(total string) models.Treatment {
	return models.Treatment{
		Status: models.TratamientoEnProgreso,
		Payment: &models.Payment{
			Total:  decimal.RequireFromString(total),
			Status: models.PagoPendiente,
		},
	}
}

func ownerWithTreatments(name string, status int, treatments ...models.Treatment) models.User {
	return models.User{
		Name:   name,
		Role:   models.RolUsuario,
		Status: status,
		Pets: []models.Pet{
			{
				Name:    "Firulais",
				Species: models.EspeciePerro,
				History: &models.MedicalHistory{
					Status:     models.HistorialTratamientoPendiente,
					Treatments: treatments,
				},
			},
		},
	}
}

func TestBuildUserReportSplitsByPendingPayments(t *testing.T) {
	users := []models.User{
		ownerWithTreatments("Ana", models.UsuarioActivo, pendingTreatment("15.00")),
		ownerWithTreatments("Bruno", models.UsuarioActivo, paidTreatment("10.10")),
	}

	data := BuildUserReport(users)

	if got := len(data.Usuarios.ConPagosPendientes); got != 1 {
		t.Fatalf("ConPagosPendientes = %d, want 1", got)
	}
	if got := len(data.Usuarios.SinPagosPendientes); got != 1 {
		t.Fatalf("SinPagosPendientes = %d, want 1", got)
	}
	if data.Usuarios.ConPagosPendientes[0].Nombre != "Ana" {
		t.Errorf("pending user = %q, want Ana", data.Usuarios.ConPagosPendientes[0].Nombre)
	}
	if got := data.Estadisticas.UsuariosConPagosPendientes; got != 1 {
		t.Errorf("UsuariosConPagosPendientes = %d, want 1", got)
	}
}

func TestBuildUserReportSumsCompletedPayments(t *testing.T) {
	users := []models.User{
		ownerWithTreatments("Carla", models.UsuarioActivo,
			paidTreatment("10.10"),
			paidTreatment("10.10"),
			paidTreatment("10.10"),
		),
	}

	data := BuildUserReport(users)

	row := data.Usuarios.SinPagosPendientes[0]
	if row.TotalPagado != "30.30" {
		t.Errorf("TotalPagado = %q, want 30.30", row.TotalPagado)
	}
	if data.Estadisticas.TotalPagosRecibidos != "30.30" {
		t.Errorf("TotalPagosRecibidos = %q, want 30.30", data.Estadisticas.TotalPagosRecibidos)
	}
	if row.CantidadTratamientos != 3 {
		t.Errorf("CantidadTratamientos = %d, want 3", row.CantidadTratamientos)
	}
}

func TestBuildUserReportSkipsCancelledTreatments(t *testing.T) {
	cancelled := models.Treatment{
		Status: models.TratamientoCancelado,
		Payment: &models.Payment{
			Total:  decimal.RequireFromString("99.99"),
			Status: models.PagoCompletado,
		},
	}
	users := []models.User{
		ownerWithTreatments("Diego", models.UsuarioActivo, cancelled, paidTreatment("5.00")),
	}

	data := BuildUserReport(users)

	row := data.Usuarios.SinPagosPendientes[0]
	if row.CantidadTratamientos != 1 {
		t.Errorf("CantidadTratamientos = %d, want 1", row.CantidadTratamientos)
	}
	if row.TotalPagado != "5.00" {
		t.Errorf("TotalPagado = %q, want 5.00", row.TotalPagado)
	}
}

func TestBuildUserReportStatusAndVerification(t *testing.T) {
	verifiedAt := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	users := []models.User{
		{Name: "Elena", Role: models.RolAdministrador, Status: models.UsuarioActivo, EmailVerified: &verifiedAt},
		{Name: "Fidel", Role: models.RolUsuario, Status: models.UsuarioInactivo},
		{Name: "Gema", Role: models.RolUsuario, Status: models.UsuarioActivo},
	}

	data := BuildUserReport(users)

	stats := data.Estadisticas
	if stats.TotalUsuarios != 3 {
		t.Errorf("TotalUsuarios = %d, want 3", stats.TotalUsuarios)
	}
	if stats.UsuariosActivos != 2 || stats.UsuariosInactivos != 1 {
		t.Errorf("activos/inactivos = %d/%d, want 2/1", stats.UsuariosActivos, stats.UsuariosInactivos)
	}
	if stats.UsuariosVerificados != 1 || stats.UsuariosNoVerificados != 2 {
		t.Errorf("verificados/no = %d/%d, want 1/2", stats.UsuariosVerificados, stats.UsuariosNoVerificados)
	}
	if stats.UsuariosPorRol[models.RolAdministrador] != 1 || stats.UsuariosPorRol[models.RolUsuario] != 2 {
		t.Errorf("UsuariosPorRol = %v", stats.UsuariosPorRol)
	}
}

func TestBuildUserReportFrequentClientsOrder(t *testing.T) {
	users := []models.User{
		ownerWithTreatments("Hugo", models.UsuarioActivo, paidTreatment("1.00")),
		ownerWithTreatments("Irene", models.UsuarioActivo,
			paidTreatment("1.00"), paidTreatment("1.00"), paidTreatment("1.00")),
		ownerWithTreatments("Julia", models.UsuarioActivo,
			paidTreatment("1.00"), paidTreatment("1.00")),
	}

	data := BuildUserReport(users)

	got := data.Graficos.ClientesFrecuentes
	if len(got) != 3 {
		t.Fatalf("ClientesFrecuentes len = %d, want 3", len(got))
	}
	wantOrder := []string{"Irene", "Julia", "Hugo"}
	for i, w := range wantOrder {
		if got[i].Nombre != w {
			t.Errorf("ClientesFrecuentes[%d] = %q, want %q", i, got[i].Nombre, w)
		}
	}
}

func TestBuildUserReportEmpty(t *testing.T) {
	data := BuildUserReport(nil)

	if data.Usuarios.ConPagosPendientes == nil || data.Usuarios.SinPagosPendientes == nil {
		t.Fatal("user buckets must be non-nil slices")
	}
	if data.Estadisticas.TotalPagosRecibidos != "0.00" {
		t.Errorf("TotalPagosRecibidos = %q, want 0.00", data.Estadisticas.TotalPagosRecibidos)
	}
}
