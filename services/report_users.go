// services/report_users.go
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

// UserReportRow is a user plus the payment/treatment figures derived from
// the pets they own.
type UserReportRow struct {
	ID              uuid.UUID  `json:"id"`
	Nombre          string     `json:"name"`
	ApellidoPat     *string    `json:"apellidoPat"`
	ApellidoMat     *string    `json:"apellidoMat"`
	Email           string     `json:"email"`
	Rol             string     `json:"rol"`
	Estado          int        `json:"estado"`
	EmailVerificado *time.Time `json:"emailVerified"`
	CreadoEn        time.Time  `json:"createdAt"`

	CantidadMascotas     int    `json:"cantidadMascotas"`
	CantidadTratamientos int    `json:"cantidadTratamientos"`
	PagosPendientes      int    `json:"pagosPendientes"`
	TotalPagado          string `json:"totalPagado"`
}

type RolCantidad struct {
	Rol      string `json:"rol"`
	Cantidad int    `json:"cantidad"`
}

type ClienteFrecuente struct {
	Nombre               string `json:"nombre"`
	CantidadMascotas     int    `json:"cantidadMascotas"`
	CantidadTratamientos int    `json:"cantidadTratamientos"`
	TotalPagado          string `json:"totalPagado"`
}

type DistribucionPago struct {
	Estado   string `json:"estado"`
	Cantidad int    `json:"cantidad"`
	Total    string `json:"total"`
}

type UserReportData struct {
	Usuarios struct {
		ConPagosPendientes []UserReportRow `json:"conPagosPendientes"`
		SinPagosPendientes []UserReportRow `json:"sinPagosPendientes"`
	} `json:"usuarios"`
	Estadisticas UserReportStats  `json:"estadisticas"`
	Graficos     UserReportCharts `json:"graficos"`
}

type UserReportStats struct {
	TotalUsuarios              int            `json:"totalUsuarios"`
	UsuariosActivos            int            `json:"usuariosActivos"`
	UsuariosInactivos          int            `json:"usuariosInactivos"`
	UsuariosPorRol             map[string]int `json:"usuariosPorRol"`
	UsuariosConPagosPendientes int            `json:"usuariosConPagosPendientes"`
	TotalPagosRecibidos        string         `json:"totalPagosRecibidos"`
	UsuariosVerificados        int            `json:"usuariosVerificados"`
	UsuariosNoVerificados      int            `json:"usuariosNoVerificados"`
}

type UserReportCharts struct {
	UsuariosPorRol          []RolCantidad      `json:"usuariosPorRol"`
	UsuariosPorEstado       []EstadoCantidad   `json:"usuariosPorEstado"`
	UsuariosPorVerificacion []EstadoCantidad   `json:"usuariosPorVerificacion"`
	ClientesFrecuentes      []ClienteFrecuente `json:"clientesFrecuentes"`
	DistribucionPagos       []DistribucionPago `json:"distribucionPagos"`
}

// UserReport builds the user-domain report for the given filter.
func (s *ReportService) UserReport(ctx context.Context, filter ReportFilter) (*UserReportData, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	var users []models.User
	err := s.db.WithContext(ctx).
		Scopes(filter.scope("created_at")).
		Preload("Pets", notRemoved).
		Preload("Pets.History", notRemoved).
		Preload("Pets.History.Treatments", notRemoved).
		Preload("Pets.History.Treatments.Payment", notRemoved).
		Order("created_at DESC").
		Find(&users).Error
	if err != nil {
		log.Printf("[REPORT] usuarios: query failed: %v", err)
		return BuildUserReport(nil), nil
	}

	return BuildUserReport(users), nil
}

// BuildUserReport reduces the fetched user graphs into rows, statistics and
// chart series. It is pure: same input, same output.
func BuildUserReport(users []models.User) *UserReportData {
	rows := make([]UserReportRow, 0, len(users))
	totalReceived := decimal.Zero

	for _, u := range users {
		treatments := 0
		pendingPayments := 0
		paid := decimal.Zero

		for _, pet := range u.Pets {
			if pet.History == nil {
				continue
			}
			for _, t := range pet.History.Treatments {
				if t.Status == models.TratamientoCancelado {
					continue
				}
				treatments++
				if t.Payment == nil {
					continue
				}
				switch t.Payment.Status {
				case models.PagoPendiente:
					pendingPayments++
				case models.PagoCompletado:
					paid = paid.Add(t.Payment.Total)
				}
			}
		}

		totalReceived = totalReceived.Add(paid)
		rows = append(rows, UserReportRow{
			ID:              u.ID,
			Nombre:          u.Name,
			ApellidoPat:     u.PaternalSurname,
			ApellidoMat:     u.MaternalSurname,
			Email:           u.Email,
			Rol:             u.Role,
			Estado:          u.Status,
			EmailVerificado: u.EmailVerified,
			CreadoEn:        u.CreatedAt,

			CantidadMascotas:     len(u.Pets),
			CantidadTratamientos: treatments,
			PagosPendientes:      pendingPayments,
			TotalPagado:          paid.StringFixed(2),
		})
	}

	withPending := make([]UserReportRow, 0)
	withoutPending := make([]UserReportRow, 0)
	pendingTotal := decimal.Zero
	for _, r := range rows {
		if r.PagosPendientes > 0 {
			withPending = append(withPending, r)
			d, _ := decimal.NewFromString(r.TotalPagado)
			pendingTotal = pendingTotal.Add(d)
		} else {
			withoutPending = append(withoutPending, r)
		}
	}

	active, inactive, verified, unverified := 0, 0, 0, 0
	byRole := map[string]int{}
	for _, u := range users {
		switch u.Status {
		case models.UsuarioActivo:
			active++
		case models.UsuarioInactivo:
			inactive++
		}
		if u.EmailVerified != nil {
			verified++
		} else {
			unverified++
		}
		byRole[u.Role]++
	}

	// Top 10 clients by treatment count
	frequent := make([]ClienteFrecuente, 0, len(rows))
	for i, r := range rows {
		name := users[i].Name
		if users[i].PaternalSurname != nil {
			name += " " + *users[i].PaternalSurname
		}
		frequent = append(frequent, ClienteFrecuente{
			Nombre:               name,
			CantidadMascotas:     r.CantidadMascotas,
			CantidadTratamientos: r.CantidadTratamientos,
			TotalPagado:          r.TotalPagado,
		})
	}
	sort.SliceStable(frequent, func(i, j int) bool {
		return frequent[i].CantidadTratamientos > frequent[j].CantidadTratamientos
	})
	if len(frequent) > 10 {
		frequent = frequent[:10]
	}

	roleChart := make([]RolCantidad, 0, len(byRole))
	for rol, cantidad := range byRole {
		roleChart = append(roleChart, RolCantidad{Rol: rol, Cantidad: cantidad})
	}
	sort.Slice(roleChart, func(i, j int) bool { return roleChart[i].Rol < roleChart[j].Rol })

	data := &UserReportData{
		Estadisticas: UserReportStats{
			TotalUsuarios:              len(rows),
			UsuariosActivos:            active,
			UsuariosInactivos:          inactive,
			UsuariosPorRol:             byRole,
			UsuariosConPagosPendientes: len(withPending),
			TotalPagosRecibidos:        totalReceived.StringFixed(2),
			UsuariosVerificados:        verified,
			UsuariosNoVerificados:      unverified,
		},
		Graficos: UserReportCharts{
			UsuariosPorRol: roleChart,
			UsuariosPorEstado: []EstadoCantidad{
				{Estado: "Activos", Cantidad: active},
				{Estado: "Inactivos", Cantidad: inactive},
			},
			UsuariosPorVerificacion: []EstadoCantidad{
				{Estado: "Verificados", Cantidad: verified},
				{Estado: "No Verificados", Cantidad: unverified},
			},
			ClientesFrecuentes: frequent,
			DistribucionPagos: []DistribucionPago{
				{Estado: "Pendientes", Cantidad: len(withPending), Total: pendingTotal.StringFixed(2)},
				{Estado: "Completados", Cantidad: len(withoutPending), Total: totalReceived.StringFixed(2)},
			},
		},
	}
	data.Usuarios.ConPagosPendientes = withPending
	data.Usuarios.SinPagosPendientes = withoutPending
	return data
}
