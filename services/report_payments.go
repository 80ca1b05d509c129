// services/report_payments.go
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

type PaymentTreatmentRow struct {
	ID          uuid.UUID       `json:"id"`
	Descripcion string          `json:"descripcion"`
	Estado      int             `json:"estado"`
	Mascota     TreatmentPetRow `json:"mascota"`
}

type PaymentReportRow struct {
	ID                uuid.UUID            `json:"id"`
	Total             string               `json:"total"`
	FechaPago         *time.Time           `json:"fechaPago"`
	MetodoPago        *string              `json:"metodoPago"`
	Detalle           *string              `json:"detalle"`
	Estado            int                  `json:"estado"`
	EsAyudaVoluntaria bool                 `json:"esAyudaVoluntaria"`
	CreadoEn          time.Time            `json:"creadoEn"`
	Tratamiento       *PaymentTreatmentRow `json:"tratamiento"`
}

type TipoTotal struct {
	Tipo  string `json:"tipo"`
	Total string `json:"total"`
}

type ClientePagos struct {
	NombreCliente string `json:"nombreCliente"`
	CantidadPagos int    `json:"cantidadPagos"`
	TotalPagado   string `json:"totalPagado"`
}

type PaymentReportData struct {
	Pagos        []PaymentReportRow  `json:"pagos"`
	Estadisticas PaymentReportStats  `json:"estadisticas"`
	Graficos     PaymentReportCharts `json:"graficos"`
}

type PaymentReportStats struct {
	TotalPagos           int    `json:"totalPagos"`
	PagosPendientes      int    `json:"pagosPendientes"`
	PagosCompletados     int    `json:"pagosCompletados"`
	PagosCancelados      int    `json:"pagosCancelados"`
	TotalIngresos        string `json:"totalIngresos"`
	PromedioIngresos     string `json:"promedioIngresos"`
	TotalAyudaVoluntaria string `json:"totalAyudaVoluntaria"`
	PagosEfectivo        int    `json:"pagosEfectivo"`
	PagosTransferencia   int    `json:"pagosTransferencia"`
	PagosTarjeta         int    `json:"pagosTarjeta"`
	PagosQr              int    `json:"pagosQr"`
	PagosOtro            int    `json:"pagosOtro"`
}

type PaymentReportCharts struct {
	PagosPorEstado              []EstadoCantidad `json:"pagosPorEstado"`
	PagosPorMetodo              []MetodoCantidad `json:"pagosPorMetodo"`
	IngresosPorMes              []MesIngresos    `json:"ingresosPorMes"`
	PagosPorDia                 []DiaCantidad    `json:"pagosPorDia"`
	DistribucionAyudaVoluntaria []TipoTotal      `json:"distribucionAyudaVoluntaria"`
	TopClientesPagos            []ClientePagos   `json:"topClientesPagos"`
}

// PaymentReport builds the payment-domain report for the given filter.
func (s *ReportService) PaymentReport(ctx context.Context, filter ReportFilter) (*PaymentReportData, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	var payments []models.Payment
	err := s.db.WithContext(ctx).
		Scopes(filter.scope("created_at")).
		Preload("Treatment").
		Preload("Treatment.History.Pet").
		Preload("Treatment.History.Pet.Owner").
		Order("created_at DESC").
		Find(&payments).Error
	if err != nil {
		log.Printf("[REPORT] pagos: query failed: %v", err)
		return BuildPaymentReport(nil), nil
	}

	return BuildPaymentReport(payments), nil
}

// BuildPaymentReport reduces fetched payments into the report shape. Income
// totals count only completed payments; per-client totals count every row.
func BuildPaymentReport(payments []models.Payment) *PaymentReportData {
	stats := PaymentReportStats{TotalPagos: len(payments)}
	totalIncome := decimal.Zero
	totalAid := decimal.Zero
	incomePerMonth := map[string]decimal.Decimal{}
	perWeekday := map[string]int{}

	type clientAgg struct {
		name  string
		count int
		total decimal.Decimal
	}
	perClient := map[uuid.UUID]*clientAgg{}

	rows := make([]PaymentReportRow, 0, len(payments))
	for _, p := range payments {
		switch p.Status {
		case models.PagoPendiente:
			stats.PagosPendientes++
		case models.PagoCompletado:
			stats.PagosCompletados++
		case models.PagoCancelado:
			stats.PagosCancelados++
		}

		if p.Method != nil {
			switch *p.Method {
			case models.MetodoEfectivo:
				stats.PagosEfectivo++
			case models.MetodoTransferencia:
				stats.PagosTransferencia++
			case models.MetodoTarjeta:
				stats.PagosTarjeta++
			case models.MetodoQr:
				stats.PagosQr++
			case models.MetodoOtro:
				stats.PagosOtro++
			}
		}

		if p.Status == models.PagoCompletado {
			totalIncome = totalIncome.Add(p.Total)
			if p.VoluntaryAid {
				totalAid = totalAid.Add(p.Total)
			}
			key := monthKey(p.CreatedAt)
			incomePerMonth[key] = incomePerMonth[key].Add(p.Total)
		}

		perWeekday[weekdayLabel(p.CreatedAt)]++

		if owner := p.Treatment.History.Pet.Owner; owner != nil {
			agg := perClient[owner.ID]
			if agg == nil {
				agg = &clientAgg{name: owner.FullName(), total: decimal.Zero}
				perClient[owner.ID] = agg
			}
			agg.count++
			agg.total = agg.total.Add(p.Total)
		}

		row := PaymentReportRow{
			ID:                p.ID,
			Total:             p.Total.StringFixed(2),
			FechaPago:         p.PaidAt,
			MetodoPago:        p.Method,
			Detalle:           p.Details,
			Estado:            p.Status,
			EsAyudaVoluntaria: p.VoluntaryAid,
			CreadoEn:          p.CreatedAt,
		}
		if p.Treatment.ID != uuid.Nil {
			row.Tratamiento = &PaymentTreatmentRow{
				ID:          p.Treatment.ID,
				Descripcion: p.Treatment.Description,
				Estado:      p.Treatment.Status,
				Mascota: TreatmentPetRow{
					ID:      p.Treatment.History.Pet.ID,
					Nombre:  p.Treatment.History.Pet.Name,
					Especie: p.Treatment.History.Pet.Species,
				},
			}
			if owner := p.Treatment.History.Pet.Owner; owner != nil {
				row.Tratamiento.Mascota.Usuario = &PetOwnerRow{
					ID:          owner.ID,
					Nombre:      owner.Name,
					ApellidoPat: owner.PaternalSurname,
					ApellidoMat: owner.MaternalSurname,
					Email:       owner.Email,
				}
			}
		}
		rows = append(rows, row)
	}

	stats.TotalIngresos = totalIncome.StringFixed(2)
	avg := decimal.Zero
	if stats.PagosCompletados > 0 {
		avg = totalIncome.Div(decimal.NewFromInt(int64(stats.PagosCompletados)))
	}
	stats.PromedioIngresos = avg.StringFixed(2)
	stats.TotalAyudaVoluntaria = totalAid.StringFixed(2)

	weekdays := make([]DiaCantidad, 0, len(spanishWeekdays))
	for _, dia := range spanishWeekdays {
		if n := perWeekday[dia]; n > 0 {
			weekdays = append(weekdays, DiaCantidad{Dia: dia, Cantidad: n})
		}
	}

	clients := make([]ClientePagos, 0, len(perClient))
	for _, agg := range perClient {
		clients = append(clients, ClientePagos{
			NombreCliente: agg.name,
			CantidadPagos: agg.count,
			TotalPagado:   agg.total.StringFixed(2),
		})
	}
	sort.Slice(clients, func(i, j int) bool {
		if clients[i].CantidadPagos != clients[j].CantidadPagos {
			return clients[i].CantidadPagos > clients[j].CantidadPagos
		}
		return clients[i].NombreCliente < clients[j].NombreCliente
	})
	if len(clients) > 10 {
		clients = clients[:10]
	}

	return &PaymentReportData{
		Pagos:        rows,
		Estadisticas: stats,
		Graficos: PaymentReportCharts{
			PagosPorEstado: []EstadoCantidad{
				{Estado: "Pendientes", Cantidad: stats.PagosPendientes},
				{Estado: "Completados", Cantidad: stats.PagosCompletados},
				{Estado: "Cancelados", Cantidad: stats.PagosCancelados},
			},
			PagosPorMetodo: []MetodoCantidad{
				{Metodo: "Efectivo", Cantidad: stats.PagosEfectivo},
				{Metodo: "Transferencia", Cantidad: stats.PagosTransferencia},
				{Metodo: "Tarjeta", Cantidad: stats.PagosTarjeta},
				{Metodo: "QR", Cantidad: stats.PagosQr},
				{Metodo: "Otro", Cantidad: stats.PagosOtro},
			},
			IngresosPorMes:              monthRevenueSeries(incomePerMonth),
			PagosPorDia:                 weekdays,
			DistribucionAyudaVoluntaria: []TipoTotal{
				{Tipo: "Ayuda Voluntaria", Total: totalAid.StringFixed(2)},
				{Tipo: "Pagos Regulares", Total: totalIncome.Sub(totalAid).StringFixed(2)},
			},
			TopClientesPagos: clients,
		},
	}
}

// RevenueSummary holds the two headline income figures shown on the
// dashboard: verified income (completed payments only) and overall income
// across every non-removed payment.
type RevenueSummary struct {
	TotalVerificado       string  `json:"totalVerificado"`
	TotalGeneral          string  `json:"totalGeneral"`
	PorcentajeVerificados float64 `json:"porcentajeVerificados"`
	PorcentajeTotales     float64 `json:"porcentajeTotales"`
}

// RevenueSummary aggregates payment totals directly in the database. A
// failed query logs and returns the zero summary.
func (s *ReportService) RevenueSummary(ctx context.Context) (*RevenueSummary, error) {
	var verified, overall decimal.NullDecimal

	err := s.db.WithContext(ctx).
		Model(&models.Payment{}).
		Select("SUM(total)").
		Where("estado = ?", models.PagoCompletado).
		Scan(&verified).Error
	if err != nil {
		log.Printf("[REPORT] resumen ingresos: verified sum failed: %v", err)
		return BuildRevenueSummary(decimal.Zero, decimal.Zero), nil
	}

	err = s.db.WithContext(ctx).
		Model(&models.Payment{}).
		Select("SUM(total)").
		Where("estado <> 0").
		Scan(&overall).Error
	if err != nil {
		log.Printf("[REPORT] resumen ingresos: overall sum failed: %v", err)
		return BuildRevenueSummary(decimal.Zero, decimal.Zero), nil
	}

	return BuildRevenueSummary(verified.Decimal, overall.Decimal), nil
}

// BuildRevenueSummary renders the two totals with the verified share as a
// percentage of the overall figure.
func BuildRevenueSummary(verified, overall decimal.Decimal) *RevenueSummary {
	summary := &RevenueSummary{
		TotalVerificado: verified.StringFixed(2),
		TotalGeneral:    overall.StringFixed(2),
	}
	if !overall.IsZero() {
		share, _ := verified.Div(overall).Mul(decimal.NewFromInt(100)).Float64()
		summary.PorcentajeVerificados = share
		summary.PorcentajeTotales = 100
	}
	return summary
}
