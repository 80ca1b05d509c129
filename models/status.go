package models

// Estado 0 means removed for every entity; reads in the reporting layer
// always filter it out.
const EstadoEliminado = 0

// User
const (
	UsuarioActivo   = 1
	UsuarioInactivo = 2
)

// User roles
const (
	RolAdministrador = "Administrador"
	RolUsuario       = "Usuario"
	RolVeterinario   = "Veterinario"
)

// Pet lifecycle
const (
	MascotaRegistrada    = 1
	MascotaAtendida      = 2
	MascotaEnTratamiento = 3
	MascotaAltaMedica    = 4
	MascotaInternada     = 5
	MascotaFallecida     = 6
)

// Pet species
const (
	EspeciePerro = "Perro"
	EspecieGato  = "Gato"
	EspecieOtro  = "Otro"
)

// Pet sex
const (
	SexoMacho  = "Macho"
	SexoHembra = "Hembra"
)

// Medical history
const (
	HistorialNuevo                  = 1
	HistorialTratamientoPendiente   = 2
	HistorialTratamientosRealizados = 3
	HistorialArchivado              = 4
)

// Treatment
const (
	TratamientoEnProgreso = 1
	TratamientoCompletado = 2
	TratamientoCancelado  = 3
)

// Service catalog availability
const (
	ServicioDisponible   = 1
	ServicioNoDisponible = 2
)

// Payment and reservation share the same lifecycle values
const (
	PagoPendiente  = 1
	PagoCompletado = 2
	PagoCancelado  = 3

	ReservaPendiente  = 1
	ReservaCompletada = 2
	ReservaCancelada  = 3
)

// Payment methods
const (
	MetodoEfectivo      = "Efectivo"
	MetodoTransferencia = "Transferencia"
	MetodoTarjeta       = "Tarjeta"
	MetodoQr            = "Qr"
	MetodoOtro          = "Otro"
)

// MetodosPago lists every accepted payment method, in display order.
var MetodosPago = []string{MetodoEfectivo, MetodoTransferencia, MetodoTarjeta, MetodoQr, MetodoOtro}

// Medication inventory states
const (
	MedicamentoEnStock = 1
	MedicamentoAgotado = 2
	MedicamentoVencido = 3
)

// Medication type categories
const (
	TipoAntibiotico     = "Antibiotico"
	TipoAnalgesico      = "Analgesico"
	TipoAntiparasitario = "Antiparasitario"
	TipoVacuna          = "Vacuna"
	TipoSuplemento      = "Suplemento"
	TipoOtro            = "Otro"
)

// TiposMedicamento lists every medication category, in display order.
var TiposMedicamento = []string{
	TipoAntibiotico, TipoAnalgesico, TipoAntiparasitario,
	TipoVacuna, TipoSuplemento, TipoOtro,
}
