package invoices

import "github.com/jhoicas/pagos-api/internal/application/dto"

// FacturaParser convierte un documento externo de factura electrónica en la
// petición de alta equivalente. La implementación vive en infraestructura y
// se inyecta desde la composición de la aplicación.
type FacturaParser interface {
	ParseFactura(data []byte) (*dto.CrearFacturaRequest, error)
}
