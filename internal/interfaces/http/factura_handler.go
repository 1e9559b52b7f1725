package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pagos-api/internal/application/dto"
	"github.com/jhoicas/pagos-api/internal/application/invoices"
)

// FacturaHandler maneja alta y consulta de facturas de proveedor.
type FacturaHandler struct {
	uc *invoices.FacturaUseCase
}

// NewFacturaHandler construye el handler de facturas.
func NewFacturaHandler(uc *invoices.FacturaUseCase) *FacturaHandler {
	return &FacturaHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar factura de proveedor
// @Tags         facturas
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CrearFacturaRequest  true  "factura"
// @Success      201   {object}  dto.FacturaResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/facturas [post]
func (h *FacturaHandler) Create(c *fiber.Ctx) error {
	var in dto.CrearFacturaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Crear(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// IngestXML godoc
// @Summary      Registrar factura desde XML UBL 2.1
// @Tags         facturas
// @Accept       application/xml
// @Produce      json
// @Success      201   {object}  dto.FacturaResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/facturas/ingestar-xml [post]
func (h *FacturaHandler) IngestXML(c *fiber.Ctx) error {
	body := c.Body()
	if len(body) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "XML vacío"})
	}
	out, err := h.uc.IngestarXML(c.Context(), body)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Consultar factura
// @Tags         facturas
// @Produce      json
// @Param        id  path  string  true  "ID de la factura"
// @Success      200  {object}  dto.FacturaResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/facturas/{id} [get]
func (h *FacturaHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar facturas
// @Tags         facturas
// @Produce      json
// @Param        proveedor_nit  query  string  false  "filtrar por NIT"
// @Param        estado         query  string  false  "pendiente | pagada"
// @Success      200  {array}  dto.FacturaResponse
// @Router       /api/facturas [get]
func (h *FacturaHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	out, err := h.uc.List(c.Context(), c.Query("proveedor_nit"), c.Query("estado"), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ValorReal godoc
// @Summary      Calcular valor real a pagar (lectura pura, sin efectos)
// @Tags         facturas
// @Produce      json
// @Param        id           path   string  true   "ID de la factura"
// @Param        pronto_pago  query  bool    false  "aplicar descuento por pronto pago"
// @Success      200  {object}  dto.ValorRealResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/facturas/{id}/valor-real [get]
func (h *FacturaHandler) ValorReal(c *fiber.Ctx) error {
	out, err := h.uc.ValorReal(c.Context(), c.Params("id"), c.QueryBool("pronto_pago"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
