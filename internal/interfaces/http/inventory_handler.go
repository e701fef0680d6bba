package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/application/inventory"
)

// InventoryHandler expone saldos y reportes (protegido).
type InventoryHandler struct {
	balances *inventory.BalanceUseCase
	export   *inventory.ReportExportUseCase
}

// NewInventoryHandler construye el handler. export puede ser nil (solo JSON).
func NewInventoryHandler(balances *inventory.BalanceUseCase, export *inventory.ReportExportUseCase) *InventoryHandler {
	return &InventoryHandler{balances: balances, export: export}
}

// LocationsWithStock godoc
// @Summary      Ubicaciones con stock de un producto
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        product_id  path  string  true  "ID del producto"
// @Success      200  {object}  dto.LocationsWithStockResponse
// @Router       /api/inventory/locations-with-stock/{product_id} [get]
func (h *InventoryHandler) LocationsWithStock(c *fiber.Ctx) error {
	productID := c.Params("product_id")
	if productID == "" {
		return missingID(c)
	}
	out, err := h.balances.LocationsWithStock(c.Context(), productID)
	if err != nil {
		return writeError(c, err, "")
	}
	return c.JSON(out)
}

// BalanceReport godoc
// @Summary      Reporte de saldos
// @Description  Saldos positivos por producto y ubicación. format=xlsx|pdf descarga el documento.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Produce      application/pdf
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        format  query  string  false  "json (defecto), xlsx o pdf"
// @Success      200  {object}  dto.BalanceReportResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/balance [get]
func (h *InventoryHandler) BalanceReport(c *fiber.Ctx) error {
	format := strings.ToLower(strings.TrimSpace(c.Query("format")))
	if format == "" || format == "json" {
		out, err := h.balances.Report(c.Context())
		if err != nil {
			return writeError(c, err, "")
		}
		return c.JSON(out)
	}
	if h.export == nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "formato no soportado: " + format})
	}
	data, filename, contentType, err := h.export.Export(c.Context(), format)
	if err != nil {
		status, _ := errorStatus(err)
		if status == fiber.StatusBadRequest {
			return c.Status(status).JSON(dto.ErrorResponse{
				Code:    "VALIDATION",
				Message: "formato no soportado: " + format + " (disponibles: json, " + strings.Join(h.export.Formats(), ", ") + ")",
			})
		}
		return writeError(c, err, "")
	}
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(data)
}
