package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/quanpham-dev/warehouse-api/internal/application/dto"
	"github.com/quanpham-dev/warehouse-api/internal/application/voucher"
	"github.com/quanpham-dev/warehouse-api/internal/domain/entity"
)

// VoucherHandler serves import and export vouchers (protected).
type VoucherHandler struct {
	uc *voucher.UseCase
}

func NewVoucherHandler(uc *voucher.UseCase) *VoucherHandler {
	return &VoucherHandler{uc: uc}
}

func toImportVoucherResponse(v *entity.ImportVoucher) dto.ImportVoucherResponse {
	lines := make([]dto.ImportLineResponse, 0, len(v.Lines))
	for _, l := range v.Lines {
		lines = append(lines, dto.ImportLineResponse{
			GoodCode:   l.GoodCode,
			QtyIn:      l.QtyIn,
			UnitCostIn: l.UnitCostIn,
			LineTotal:  l.LineTotal,
		})
	}
	return dto.ImportVoucherResponse{
		Code:         v.Code,
		Date:         v.Date.Format(dto.DateLayout),
		EmployeeCode: v.EmployeeCode,
		SupplierCode: v.SupplierCode,
		Lines:        lines,
		Total:        v.Total,
		Invoiced:     v.Invoiced,
	}
}

func toExportVoucherResponse(v *entity.ExportVoucher) dto.ExportVoucherResponse {
	lines := make([]dto.ExportLineResponse, 0, len(v.Lines))
	for _, l := range v.Lines {
		lines = append(lines, dto.ExportLineResponse{
			GoodCode:     l.GoodCode,
			QtyOut:       l.QtyOut,
			UnitPriceOut: l.UnitPriceOut,
			LineTotal:    l.LineTotal,
		})
	}
	return dto.ExportVoucherResponse{
		Code:         v.Code,
		Date:         v.Date.Format(dto.DateLayout),
		EmployeeCode: v.EmployeeCode,
		Lines:        lines,
		Total:        v.Total,
		Invoiced:     v.Invoiced,
	}
}

// CreateImport godoc
// @Summary      Create an import voucher and receive its goods into stock
// @Tags         vouchers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateImportVoucherRequest  true  "supplierCode, lines; code and date optional"
// @Success      201   {object}  dto.ImportVoucherResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/vouchers/import [post]
func (h *VoucherHandler) CreateImport(c *fiber.Ctx) error {
	var in dto.CreateImportVoucherRequest
	if err := parseAndValidate(c, &in); err != nil {
		return err
	}
	v, err := h.uc.CreateImport(c.Context(), GetEmployeeCode(c), in)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toImportVoucherResponse(v))
}

// CreateExport godoc
// @Summary      Create an export voucher and ship its goods out of stock
// @Description  Fails atomically when any line would drive a good's on-hand
//
//	quantity negative; no partial deduction survives.
//
// @Tags         vouchers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateExportVoucherRequest  true  "lines; code and date optional"
// @Success      201   {object}  dto.ExportVoucherResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/vouchers/export [post]
func (h *VoucherHandler) CreateExport(c *fiber.Ctx) error {
	var in dto.CreateExportVoucherRequest
	if err := parseAndValidate(c, &in); err != nil {
		return err
	}
	v, err := h.uc.CreateExport(c.Context(), GetEmployeeCode(c), in)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toExportVoucherResponse(v))
}

// GetImport godoc
// @Summary      Get an import voucher
// @Tags         vouchers
// @Security     Bearer
// @Produce      json
// @Param        code  path  string  true  "Voucher code (PN...)"
// @Success      200   {object}  dto.ImportVoucherResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/vouchers/import/{code} [get]
func (h *VoucherHandler) GetImport(c *fiber.Ctx) error {
	v, err := h.uc.GetImport(c.Context(), c.Params("code"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(toImportVoucherResponse(v))
}

// GetExport godoc
// @Summary      Get an export voucher
// @Tags         vouchers
// @Security     Bearer
// @Produce      json
// @Param        code  path  string  true  "Voucher code (PX...)"
// @Success      200   {object}  dto.ExportVoucherResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/vouchers/export/{code} [get]
func (h *VoucherHandler) GetExport(c *fiber.Ctx) error {
	v, err := h.uc.GetExport(c.Context(), c.Params("code"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(toExportVoucherResponse(v))
}

// ListImports godoc
// @Summary      List import vouchers
// @Tags         vouchers
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ImportVoucherResponse
// @Router       /api/vouchers/import [get]
func (h *VoucherHandler) ListImports(c *fiber.Ctx) error {
	vs, err := h.uc.ListImports(c.Context())
	if err != nil {
		return writeDomainError(c, err)
	}
	out := make([]dto.ImportVoucherResponse, 0, len(vs))
	for _, v := range vs {
		out = append(out, toImportVoucherResponse(v))
	}
	return c.JSON(out)
}

// ListExports godoc
// @Summary      List export vouchers
// @Tags         vouchers
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ExportVoucherResponse
// @Router       /api/vouchers/export [get]
func (h *VoucherHandler) ListExports(c *fiber.Ctx) error {
	vs, err := h.uc.ListExports(c.Context())
	if err != nil {
		return writeDomainError(c, err)
	}
	out := make([]dto.ExportVoucherResponse, 0, len(vs))
	for _, v := range vs {
		out = append(out, toExportVoucherResponse(v))
	}
	return c.JSON(out)
}

// EditImport godoc
// @Summary      Replace the lines of an import voucher
// @Description  Stock is adjusted by the net per-good difference. Rejected
//
//	with 409 when the voucher is claimed by an invoice.
//
// @Tags         vouchers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        code  path  string  true  "Voucher code (PN...)"
// @Param        body  body  dto.EditImportVoucherRequest  true  "replacement lines"
// @Success      200   {object}  dto.ImportVoucherResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/vouchers/import/{code} [put]
func (h *VoucherHandler) EditImport(c *fiber.Ctx) error {
	var in dto.EditImportVoucherRequest
	if err := parseAndValidate(c, &in); err != nil {
		return err
	}
	v, err := h.uc.EditImport(c.Context(), GetEmployeeCode(c), c.Params("code"), in)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(toImportVoucherResponse(v))
}

// EditExport godoc
// @Summary      Replace the lines of an export voucher
// @Tags         vouchers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        code  path  string  true  "Voucher code (PX...)"
// @Param        body  body  dto.EditExportVoucherRequest  true  "replacement lines"
// @Success      200   {object}  dto.ExportVoucherResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/vouchers/export/{code} [put]
func (h *VoucherHandler) EditExport(c *fiber.Ctx) error {
	var in dto.EditExportVoucherRequest
	if err := parseAndValidate(c, &in); err != nil {
		return err
	}
	v, err := h.uc.EditExport(c.Context(), GetEmployeeCode(c), c.Params("code"), in)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(toExportVoucherResponse(v))
}

// DeleteImport godoc
// @Summary      Delete an import voucher, reversing its stock effect
// @Tags         vouchers
// @Security     Bearer
// @Param        code  path  string  true  "Voucher code (PN...)"
// @Success      204
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/vouchers/import/{code} [delete]
func (h *VoucherHandler) DeleteImport(c *fiber.Ctx) error {
	if err := h.uc.DeleteImport(c.Context(), GetEmployeeCode(c), c.Params("code")); err != nil {
		return writeDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// DeleteExport godoc
// @Summary      Delete an export voucher, returning its goods to stock
// @Tags         vouchers
// @Security     Bearer
// @Param        code  path  string  true  "Voucher code (PX...)"
// @Success      204
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/vouchers/export/{code} [delete]
func (h *VoucherHandler) DeleteExport(c *fiber.Ctx) error {
	if err := h.uc.DeleteExport(c.Context(), GetEmployeeCode(c), c.Params("code")); err != nil {
		return writeDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
