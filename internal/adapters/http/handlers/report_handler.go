package handlers

import (
	"imc-donations/internal/core/services"
	"imc-donations/internal/pkg/pagination"

	"github.com/gofiber/fiber/v2"
)

// ReportHandler serves the fundraising reports
type ReportHandler struct {
	reportService *services.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *services.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// PeriodTotals sums approved donations of one period
// @Summary Fundraising report
// @Tags Pagamento
// @Produce json
// @Security BearerAuth
// @Param ano query int true "Year"
// @Param tipo query string true "mensal, trimestral or semestral"
// @Param periodo query int true "Period index within the year"
// @Success 200 {object} services.PeriodTotals
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /pagamento/relatorio-arrecadacao [get]
func (h *ReportHandler) PeriodTotals(c *fiber.Ctx) error {
	totals, err := h.reportService.GetPeriodTotals(c.Context(),
		c.QueryInt("ano"),
		c.Query("tipo"),
		c.QueryInt("periodo"),
	)
	if err != nil {
		return writeError(c, err, "Falha ao gerar relatório.")
	}
	return c.JSON(totals)
}

// ApprovedDonations pages approved donations, newest first
// @Summary Approved donations
// @Description Totals cover every approved donation, not just the page.
// @Tags Pagamento
// @Produce json
// @Security BearerAuth
// @Param pageNumber query int false "Page number" default(1)
// @Param pageSize query int false "Items per page" default(10)
// @Success 200 {object} services.PagedDonations
// @Failure 403 {object} response.Response
// @Router /pagamento/lista-doacoes [get]
func (h *ReportHandler) ApprovedDonations(c *fiber.Ctx) error {
	params := pagination.GetParams(c, pagination.DefaultDonationPageSize)

	page, err := h.reportService.GetPagedApprovedDonations(c.Context(), params.PageNumber, params.PageSize)
	if err != nil {
		return writeError(c, err, "Falha ao listar doações.")
	}
	return c.JSON(page)
}

// AvailableYears lists the years with approved donations
// @Summary Years with donations
// @Tags Pagamento
// @Produce json
// @Security BearerAuth
// @Success 200 {array} int
// @Failure 403 {object} response.Response
// @Router /pagamento/anos-disponiveis [get]
func (h *ReportHandler) AvailableYears(c *fiber.Ctx) error {
	years, err := h.reportService.GetDistinctYears(c.Context())
	if err != nil {
		return writeError(c, err, "Falha ao carregar anos.")
	}
	return c.JSON(years)
}
