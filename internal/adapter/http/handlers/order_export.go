package handlers

import (
	"fmt"
	"net/http"
	"time"

	"neurovita_checkout/internal/domain/entities"
	"neurovita_checkout/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

const (
	exportSheet       = "Pedidos"
	xlsxContentType   = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	exportTimeLayout  = "02/01/2006 15:04"
	exportFilePattern = "pedidos-%s.xlsx"
)

var exportHeader = []any{
	"Pedido", "Data", "Status", "Nome", "Email", "Telefone",
	"CEP", "Endereço", "Número", "Complemento", "Bairro", "Cidade", "UF",
	"Opção", "Produto", "Frete", "Total", "Pago em", "Rastreio",
}

// ExportOrders godoc
// @Summary      Export orders as a spreadsheet
// @Tags         orders
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security     Bearer
// @Param        status  query  string  false  "all|pending|paid|shipped|delivered"
// @Param        sort    query  string  false  "newest|oldest"
// @Success      200
// @Failure      400  {object}  pkg.HTTPError
// @Router       /orders/export [get]
func (h *OrderHandler) ExportOrders(c *gin.Context) {
	log := logger.FromContext(c.Request.Context(), h.log)

	orders, err := h.usecase.List(c.Request.Context(), c.Query("status"), c.Query("sort"))
	if err != nil {
		writeError(c, mapDomainError(err))
		return
	}

	f, err := buildOrdersWorkbook(orders)
	if err != nil {
		log.Error().Err(err).Msg("export workbook failed")
		writeError(c, mapDomainError(err))
		return
	}
	defer f.Close()

	filename := fmt.Sprintf(exportFilePattern, time.Now().UTC().Format("20060102-150405"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Header("Content-Type", xlsxContentType)
	c.Status(http.StatusOK)
	if err := f.Write(c.Writer); err != nil {
		log.Error().Err(err).Msg("export write failed")
		return
	}
	log.Info().Int("orders", len(orders)).Msg("orders exported")
}

func buildOrdersWorkbook(orders []entities.Order) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		_ = f.Close()
		return nil, err
	}

	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	if err := f.SetSheetRow(exportSheet, "A1", &exportHeader); err != nil {
		_ = f.Close()
		return nil, err
	}
	lastCol, _ := excelize.ColumnNumberToName(len(exportHeader))
	if err := f.SetCellStyle(exportSheet, "A1", lastCol+"1", style); err != nil {
		_ = f.Close()
		return nil, err
	}

	for i, o := range orders {
		row := []any{
			o.OrderNumber,
			o.CreatedAt.Format(exportTimeLayout),
			statusLabel(o.Status),
			o.Name,
			o.Email,
			o.Phone,
			o.CEP,
			o.Street,
			o.Number,
			o.Complement,
			o.Neighborhood,
			o.City,
			o.State,
			o.OptionLabel,
			o.ProductPrice,
			o.ShippingPrice,
			o.TotalPrice,
			formatExportTime(o.PaidAt),
			o.TrackingCode,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			_ = f.Close()
			return nil, err
		}
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			_ = f.Close()
			return nil, err
		}
	}
	return f, nil
}

func formatExportTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(exportTimeLayout)
}
