package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"neurovita_checkout/internal/adapter/http/dto/response"
	"neurovita_checkout/internal/usecase"
	"neurovita_checkout/pkg"

	"github.com/gin-gonic/gin"
)

type ShippingHandler struct {
	usecase usecase.IShippingUseCase
}

func NewShippingHandler(uc usecase.IShippingUseCase) *ShippingHandler {
	return &ShippingHandler{usecase: uc}
}

// Quote godoc
// @Summary      Shipping quote for a state and bundle option
// @Tags         shipping
// @Produce      json
// @Param        state     query     string  true   "UF, e.g. RJ"
// @Param        quantity  query     int     false  "Bundle option id (default 1)"
// @Success      200       {object}  response.ShippingQuoteResponse
// @Failure      400       {object}  pkg.HTTPError
// @Router       /shipping/quote [get]
func (h *ShippingHandler) Quote(c *gin.Context) {
	state := strings.TrimSpace(c.Query("state"))
	if state == "" {
		writeError(c, pkg.NewDomainErrorSimple("MISSING_STATE", "state is required", http.StatusBadRequest))
		return
	}

	quantity := 1
	if raw := strings.TrimSpace(c.Query("quantity")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeError(c, pkg.NewDomainErrorSimple("INVALID_QUANTITY", "Quantidade inválida", http.StatusBadRequest))
			return
		}
		quantity = n
	}

	quote, err := h.usecase.Quote(c.Request.Context(), state, quantity)
	if err != nil {
		writeError(c, mapDomainError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromShippingQuote(quote))
}
