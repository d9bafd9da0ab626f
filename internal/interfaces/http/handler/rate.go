package handler

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	invoicingapp "github.com/translog/backend/internal/application/invoicing"
)

// RateHandler serves NBP exchange rate lookups
type RateHandler struct {
	BaseHandler
	rateService *invoicingapp.RateService
}

// NewRateHandler creates a new RateHandler
func NewRateHandler(rateService *invoicingapp.RateService) *RateHandler {
	return &RateHandler{
		rateService: rateService,
	}
}

// GetRate godoc
// @ID           getExchangeRate
// @Summary      Get an NBP table A exchange rate
// @Description  Returns the rate effective on the given date, walking back over weekends and holidays. Defaults to today.
// @Tags         exchange-rates
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        currency path string true "ISO 4217 currency code (e.g. EUR)"
// @Param        date query string false "Rate date (YYYY-MM-DD)"
// @Success      200 {object} APIResponse[invoicingapp.RateResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      502 {object} dto.ErrorResponse
// @Router       /exchange-rates/{currency} [get]
func (h *RateHandler) GetRate(c *gin.Context) {
	currency := strings.ToUpper(c.Param("currency"))
	if len(currency) != 3 {
		h.BadRequest(c, "Invalid currency code, expected 3 letters")
		return
	}

	date := time.Now().UTC()
	if raw := c.Query("date"); raw != "" {
		var err error
		date, err = time.Parse("2006-01-02", raw)
		if err != nil {
			h.BadRequest(c, "Invalid date format, expected YYYY-MM-DD")
			return
		}
	}

	rate, err := h.rateService.GetRate(c.Request.Context(), currency, date)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, rate)
}
