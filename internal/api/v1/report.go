package v1

import (
	"net/http"

	"github.com/billfold/billfold/internal/logger"
	"github.com/billfold/billfold/internal/service"
	"github.com/billfold/billfold/internal/types"
	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	service service.ReportingService
	log     *logger.Logger
}

func NewReportHandler(
	service service.ReportingService,
	log *logger.Logger,
) *ReportHandler {
	return &ReportHandler{
		service: service,
		log:     log,
	}
}

// @Summary Dashboard
// @Description Monthly sales, leaderboards, receivable totals and customer count
// @Tags Reports
// @Produce json
// @Success 200 {object} dto.DashboardResponse
// @Failure 502 {object} middleware.ErrorResponse
// @Router /dashboard [get]
func (h *ReportHandler) Dashboard(c *gin.Context) {
	userID := types.GetUserID(c.Request.Context())

	resp, err := h.service.Dashboard(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Customer balances
// @Description Amounts received from and owed by each customer
// @Tags Reports
// @Produce json
// @Success 200 {array} dto.CustomerBalanceResponse
// @Failure 502 {object} middleware.ErrorResponse
// @Router /customers/balances [get]
func (h *ReportHandler) CustomerBalances(c *gin.Context) {
	resp, err := h.service.CustomerBalances(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
