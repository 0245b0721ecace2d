package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"celebrai-backend/internal/delivery/http/middleware"
	"celebrai-backend/internal/delivery/http/response"
	"celebrai-backend/internal/domain"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type DashboardHandler struct {
	dashboardUC domain.DashboardUsecase
}

func NewDashboardHandler(admin *gin.RouterGroup, dashboardUC domain.DashboardUsecase) {
	handler := &DashboardHandler{dashboardUC: dashboardUC}

	admin.GET("/dashboard", handler.GetStats)
	admin.GET("/appointments/export", handler.ExportAppointments)
}

// GetStats godoc
// @Summary      Dashboard statistics
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.DashboardStats}
// @Failure      404  {object}  response.Response
// @Security     BearerAuth
// @Router       /admin/dashboard [get]
func (h *DashboardHandler) GetStats(c *gin.Context) {
	stats, err := h.dashboardUC.GetStats(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Dashboard statistics retrieved", stats)
}

// ExportAppointments godoc
// @Summary      Export appointments
// @Tags         dashboard
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200  {file}    file
// @Security     BearerAuth
// @Router       /admin/appointments/export [get]
func (h *DashboardHandler) ExportAppointments(c *gin.Context) {
	data, filename, err := h.dashboardUC.ExportAppointments(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.Attachment(c, http.StatusOK, filename, xlsxContentType, data)
}
