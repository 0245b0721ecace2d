package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"celebrai-backend/internal/domain"
	"celebrai-backend/pkg/logger"
)

const contractSignedPath = "/send-contract-signed-email"

type NotificationHandler struct {
	notifyUC domain.NotificationUsecase
}

// NewNotificationHandler registers the contract-signed function. Its bodies
// are {success,message} and {error}, not the standard envelope, because the
// signing page calls it as a Supabase function.
func NewNotificationHandler(fn *gin.RouterGroup, notifyUC domain.NotificationUsecase) {
	handler := &NotificationHandler{notifyUC: notifyUC}

	fn.POST(contractSignedPath, handler.SendContractSignedEmail)
	// preflight is answered by FunctionCORS; the route only has to exist
	fn.OPTIONS(contractSignedPath, func(c *gin.Context) { c.Status(http.StatusOK) })
}

// SendContractSignedEmail godoc
// @Summary      Notify contract signature
// @Description  Emails the signing client (when an address is given) and the tenant owner.
// @Tags         functions
// @Accept       json
// @Produce      json
// @Param        request  body      domain.ContractSignedRequest  true  "Signed contract"
// @Success      200      {object}  map[string]interface{}
// @Failure      500      {object}  map[string]string
// @Router       /functions/send-contract-signed-email [post]
func (h *NotificationHandler) SendContractSignedEmail(c *gin.Context) {
	var req domain.ContractSignedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Log.Error("Error in send-contract-signed-email function", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if _, err := h.notifyUC.NotifyContractSigned(c.Request.Context(), &req); err != nil {
		logger.Log.Error("Error in send-contract-signed-email function", "contract_id", req.ContractID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Emails sent successfully"})
}
