package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"celebrai-backend/internal/delivery/http/middleware"
	"celebrai-backend/internal/delivery/http/response"
	"celebrai-backend/internal/domain"
	"celebrai-backend/pkg/apperror"
)

type ContractHandler struct {
	contractUC domain.ContractUsecase
}

// NewContractHandler registers the contract PDF routes (owner only)
func NewContractHandler(admin *gin.RouterGroup, contractUC domain.ContractUsecase) {
	handler := &ContractHandler{contractUC: contractUC}

	admin.GET("/contracts/:id/pdf", handler.DownloadContract)
	admin.POST("/contracts/pdf", handler.GenerateContract)
}

// DownloadContract godoc
// @Summary      Download contract PDF
// @Description  Renders a stored contract of the caller's tenant.
// @Tags         contracts
// @Produce      application/pdf
// @Param        id   path      string  true  "Contract ID"
// @Success      200  {file}    file
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Security     BearerAuth
// @Router       /admin/contracts/{id}/pdf [get]
func (h *ContractHandler) DownloadContract(c *gin.Context) {
	rendered, err := h.contractUC.RenderContract(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Attachment(c, http.StatusOK, rendered.Filename, "application/pdf", rendered.PDF)
}

// GenerateContract godoc
// @Summary      Render contract PDF
// @Description  Renders a contract from the posted data without storing it.
// @Tags         contracts
// @Accept       json
// @Produce      application/pdf
// @Param        contract  body      domain.ContractData  true  "Contract data"
// @Success      200       {file}    file
// @Failure      400       {object}  response.Response
// @Security     BearerAuth
// @Router       /admin/contracts/pdf [post]
func (h *ContractHandler) GenerateContract(c *gin.Context) {
	var data domain.ContractData
	if err := c.ShouldBindJSON(&data); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	rendered, err := h.contractUC.GenerateContract(c.Request.Context(), middleware.UserID(c), &data)
	if err != nil {
		c.Error(err)
		return
	}
	response.Attachment(c, http.StatusOK, rendered.Filename, "application/pdf", rendered.PDF)
}
