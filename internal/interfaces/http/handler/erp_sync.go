package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/hcm/backend/internal/application/hcmsync"
	"github.com/hcm/backend/internal/domain/hcm"
	"github.com/hcm/backend/internal/interfaces/http/dto"
)

// ERPSyncHandler handles employee sync API endpoints
type ERPSyncHandler struct {
	BaseHandler
	service *hcmsync.Service
}

// NewERPSyncHandler creates a new ERPSyncHandler
func NewERPSyncHandler(service *hcmsync.Service) *ERPSyncHandler {
	return &ERPSyncHandler{service: service}
}

// RegisterRoutes registers the sync endpoints on the given router group
func (h *ERPSyncHandler) RegisterRoutes(rg *gin.RouterGroup) {
	erp := rg.Group("/erp")
	{
		erp.POST("/configs/:id/sync", h.StartSync)
		erp.GET("/configs/:id/status", h.GetSyncStatus)
		erp.POST("/test-connection", h.TestConnection)
		erp.GET("/vendors", h.ListVendors)
	}
}

// StartSyncResponse carries the log id of a launched sync run
type StartSyncResponse struct {
	LogID uuid.UUID `json:"logId"`
}

// StartSync godoc
// @Summary      Trigger an employee sync run
// @Description  Launches a background sync for the config and returns the run's log id immediately
// @Tags         erp
// @Produce      json
// @Param        id    path   string  true   "Config ID"
// @Param        full  query  bool    false  "Force a full resync instead of incremental"
// @Success      202 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      409 {object} dto.Response
// @Router       /erp/configs/{id}/sync [post]
func (h *ERPSyncHandler) StartSync(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid config ID")
		return
	}
	configID := uuid.MustParse(req.ID)

	full := c.Query("full") == "true"

	logID, err := h.service.StartSync(c.Request.Context(), configID, hcm.SyncTypeManual, full)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Accepted(c, StartSyncResponse{LogID: logID})
}

// GetSyncStatus godoc
// @Summary      Get sync status for a config
// @Description  Returns the config's current sync state and its most recent run
// @Tags         erp
// @Produce      json
// @Param        id  path  string  true  "Config ID"
// @Success      200 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Router       /erp/configs/{id}/status [get]
func (h *ERPSyncHandler) GetSyncStatus(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid config ID")
		return
	}
	configID := uuid.MustParse(req.ID)

	status, err := h.service.GetSyncStatus(c.Request.Context(), configID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, status)
}

// TestConnection godoc
// @Summary      Test vendor connectivity
// @Description  Probes a stored config or ad-hoc credentials against the vendor API
// @Tags         erp
// @Accept       json
// @Produce      json
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response
// @Router       /erp/test-connection [post]
func (h *ERPSyncHandler) TestConnection(c *gin.Context) {
	var req hcmsync.TestConnectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	if req.ConfigID == nil && req.VendorCode == "" {
		h.BadRequest(c, "Either configId or vendorCode is required")
		return
	}

	result, err := h.service.TestConnection(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// ListVendors godoc
// @Summary      List supported vendors
// @Description  Returns static metadata and capabilities for every registered vendor
// @Tags         erp
// @Produce      json
// @Success      200 {object} dto.Response
// @Router       /erp/vendors [get]
func (h *ERPSyncHandler) ListVendors(c *gin.Context) {
	h.Success(c, h.service.Vendors())
}
