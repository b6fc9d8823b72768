package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	warehouseapp "github.com/wms/backend/internal/application/warehouse"
)

// SectionHandler handles warehouse layout API endpoints
type SectionHandler struct {
	BaseHandler
	sectionService *warehouseapp.SectionService
}

// NewSectionHandler creates a new SectionHandler
func NewSectionHandler(sectionService *warehouseapp.SectionService) *SectionHandler {
	return &SectionHandler{sectionService: sectionService}
}

// RegisterRoutes registers warehouse routes
func (h *SectionHandler) RegisterRoutes(rg *gin.RouterGroup) {
	warehouse := rg.Group("/warehouse")
	{
		warehouse.GET("", h.GetWarehouse)
		warehouse.POST("/sections", h.Create)
		warehouse.GET("/sections", h.List)
		warehouse.GET("/sections/:id", h.Get)
		warehouse.GET("/sections/:id/children", h.GetChildren)
		warehouse.POST("/sections/:id/terminate", h.Terminate)
		warehouse.POST("/sections/:id/activate", h.Activate)
	}
}

// GetWarehouse returns the warehouse capacity summary
func (h *SectionHandler) GetWarehouse(c *gin.Context) {
	resp, err := h.sectionService.GetWarehouse(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Create opens a new section in the warehouse grid
func (h *SectionHandler) Create(c *gin.Context) {
	var req warehouseapp.CreateSectionRequest
	if !h.BindJSON(c, &req) {
		return
	}

	resp, err := h.sectionService.CreateSection(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// List returns all sections
func (h *SectionHandler) List(c *gin.Context) {
	sections, err := h.sectionService.ListSections(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, sections)
}

// Get returns one section by ID
func (h *SectionHandler) Get(c *gin.Context) {
	id, ok := h.bindSectionID(c)
	if !ok {
		return
	}

	resp, err := h.sectionService.GetSection(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// GetChildren returns the shelves of a shelved section or the floor
// slots of a flat one
func (h *SectionHandler) GetChildren(c *gin.Context) {
	id, ok := h.bindSectionID(c)
	if !ok {
		return
	}

	resp, err := h.sectionService.GetSectionChildren(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Terminate closes an empty section and releases its coordinate
func (h *SectionHandler) Terminate(c *gin.Context) {
	id, ok := h.bindSectionID(c)
	if !ok {
		return
	}

	resp, err := h.sectionService.TerminateSection(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Activate reopens a terminated section
func (h *SectionHandler) Activate(c *gin.Context) {
	id, ok := h.bindSectionID(c)
	if !ok {
		return
	}

	resp, err := h.sectionService.ActivateSection(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

func (h *SectionHandler) bindSectionID(c *gin.Context) (uuid.UUID, bool) {
	idStr, ok := h.BindID(c)
	if !ok {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		h.BadRequest(c, "Invalid section ID")
		return uuid.Nil, false
	}
	return id, true
}
