package api

import (
	"coachdesk/coach-console/internal/domain"
	"coachdesk/coach-console/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ProtocolHandler exposes the single-document protocol editor.
type ProtocolHandler struct {
	protocolService service.ProtocolService
}

// NewProtocolHandler creates a new ProtocolHandler.
func NewProtocolHandler(protocolService service.ProtocolService) *ProtocolHandler {
	return &ProtocolHandler{protocolService: protocolService}
}

// --- Request Structs ---

type SetTitleRequest struct {
	Title string `json:"title" binding:"required"`
}

type AddSectionRequest struct {
	Title string `json:"title" binding:"required"`
}

type AddBlockRequest struct {
	Type string `json:"type" binding:"required,oneof=text training meal"`
}

type ReorderBlocksRequest struct {
	From int `json:"from" binding:"min=0"`
	To   int `json:"to" binding:"min=0"`
}

// --- Handler Methods ---
// Every mutation responds with the full document so the editor UI can
// re-render from a single source of truth.

// GetProtocol godoc
// @Summary Get the current protocol document
// @Tags Protocol
// @Produce json
// @Security BearerAuth
// @Success 200 {object} domain.Protocol "Current document"
// @Router /protocol [get]
func (h *ProtocolHandler) GetProtocol(c *gin.Context) {
	c.JSON(http.StatusOK, h.protocolService.Current())
}

// SetTitle godoc
// @Summary Rename the protocol
// @Tags Protocol
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param title body SetTitleRequest true "New title"
// @Success 200 {object} domain.Protocol "Updated document"
// @Failure 400 {object} gin.H "Invalid input"
// @Router /protocol/title [put]
func (h *ProtocolHandler) SetTitle(c *gin.Context) {
	var req SetTitleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	c.JSON(http.StatusOK, h.protocolService.SetTitle(req.Title))
}

// AddSection godoc
// @Summary Append an empty section
// @Tags Protocol
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param section body AddSectionRequest true "Section title"
// @Success 200 {object} domain.Protocol "Updated document"
// @Failure 400 {object} gin.H "Invalid input"
// @Router /protocol/sections [post]
func (h *ProtocolHandler) AddSection(c *gin.Context) {
	var req AddSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	c.JSON(http.StatusOK, h.protocolService.AddSection(req.Title))
}

// RemoveSection godoc
// @Summary Remove a section and its blocks
// @Description Unconditional; removing an unknown section leaves the document structure unchanged.
// @Tags Protocol
// @Produce json
// @Security BearerAuth
// @Param sectionId path string true "Section id"
// @Success 200 {object} domain.Protocol "Updated document"
// @Router /protocol/sections/{sectionId} [delete]
func (h *ProtocolHandler) RemoveSection(c *gin.Context) {
	c.JSON(http.StatusOK, h.protocolService.RemoveSection(c.Param("sectionId")))
}

// AddBlock godoc
// @Summary Append an empty block to a section
// @Tags Protocol
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param sectionId path string true "Section id"
// @Param block body AddBlockRequest true "Block type"
// @Success 200 {object} domain.Protocol "Updated document"
// @Failure 400 {object} gin.H "Invalid input"
// @Router /protocol/sections/{sectionId}/blocks [post]
func (h *ProtocolHandler) AddBlock(c *gin.Context) {
	var req AddBlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	c.JSON(http.StatusOK, h.protocolService.AddBlock(c.Param("sectionId"), domain.BlockType(req.Type)))
}

// UpdateBlock godoc
// @Summary Patch a block
// @Description Shallow-merges the given fields into the block; its variant tag never changes.
// @Tags Protocol
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param sectionId path string true "Section id"
// @Param blockId path string true "Block id"
// @Param patch body domain.BlockUpdate true "Fields to merge"
// @Success 200 {object} domain.Protocol "Updated document"
// @Failure 400 {object} gin.H "Invalid input"
// @Router /protocol/sections/{sectionId}/blocks/{blockId} [patch]
func (h *ProtocolHandler) UpdateBlock(c *gin.Context) {
	var patch domain.BlockUpdate
	if err := c.ShouldBindJSON(&patch); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	c.JSON(http.StatusOK, h.protocolService.UpdateBlock(c.Param("sectionId"), c.Param("blockId"), patch))
}

// RemoveBlock godoc
// @Summary Remove a block from its section
// @Tags Protocol
// @Produce json
// @Security BearerAuth
// @Param sectionId path string true "Section id"
// @Param blockId path string true "Block id"
// @Success 200 {object} domain.Protocol "Updated document"
// @Router /protocol/sections/{sectionId}/blocks/{blockId} [delete]
func (h *ProtocolHandler) RemoveBlock(c *gin.Context) {
	c.JSON(http.StatusOK, h.protocolService.RemoveBlock(c.Param("sectionId"), c.Param("blockId")))
}

// ReorderBlocks godoc
// @Summary Reorder blocks within a section
// @Description Splices the block at "from" out and reinserts it at "to". Out-of-range indices are clamped.
// @Tags Protocol
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param sectionId path string true "Section id"
// @Param reorder body ReorderBlocksRequest true "Source and target indices"
// @Success 200 {object} domain.Protocol "Updated document"
// @Failure 400 {object} gin.H "Invalid input"
// @Router /protocol/sections/{sectionId}/blocks/reorder [post]
func (h *ProtocolHandler) ReorderBlocks(c *gin.Context) {
	var req ReorderBlocksRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	c.JSON(http.StatusOK, h.protocolService.ReorderBlocks(c.Param("sectionId"), req.From, req.To))
}

// ResetProtocol godoc
// @Summary Start a fresh protocol document
// @Description Discards the current document. There is no undo.
// @Tags Protocol
// @Produce json
// @Security BearerAuth
// @Success 200 {object} domain.Protocol "Fresh document"
// @Router /protocol/reset [post]
func (h *ProtocolHandler) ResetProtocol(c *gin.Context) {
	c.JSON(http.StatusOK, h.protocolService.Reset())
}

// SaveAsTemplate godoc
// @Summary Save the current document as a template
// @Tags Protocol
// @Produce json
// @Security BearerAuth
// @Success 201 {object} domain.Protocol "Stored template"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /protocol/template [post]
func (h *ProtocolHandler) SaveAsTemplate(c *gin.Context) {
	template, err := h.protocolService.SaveAsTemplate(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to save template.")
		return
	}
	c.JSON(http.StatusCreated, template)
}

// ListTemplates godoc
// @Summary List saved templates
// @Tags Protocol
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.Protocol "Templates"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /protocol/templates [get]
func (h *ProtocolHandler) ListTemplates(c *gin.Context) {
	templates, err := h.protocolService.ListTemplates(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to list templates.")
		return
	}
	c.JSON(http.StatusOK, templates)
}

// ExportProtocol godoc
// @Summary Export the current document
// @Description Serializes the document to object storage and returns a presigned download link.
// @Tags Protocol
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.ProtocolExport "Download link"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /protocol/export [post]
func (h *ProtocolHandler) ExportProtocol(c *gin.Context) {
	export, err := h.protocolService.Export(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to export protocol.")
		return
	}
	c.JSON(http.StatusOK, export)
}
