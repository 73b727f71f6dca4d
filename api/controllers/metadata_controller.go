package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/soulblade33/filerobot-uploader/client"
	"github.com/soulblade33/filerobot-uploader/tool"
)

// MetadataController handles per-file properties and product updates.
type MetadataController struct {
	deps *Deps
}

func NewMetadataController(deps *Deps) *MetadataController {
	return &MetadataController{deps: deps}
}

type propertiesRequest struct {
	Properties map[string]any `json:"properties"`
}

type productRequest struct {
	Product map[string]any `json:"product"`
}

// HandleSaveProperties handles PUT /file/:id/properties.
func (ctl *MetadataController) HandleSaveProperties(c *gin.Context) {
	var request propertiesRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, tool.FastReturnError("Invalid request body: "+err.Error()))
		return
	}
	file, err := client.SaveMetaData(c.Param("id"), request.Properties, ctl.deps.Uploader())
	if err != nil {
		_, message := client.Classify(err)
		c.JSON(http.StatusBadGateway, tool.FastReturnError(message))
		return
	}
	c.JSON(http.StatusOK, tool.FastReturnSuccessWithData(file))
}

// HandleUpdateProduct handles PUT /file/:id/product.
func (ctl *MetadataController) HandleUpdateProduct(c *gin.Context) {
	var request productRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, tool.FastReturnError("Invalid request body: "+err.Error()))
		return
	}
	file, err := client.UpdateProduct(c.Param("id"), request.Product, ctl.deps.Uploader())
	if err != nil {
		_, message := client.Classify(err)
		c.JSON(http.StatusBadGateway, tool.FastReturnError(message))
		return
	}
	c.JSON(http.StatusOK, tool.FastReturnSuccessWithData(file))
}
