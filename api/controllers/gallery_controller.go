package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/soulblade33/filerobot-uploader/client"
	"github.com/soulblade33/filerobot-uploader/tool"
)

// GalleryController serves the widget gallery: directory listing and search.
type GalleryController struct {
	deps *Deps
}

func NewGalleryController(deps *Deps) *GalleryController {
	return &GalleryController{deps: deps}
}

// HandleList handles GET /list?dir=&offset=.
func (ctl *GalleryController) HandleList(c *gin.Context) {
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	opts := client.ListOptions{
		Dir:    c.Query("dir"),
		Offset: offset,
	}
	result, err := client.GetListFiles(opts, ctl.deps.Uploader())
	if err != nil {
		_, message := client.Classify(err)
		c.JSON(http.StatusBadGateway, tool.FastReturnError(message))
		return
	}
	c.JSON(http.StatusOK, tool.FastReturnSuccessWithData(result))
}

// HandleSearch handles GET /search?q=&offset=.
func (ctl *GalleryController) HandleSearch(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, tool.FastReturnError("Missing required parameter: q"))
		return
	}
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	result, err := client.SearchFiles(query, offset, ctl.deps.Uploader())
	if err != nil {
		_, message := client.Classify(err)
		c.JSON(http.StatusBadGateway, tool.FastReturnError(message))
		return
	}
	c.JSON(http.StatusOK, tool.FastReturnSuccessWithData(result))
}
