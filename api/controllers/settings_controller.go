package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/soulblade33/filerobot-uploader/client"
	"github.com/soulblade33/filerobot-uploader/tool"
)

// SettingsController serves token settings and a status summary for the
// widget page bootstrap.
type SettingsController struct {
	deps *Deps
}

func NewSettingsController(deps *Deps) *SettingsController {
	return &SettingsController{deps: deps}
}

// HandleSettings handles GET /settings. The answer comes from the app-side
// TTL cache, so repeated page loads do not hammer the settings endpoint.
func (ctl *SettingsController) HandleSettings(c *gin.Context) {
	settings, err := ctl.deps.Settings()
	if err != nil {
		_, message := client.Classify(err)
		c.JSON(http.StatusBadGateway, tool.FastReturnError(message))
		return
	}
	c.JSON(http.StatusOK, tool.FastReturnSuccessWithData(settings))
}

// HandleStatus handles GET /status: enough for the page to render its header
// without another round trip. The upload key never leaves the process.
func (ctl *SettingsController) HandleStatus(c *gin.Context) {
	cfg := ctl.deps.Uploader()
	c.JSON(http.StatusOK, tool.FastReturnSuccessWithData(gin.H{
		"running":   true,
		"platform":  cfg.Platform,
		"container": cfg.Container,
		"dir":       ctl.deps.DefaultDir(),
		"pageUrl":   ctl.deps.PageURL(),
		"language":  ctl.deps.Language(),
		"limit":     client.GalleryImagesLimit,
	}))
}
