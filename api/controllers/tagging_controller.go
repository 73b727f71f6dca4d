package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/soulblade33/filerobot-uploader/client"
	"github.com/soulblade33/filerobot-uploader/tool"
)

// TaggingController exposes the autotagging passthrough.
type TaggingController struct {
	deps *Deps
}

func NewTaggingController(deps *Deps) *TaggingController {
	return &TaggingController{deps: deps}
}

// HandleGenerateTags handles GET /tags?image_url=&provider=&language=&confidence=&limit=.
// The provider payload is passed through untouched.
func (ctl *TaggingController) HandleGenerateTags(c *gin.Context) {
	imageURL := c.Query("image_url")
	if imageURL == "" {
		c.JSON(http.StatusBadRequest, tool.FastReturnError("Missing required parameter: image_url"))
		return
	}
	confidence, _ := strconv.Atoi(c.Query("confidence"))
	limit, _ := strconv.Atoi(c.Query("limit"))
	opts := client.TagOptions{
		Provider:   c.Query("provider"),
		Language:   c.Query("language"),
		Confidence: confidence,
		Limit:      limit,
	}

	payload, err := client.GenerateTags(imageURL, opts, ctl.deps.Uploader())
	if err != nil {
		_, message := client.Classify(err)
		c.JSON(http.StatusBadGateway, tool.FastReturnError(message))
		return
	}
	c.JSON(http.StatusOK, tool.FastReturnSuccessWithData(payload))
}
