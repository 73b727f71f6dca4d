package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/soulblade33/filerobot-uploader/api/models"
	"github.com/soulblade33/filerobot-uploader/client"
	"github.com/soulblade33/filerobot-uploader/tool"
	"github.com/soulblade33/filerobot-uploader/types"
)

// UploadController bridges widget page uploads to the remote storage API.
type UploadController struct {
	deps *Deps
}

func NewUploadController(deps *Deps) *UploadController {
	return &UploadController{deps: deps}
}

type uploadURLsRequest struct {
	FilesUrls []string `json:"files_urls"`
	Dir       string   `json:"dir"`
}

// HandleUpload handles POST /upload. The page either posts multipart file
// payloads under the files[] field, or a {"files_urls": [...]} JSON body for
// remote sources. Progress and alerts are pushed to the notify hub; the final
// result is also returned in the response so pages without a WebSocket still
// work.
func (ctl *UploadController) HandleUpload(c *gin.Context) {
	cfg := ctl.deps.Uploader()
	dir := c.Query("dir")
	if dir == "" {
		dir = ctl.deps.DefaultDir()
	}

	sessionID := c.Query("sessionId")
	if sessionID == "" {
		sessionID = tool.GenerateShortSessionID()
	}
	ctx := models.CreateUploadSessionContext(sessionID)
	defer models.FinishUploadSession(sessionID)

	var files []types.FileDescriptor
	dataType := client.DataTypeFiles

	if strings.HasPrefix(c.ContentType(), client.DataTypeJSON) {
		var request uploadURLsRequest
		if err := c.ShouldBindJSON(&request); err != nil {
			c.JSON(http.StatusBadRequest, tool.FastReturnError("Invalid request body: "+err.Error()))
			return
		}
		if len(request.FilesUrls) == 0 {
			c.JSON(http.StatusBadRequest, tool.FastReturnError("files_urls must not be empty"))
			return
		}
		if request.Dir != "" {
			dir = request.Dir
		}
		for _, fileURL := range request.FilesUrls {
			files = append(files, types.FileDescriptor{URL: fileURL})
		}
		dataType = client.DataTypeJSON
	} else {
		form, err := c.MultipartForm()
		if err != nil {
			c.JSON(http.StatusBadRequest, tool.FastReturnError("Invalid multipart body: "+err.Error()))
			return
		}
		headers := form.File[client.DataTypeFiles]
		if len(headers) == 0 {
			c.JSON(http.StatusBadRequest, tool.FastReturnError("No files provided under "+client.DataTypeFiles))
			return
		}
		for _, header := range headers {
			part, err := header.Open()
			if err != nil {
				c.JSON(http.StatusBadRequest, tool.FastReturnError("Failed to read "+header.Filename+": "+err.Error()))
				return
			}
			defer part.Close()
			files = append(files, types.FileDescriptor{Name: header.Filename, Data: part})
		}
	}

	hub := ctl.deps.Hub
	hub.Broadcast(&types.UploadEvent{Type: types.EventUploadStart, SessionID: sessionID})

	alert := func(message string) {
		hub.Broadcast(&types.UploadEvent{Type: types.EventAlert, SessionID: sessionID, Message: message})
		if ctl.deps.Alert != nil {
			ctl.deps.Alert(message)
		}
	}
	onProgress := func(loaded, total int64) {
		hub.BroadcastProgress(&types.UploadEvent{
			Type:      types.EventUploadProgress,
			SessionID: sessionID,
			Loaded:    loaded,
			Total:     total,
		})
	}

	result, err := client.UploadFilesWithContext(ctx, files, dataType, dir, cfg, alert, onProgress)
	if err != nil {
		_, message := client.Classify(err)
		hub.Broadcast(&types.UploadEvent{Type: types.EventUploadError, SessionID: sessionID, Message: message})
		if models.IsUploadSessionCancelled(sessionID) {
			c.JSON(http.StatusConflict, tool.FastReturnError("Upload cancelled"))
			return
		}
		c.JSON(http.StatusBadGateway, tool.FastReturnError(message))
		return
	}

	hub.Broadcast(&types.UploadEvent{Type: types.EventUploadEnd, SessionID: sessionID, Files: result.Files})
	if ctl.deps.OnUpload != nil {
		ctl.deps.OnUpload(result.Files)
	}
	c.JSON(http.StatusOK, gin.H{
		"status":          "success",
		"sessionId":       sessionID,
		"files":           result.Files,
		"isDuplicate":     result.IsDuplicate,
		"isReplacingData": result.IsReplacingData,
	})
}

// HandleCancel handles POST /cancel?sessionId=. Cancelling aborts the
// outgoing request; the remote side may still have stored the files.
func (ctl *UploadController) HandleCancel(c *gin.Context) {
	sessionID := c.Query("sessionId")
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, tool.FastReturnError("Missing required parameter: sessionId"))
		return
	}
	if !models.CancelUploadSession(sessionID) {
		c.JSON(http.StatusNotFound, tool.FastReturnError("Unknown upload session"))
		return
	}
	tool.DefaultLogger.Infof("Upload session %s cancelled", sessionID)
	c.JSON(http.StatusOK, tool.FastReturnSuccess())
}
