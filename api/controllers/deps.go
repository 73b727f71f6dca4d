package controllers

import (
	"github.com/soulblade33/filerobot-uploader/api/notifyhub"
	"github.com/soulblade33/filerobot-uploader/client"
	"github.com/soulblade33/filerobot-uploader/types"
)

// Deps wires the controllers to the owning app. All accessors return fresh
// snapshots so a Configure between requests cannot race an in-flight handler.
type Deps struct {
	// Uploader returns the current request configuration.
	Uploader func() types.UploaderConfig
	// DefaultDir is the remote directory used when the request names none.
	DefaultDir func() string
	// OnUpload is invoked with the stored files after a successful upload.
	OnUpload func(files []types.RemoteFile)
	// Alert receives user-facing error messages (notification only).
	Alert client.AlertFunc
	// Settings returns the (app-side cached) token settings.
	Settings func() (*types.TokenSettings, error)
	// PageURL returns the address the widget page is reachable at on the LAN.
	PageURL func() string
	// Language is the UI language the widget page should render in.
	Language func() string

	Hub *notifyhub.Hub
}
