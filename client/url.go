package client

import (
	"fmt"
	"sort"
	"strings"

	"github.com/soulblade33/filerobot-uploader/types"
)

// GalleryImagesLimit is the fixed page size for directory listings.
const GalleryImagesLimit = 100

// BaseURL builds the API root for a container on the selected platform.
func BaseURL(container string, platform types.Platform) string {
	if platform == types.PlatformFilerobot {
		return fmt.Sprintf("https://api.filerobot.com/%s/v3/", container)
	}
	return fmt.Sprintf("https://%s.api.airstore.io/v1/", container)
}

// apiBase resolves the API root for a request: the configured override when
// set, the platform-derived URL otherwise.
func apiBase(cfg types.UploaderConfig) string {
	if cfg.BaseURL != "" {
		return cfg.BaseURL
	}
	return BaseURL(cfg.Container, cfg.Platform)
}

// SecretHeaderName returns the auth header name for the selected platform.
func SecretHeaderName(platform types.Platform) string {
	if platform == types.PlatformFilerobot {
		return "X-Filerobot-Key"
	}
	return "X-Airstore-Secret-Key"
}

// BuildUploadURL joins the configured upload path with a query string built
// from UploadParams, with dir merged in when non-empty. Params with a nil
// value are dropped. Values are joined as plain key=value pairs with no
// URL-encoding: the upload backend expects the raw form, so this matches the
// wire format rather than escaping it. Keys are sorted so repeated calls with
// the same config produce the same URL.
func BuildUploadURL(cfg types.UploaderConfig, dir string) string {
	params := make(map[string]*string, len(cfg.UploadParams)+1)
	for k, v := range cfg.UploadParams {
		params[k] = v
	}
	if dir != "" {
		params["dir"] = &dir
	}

	keys := make([]string, 0, len(params))
	for k, v := range params {
		if v == nil {
			continue
		}
		keys = append(keys, k)
	}
	if len(keys) == 0 {
		return cfg.UploadPath
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%s", k, *params[k]))
	}
	return cfg.UploadPath + "?" + strings.Join(parts, "&")
}
