package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/bytedance/sonic"

	"github.com/soulblade33/filerobot-uploader/types"
)

// Autotagging defaults applied when TagOptions fields are zero.
const (
	DefaultTagProvider   = "google"
	DefaultTagLanguage   = "en"
	DefaultTagConfidence = 60
	DefaultTagLimit      = 10
)

// TagOptions tunes the autotagging call. Zero fields fall back to the
// defaults above.
type TagOptions struct {
	Provider   string
	Language   string
	Confidence int
	Limit      int
}

// GenerateTags asks the post-process autotagging endpoint to tag the image at
// imageURL. The provider-defined payload is returned as decoded JSON; the
// caller interprets the tag list.
func GenerateTags(imageURL string, opts TagOptions, cfg types.UploaderConfig) (map[string]any, error) {
	if opts.Provider == "" {
		opts.Provider = DefaultTagProvider
	}
	if opts.Language == "" {
		opts.Language = DefaultTagLanguage
	}
	if opts.Confidence <= 0 {
		opts.Confidence = DefaultTagConfidence
	}
	if opts.Limit <= 0 {
		opts.Limit = DefaultTagLimit
	}

	urlStr := fmt.Sprintf("%spost-process/autotagging?key=%s&image_url=%s&provider=%s&language=%s&confidence=%d&limit=%d&ci=%s",
		apiBase(cfg), cfg.UploadKey, imageURL,
		opts.Provider, opts.Language, opts.Confidence, opts.Limit, cfg.Container)

	body, err := Send(context.Background(), urlStr, http.MethodGet, nil, 0, authHeaders(cfg), nil)
	if err != nil {
		return nil, err
	}
	var payload map[string]any
	if err := sonic.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("failed to parse autotagging response: %v", err)
	}
	return payload, nil
}
