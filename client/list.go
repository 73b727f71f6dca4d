package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/bytedance/sonic"

	"github.com/soulblade33/filerobot-uploader/types"
)

// ListOptions selects the directory page to fetch. Offset is passed through
// as supplied; there is no client-side bounds checking.
type ListOptions struct {
	Dir    string
	Offset int
}

type listEnvelope struct {
	Files            []types.RemoteFile `json:"files"`
	Directories      []string           `json:"directories"`
	CurrentDirectory struct {
		FilesCount int `json:"files_count"`
	} `json:"current_directory"`
}

type searchEnvelope struct {
	Files []types.RemoteFile `json:"files"`
	Info  struct {
		TotalFilesCount int `json:"total_files_count"`
	} `json:"info"`
}

// GetListFiles fetches one page of a directory listing with the fixed
// GalleryImagesLimit page size. Transport errors propagate unmodified; the
// response is not shape-checked beyond decoding.
func GetListFiles(opts ListOptions, cfg types.UploaderConfig) (*types.ListResult, error) {
	urlStr := fmt.Sprintf("%slist?dir=%s&offset=%d&limit=%d",
		apiBase(cfg), opts.Dir, opts.Offset, GalleryImagesLimit)

	body, err := Send(context.Background(), urlStr, http.MethodGet, nil, 0, authHeaders(cfg), nil)
	if err != nil {
		return nil, err
	}
	var env listEnvelope
	if err := sonic.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("failed to parse list response: %v", err)
	}
	return &types.ListResult{
		Files:       env.Files,
		Directories: env.Directories,
		TotalCount:  env.CurrentDirectory.FilesCount,
	}, nil
}

// SearchFiles fetches one page of search matches for query.
func SearchFiles(query string, offset int, cfg types.UploaderConfig) (*types.SearchResult, error) {
	urlStr := fmt.Sprintf("%ssearch?q=%s&offset=%d",
		apiBase(cfg), query, offset)

	body, err := Send(context.Background(), urlStr, http.MethodGet, nil, 0, authHeaders(cfg), nil)
	if err != nil {
		return nil, err
	}
	var env searchEnvelope
	if err := sonic.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("failed to parse search response: %v", err)
	}
	return &types.SearchResult{
		Files:      env.Files,
		TotalCount: env.Info.TotalFilesCount,
	}, nil
}

func authHeaders(cfg types.UploaderConfig) map[string]string {
	return map[string]string{SecretHeaderName(cfg.Platform): cfg.UploadKey}
}
