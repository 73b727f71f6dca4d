package client

import (
	"bytes"
	"context"
	"fmt"
	"net/http"

	"github.com/bytedance/sonic"

	"github.com/soulblade33/filerobot-uploader/types"
)

type fileEnvelope struct {
	File *types.RemoteFile `json:"file"`
}

// SaveMetaData replaces the stored properties of the file with the given id.
// Returns the updated file when the server includes one; transport errors
// propagate unmodified.
func SaveMetaData(id string, properties map[string]any, cfg types.UploaderConfig) (*types.RemoteFile, error) {
	return putFileField(id, "properties", properties, cfg)
}

// UpdateProduct replaces the product association of the file with the given id.
func UpdateProduct(id string, product map[string]any, cfg types.UploaderConfig) (*types.RemoteFile, error) {
	return putFileField(id, "product", product, cfg)
}

func putFileField(id, field string, value map[string]any, cfg types.UploaderConfig) (*types.RemoteFile, error) {
	if id == "" {
		return nil, fmt.Errorf("invalid parameters: file id must not be empty")
	}
	payload, err := sonic.Marshal(map[string]any{field: value})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s payload: %v", field, err)
	}

	urlStr := fmt.Sprintf("%sfile/%s/%s", apiBase(cfg), id, field)
	headers := authHeaders(cfg)
	headers["Content-Type"] = DataTypeJSON

	body, err := Send(context.Background(), urlStr, http.MethodPut, bytes.NewReader(payload), int64(len(payload)), headers, nil)
	if err != nil {
		return nil, err
	}
	var env fileEnvelope
	if err := sonic.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("failed to parse %s response: %v", field, err)
	}
	return env.File, nil
}
