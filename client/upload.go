package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/bytedance/sonic"

	"github.com/soulblade33/filerobot-uploader/tool"
	"github.com/soulblade33/filerobot-uploader/types"
)

// DataTypeFiles is the multipart field name for raw file payloads.
const DataTypeFiles = "files[]"

// DataTypeFilesURL marks descriptors carrying remote source URLs. When the
// data type is exactly "application/json" the files are sent as a JSON
// {"files_urls": [...]} body instead of multipart.
const (
	DataTypeFilesURL = "files_url[]"
	DataTypeJSON     = "application/json"
)

// UploadFiles uploads the given files to the configured upload endpoint.
// See UploadFilesWithContext.
func UploadFiles(files []types.FileDescriptor, dataType, dir string, cfg types.UploaderConfig, alert AlertFunc, onProgress ProgressFunc) (*types.UploadResult, error) {
	return UploadFilesWithContext(context.Background(), files, dataType, dir, cfg, alert, onProgress)
}

// UploadFilesWithContext uploads the given files with cancellation support.
// dataType selects the body encoding: DataTypeJSON collects descriptor URLs
// into a JSON payload, anything else appends each descriptor's data to a
// multipart body under the dataType field name. Any failure (transport or
// application-level) is pushed through the alert notifier and still returned;
// the alert is a side effect, not recovery.
func UploadFilesWithContext(ctx context.Context, files []types.FileDescriptor, dataType, dir string, cfg types.UploaderConfig, alert AlertFunc, onProgress ProgressFunc) (*types.UploadResult, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("invalid parameters: files must not be empty")
	}
	if dataType == "" {
		dataType = DataTypeFiles
	}

	body, contentType, err := buildUploadBody(files, dataType)
	if err != nil {
		return nil, err
	}

	urlStr := BuildUploadURL(cfg, dir)
	headers := map[string]string{
		SecretHeaderName(cfg.Platform): cfg.UploadKey,
		"Content-Type":                 contentType,
	}

	respBody, err := Send(ctx, urlStr, http.MethodPost, bytes.NewReader(body), int64(len(body)), headers, onProgress)
	if err != nil {
		notifyAlert(alert, err)
		return nil, err
	}

	kind, env := decodeUploadResponse(respBody)
	switch kind {
	case uploadSuccessSingle, uploadSuccessMany:
		result := resultFromEnvelope(kind, env)
		tool.DefaultLogger.Debugf("Uploaded %d file(s) (duplicate=%v, replacing=%v)",
			len(result.Files), result.IsDuplicate, result.IsReplacingData)
		return result, nil
	case uploadFailure:
		uploadErr := &UploadError{Msg: env.Msg, Hint: env.Hint}
		notifyAlert(alert, uploadErr)
		return nil, uploadErr
	default:
		err := fmt.Errorf("unexpected upload response: %s", respBody)
		notifyAlert(alert, err)
		return nil, err
	}
}

// buildUploadBody assembles the request body and its Content-Type.
func buildUploadBody(files []types.FileDescriptor, dataType string) ([]byte, string, error) {
	if dataType == DataTypeJSON {
		urls := make([]string, 0, len(files))
		for _, file := range files {
			if file.URL == "" {
				return nil, "", fmt.Errorf("invalid parameters: descriptor %q has no URL in JSON mode", file.Name)
			}
			urls = append(urls, file.URL)
		}
		payload, err := sonic.Marshal(map[string][]string{"files_urls": urls})
		if err != nil {
			return nil, "", fmt.Errorf("failed to marshal upload payload: %v", err)
		}
		return payload, DataTypeJSON, nil
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for _, file := range files {
		if file.Data == nil {
			return nil, "", fmt.Errorf("invalid parameters: descriptor %q has no data", file.Name)
		}
		part, err := writer.CreateFormFile(dataType, file.Name)
		if err != nil {
			return nil, "", fmt.Errorf("failed to create multipart field: %v", err)
		}
		if _, err := io.Copy(part, file.Data); err != nil {
			return nil, "", fmt.Errorf("failed to read file %q: %v", file.Name, err)
		}
	}
	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to finalize multipart body: %v", err)
	}
	return buf.Bytes(), writer.FormDataContentType(), nil
}
