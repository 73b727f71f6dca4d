package client

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/soulblade33/filerobot-uploader/types"
)

func uploadConfig(serverURL string) types.UploaderConfig {
	return types.UploaderConfig{
		Platform:   types.PlatformFilerobot,
		Container:  "demo",
		UploadKey:  "secret-key",
		UploadPath: serverURL + "/upload",
	}
}

// TestUploadFilesSingleFileWrapped checks that a singular "file" response is
// wrapped as a one-element slice with both duplicate flags false.
func TestUploadFilesSingleFileWrapped(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("X-Filerobot-Key"); got != "secret-key" {
			t.Errorf("Expected secret header, got %q", got)
		}
		_, _ = w.Write([]byte(`{"status":"success","file":{"id":"1","name":"a.png"}}`))
	}))
	defer server.Close()

	result, err := UploadFiles([]types.FileDescriptor{
		{Name: "a.png", Data: strings.NewReader("content")},
	}, DataTypeFiles, "", uploadConfig(server.URL), nil, nil)
	if err != nil {
		t.Fatalf("Upload failed: %v", err)
	}
	if len(result.Files) != 1 || result.Files[0].ID != "1" {
		t.Errorf("Expected one wrapped file, got %+v", result.Files)
	}
	if result.IsDuplicate || result.IsReplacingData {
		t.Errorf("Expected both flags false, got %+v", result)
	}
}

// TestUploadFilesDuplicateState checks the duplicate sentinel in upload.state.
func TestUploadFilesDuplicateState(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"success","files":[{"id":"1"},{"id":"2"}],"upload":{"state":"duplicate"}}`))
	}))
	defer server.Close()

	result, err := UploadFiles([]types.FileDescriptor{
		{Name: "a.png", Data: strings.NewReader("content")},
	}, DataTypeFiles, "", uploadConfig(server.URL), nil, nil)
	if err != nil {
		t.Fatalf("Upload failed: %v", err)
	}
	if len(result.Files) != 2 {
		t.Errorf("Expected two files, got %d", len(result.Files))
	}
	if !result.IsDuplicate || result.IsReplacingData {
		t.Errorf("Expected duplicate only, got %+v", result)
	}
}

// TestUploadFilesReplacingState checks the replacing-data sentinel.
func TestUploadFilesReplacingState(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"success","files":[{"id":"1"}],"upload":{"state":"replacing_data"}}`))
	}))
	defer server.Close()

	result, err := UploadFiles([]types.FileDescriptor{
		{Name: "a.png", Data: strings.NewReader("content")},
	}, DataTypeFiles, "", uploadConfig(server.URL), nil, nil)
	if err != nil {
		t.Fatalf("Upload failed: %v", err)
	}
	if result.IsDuplicate || !result.IsReplacingData {
		t.Errorf("Expected replacing only, got %+v", result)
	}
}

// TestUploadFilesApplicationError checks that status=="error" carries msg and
// hint and triggers the alert notifier.
func TestUploadFilesApplicationError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"error","msg":"bad","hint":"retry"}`))
	}))
	defer server.Close()

	var alerted string
	_, err := UploadFiles([]types.FileDescriptor{
		{Name: "a.png", Data: strings.NewReader("content")},
	}, DataTypeFiles, "", uploadConfig(server.URL), func(message string) { alerted = message }, nil)
	if err == nil {
		t.Fatal("Expected an error")
	}
	if !strings.Contains(err.Error(), "bad") || !strings.Contains(err.Error(), "retry") {
		t.Errorf("Expected msg and hint in error, got %q", err.Error())
	}
	if alerted == "" {
		t.Error("Expected the alert notifier to be invoked")
	}
}

// TestUploadFilesTransportErrorAlert checks that a non-2xx response alerts
// with the "{code}: {msg}" format extracted from the error payload, and that
// the error still propagates.
func TestUploadFilesTransportErrorAlert(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"code":"KEY_INVALID","msg":"upload key rejected"}`))
	}))
	defer server.Close()

	var alerted string
	_, err := UploadFiles([]types.FileDescriptor{
		{Name: "a.png", Data: strings.NewReader("content")},
	}, DataTypeFiles, "", uploadConfig(server.URL), func(message string) { alerted = message }, nil)
	if err == nil {
		t.Fatal("Expected an error")
	}
	if alerted != "KEY_INVALID: upload key rejected" {
		t.Errorf("Expected formatted alert, got %q", alerted)
	}
}

// TestUploadFilesUnexpectedShape checks that an uninterpretable 200 response
// rejects with the raw body.
func TestUploadFilesUnexpectedShape(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"something":"else"}`))
	}))
	defer server.Close()

	_, err := UploadFiles([]types.FileDescriptor{
		{Name: "a.png", Data: strings.NewReader("content")},
	}, DataTypeFiles, "", uploadConfig(server.URL), nil, nil)
	if err == nil {
		t.Fatal("Expected an error")
	}
	if !strings.Contains(err.Error(), "something") {
		t.Errorf("Expected raw body in error, got %q", err.Error())
	}
}

// TestUploadFilesMultipartBody checks that files land in the multipart body
// under the dataType field name.
func TestUploadFilesMultipartBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("Expected multipart body: %v", err)
		}
		headers := r.MultipartForm.File["files[]"]
		if len(headers) != 2 {
			t.Errorf("Expected 2 files under files[], got %d", len(headers))
		}
		if len(headers) > 0 && headers[0].Filename != "a.png" {
			t.Errorf("Unexpected filename %q", headers[0].Filename)
		}
		_, _ = w.Write([]byte(`{"status":"success","files":[{"id":"1"},{"id":"2"}]}`))
	}))
	defer server.Close()

	_, err := UploadFiles([]types.FileDescriptor{
		{Name: "a.png", Data: strings.NewReader("aaaa")},
		{Name: "b.png", Data: strings.NewReader("bbbb")},
	}, DataTypeFiles, "", uploadConfig(server.URL), nil, nil)
	if err != nil {
		t.Fatalf("Upload failed: %v", err)
	}
}

// TestUploadFilesJSONMode checks the application/json branch: URL descriptors
// are collected into a files_urls payload.
func TestUploadFilesJSONMode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Expected JSON content type, got %q", ct)
		}
		body, _ := io.ReadAll(r.Body)
		var payload map[string][]string
		if err := json.Unmarshal(body, &payload); err != nil {
			t.Errorf("Failed to parse body: %v", err)
		}
		if len(payload["files_urls"]) != 2 || payload["files_urls"][0] != "https://example.com/a.png" {
			t.Errorf("Unexpected files_urls payload: %v", payload)
		}
		_, _ = w.Write([]byte(`{"status":"success","files":[{"id":"1"},{"id":"2"}]}`))
	}))
	defer server.Close()

	_, err := UploadFiles([]types.FileDescriptor{
		{URL: "https://example.com/a.png"},
		{URL: "https://example.com/b.png"},
	}, DataTypeJSON, "", uploadConfig(server.URL), nil, nil)
	if err != nil {
		t.Fatalf("Upload failed: %v", err)
	}
}

// TestUploadFilesProgress checks that the progress callback sees the full
// body size by the end of the transfer.
func TestUploadFilesProgress(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.Copy(io.Discard, r.Body)
		_, _ = w.Write([]byte(`{"status":"success","files":[{"id":"1"}]}`))
	}))
	defer server.Close()

	var lastLoaded, total int64
	_, err := UploadFiles([]types.FileDescriptor{
		{Name: "a.bin", Data: strings.NewReader(strings.Repeat("x", 8192))},
	}, DataTypeFiles, "", uploadConfig(server.URL), nil, func(loaded, totalBytes int64) {
		lastLoaded, total = loaded, totalBytes
	})
	if err != nil {
		t.Fatalf("Upload failed: %v", err)
	}
	if total <= 0 || lastLoaded != total {
		t.Errorf("Expected progress to reach total, got %d/%d", lastLoaded, total)
	}
}

// TestUploadFilesEmptySet checks the guard against an empty file set.
func TestUploadFilesEmptySet(t *testing.T) {
	_, err := UploadFiles(nil, DataTypeFiles, "", uploadConfig("http://127.0.0.1:0"), nil, nil)
	if err == nil {
		t.Fatal("Expected an error for an empty file set")
	}
}
