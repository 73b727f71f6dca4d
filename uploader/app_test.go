package uploader

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/soulblade33/filerobot-uploader/types"
)

// TestNewDefaults tests option merging over the documented defaults
func TestNewDefaults(t *testing.T) {
	app := New(Options{Container: "demo", UploadKey: "key"})
	cfg := app.Config()

	if cfg.Platform != types.PlatformFilerobot {
		t.Errorf("Expected filerobot default platform, got %s", cfg.Platform)
	}
	if cfg.UploadPath != "https://api.filerobot.com/demo/v3/upload" {
		t.Errorf("Unexpected derived upload path: %s", cfg.UploadPath)
	}
	if cfg.UploadParams == nil {
		t.Error("Expected UploadParams to default to an empty map")
	}
}

// TestNewAirstoreUploadPath tests upload path derivation on the other platform
func TestNewAirstoreUploadPath(t *testing.T) {
	app := New(Options{Platform: types.PlatformAirstore, Container: "demo"})
	cfg := app.Config()

	if cfg.UploadPath != "https://demo.api.airstore.io/v1/upload" {
		t.Errorf("Unexpected derived upload path: %s", cfg.UploadPath)
	}
}

// TestConfigSnapshotIsolation tests that Config returns a copy, not a view
func TestConfigSnapshotIsolation(t *testing.T) {
	app := New(Options{Container: "demo"})
	snapshot := app.Config()
	snapshot.UploadParams["tag"] = nil
	snapshot.Container = "other"

	fresh := app.Config()
	if fresh.Container != "demo" {
		t.Error("Mutating a snapshot must not change the app config")
	}
	if _, ok := fresh.UploadParams["tag"]; ok {
		t.Error("Mutating snapshot params must not change the app config")
	}
}

// TestMountUnmountLifecycle tests mount on a free port, then a clean unmount
func TestMountUnmountLifecycle(t *testing.T) {
	app := New(Options{Container: "demo", UploadKey: "key", SkipProbe: true})

	if err := app.Mount(); err != nil {
		t.Fatalf("Failed to mount: %v", err)
	}
	if err := app.Mount(); err == nil {
		t.Error("Expected second Mount to fail")
	}
	if err := app.Configure(Options{Container: "other"}); err == nil {
		t.Error("Expected Configure while mounted to fail")
	}
	pageURL := app.PageURL()
	if !strings.HasPrefix(pageURL, "http://") {
		t.Errorf("Expected a page URL while mounted, got %q", pageURL)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := app.Unmount(ctx); err != nil {
		t.Fatalf("Failed to unmount: %v", err)
	}
	if err := app.Unmount(ctx); err == nil {
		t.Error("Expected second Unmount to fail")
	}
	if app.PageURL() != "" {
		t.Error("Expected empty page URL after unmount")
	}
}

// TestConfigureBeforeMount tests that reconfiguration replaces the snapshot
func TestConfigureBeforeMount(t *testing.T) {
	app := New(Options{Container: "demo"})
	if err := app.Configure(Options{Container: "other", UploadKey: "key2"}); err != nil {
		t.Fatalf("Failed to configure: %v", err)
	}
	cfg := app.Config()
	if cfg.Container != "other" || cfg.UploadKey != "key2" {
		t.Errorf("Unexpected config after reconfigure: %+v", cfg)
	}
}

// TestAppUploadCallbacks tests that Upload fires OnUpload with the stored files
func TestAppUploadCallbacks(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"success","file":{"id":"f1","name":"a.png"}}`))
	}))
	defer upstream.Close()

	var uploaded []types.RemoteFile
	app := New(Options{
		Container:  "demo",
		UploadKey:  "key",
		UploadPath: upstream.URL + "/upload",
		SkipProbe:  true,
		OnUpload:   func(files []types.RemoteFile) { uploaded = files },
	})

	files := []types.FileDescriptor{{Name: "a.png", Data: strings.NewReader("content")}}
	result, err := app.Upload(context.Background(), files, "files[]", "", nil)
	if err != nil {
		t.Fatalf("Upload failed: %v", err)
	}
	if len(result.Files) != 1 || result.Files[0].ID != "f1" {
		t.Errorf("Unexpected upload result: %+v", result)
	}
	if len(uploaded) != 1 {
		t.Errorf("Expected OnUpload callback with 1 file, got %d", len(uploaded))
	}
}

// TestAppUploadAlert tests that a failed upload reaches the Alert hook
func TestAppUploadAlert(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"error","msg":"container quota exceeded"}`))
	}))
	defer upstream.Close()

	var alerted string
	app := New(Options{
		Container:  "demo",
		UploadKey:  "key",
		UploadPath: upstream.URL + "/upload",
		SkipProbe:  true,
		Alert:      func(message string) { alerted = message },
	})

	files := []types.FileDescriptor{{Name: "a.png", Data: strings.NewReader("content")}}
	if _, err := app.Upload(context.Background(), files, "files[]", "", nil); err == nil {
		t.Fatal("Expected upload to fail")
	}
	if !strings.Contains(alerted, "container quota exceeded") {
		t.Errorf("Expected alert with server message, got %q", alerted)
	}
}
