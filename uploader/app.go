// Package uploader is the embedding surface: an explicit application object
// with a create, configure, mount, unmount lifecycle instead of a shared
// global namespace. Mounting starts the local widget bridge server.
package uploader

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/soulblade33/filerobot-uploader/api"
	"github.com/soulblade33/filerobot-uploader/api/controllers"
	"github.com/soulblade33/filerobot-uploader/api/notifyhub"
	"github.com/soulblade33/filerobot-uploader/client"
	"github.com/soulblade33/filerobot-uploader/tool"
	"github.com/soulblade33/filerobot-uploader/types"
)

// DefaultSettingsTTL bounds how long token settings are served from cache.
const DefaultSettingsTTL = 5 * time.Minute

// ProbeTimeout is the deadline for the pre-mount reachability probe.
const ProbeTimeout = 2 * time.Second

// Options configures an App. Zero fields fall back to documented defaults:
// Platform filerobot, UploadPath derived from the platform base URL,
// UploadParams empty, OnUpload and Alert no-ops.
type Options struct {
	Platform     types.Platform
	Container    string
	UploadKey    string
	UploadPath   string
	UploadParams map[string]*string

	// Dir is the default remote directory for uploads started from the page.
	Dir string
	// Port is the widget bridge port; 0 picks a free one.
	Port int
	// WebRoot optionally points at a static export of the widget page.
	WebRoot string
	// Language is the widget page UI language. Defaults to "en".
	Language string

	// OnUpload runs after every successful upload with the stored files.
	OnUpload func(files []types.RemoteFile)
	// Alert receives user-facing error messages. Defaults to a log warning.
	Alert client.AlertFunc

	// SettingsTTL overrides DefaultSettingsTTL.
	SettingsTTL time.Duration
	// SkipProbe disables the ICMP reachability check during Mount.
	SkipProbe bool
}

// App is one uploader instance. Configuration is immutable while mounted;
// request functions receive value snapshots and never see later changes.
type App struct {
	mu      sync.RWMutex
	opts    Options
	cfg     types.UploaderConfig
	hub     *notifyhub.Hub
	server  *api.Server
	mounted bool

	settings *settingsCache
}

// New creates an App, merging the given options over the defaults.
func New(opts Options) *App {
	app := &App{hub: notifyhub.New()}
	app.applyOptions(opts)
	app.settings = newSettingsCache(app.opts.SettingsTTL)
	return app
}

func (a *App) applyOptions(opts Options) {
	if opts.Platform == "" {
		opts.Platform = types.PlatformFilerobot
	}
	if opts.UploadParams == nil {
		opts.UploadParams = map[string]*string{}
	}
	if opts.UploadPath == "" {
		opts.UploadPath = client.BaseURL(opts.Container, opts.Platform) + "upload"
	}
	if opts.Alert == nil {
		opts.Alert = func(message string) {
			tool.DefaultLogger.Warnf("Upload alert: %s", message)
		}
	}
	if opts.OnUpload == nil {
		opts.OnUpload = func([]types.RemoteFile) {}
	}
	if opts.Language == "" {
		opts.Language = "en"
	}
	if opts.SettingsTTL <= 0 {
		opts.SettingsTTL = DefaultSettingsTTL
	}

	a.opts = opts
	a.cfg = types.UploaderConfig{
		Platform:     opts.Platform,
		Container:    opts.Container,
		UploadKey:    opts.UploadKey,
		UploadPath:   opts.UploadPath,
		UploadParams: opts.UploadParams,
	}
}

// Configure re-merges options. Only allowed before Mount (or after Unmount).
func (a *App) Configure(opts Options) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.mounted {
		return fmt.Errorf("cannot configure a mounted uploader, unmount first")
	}
	a.applyOptions(opts)
	a.settings = newSettingsCache(a.opts.SettingsTTL)
	return nil
}

// Config returns a snapshot of the request configuration.
func (a *App) Config() types.UploaderConfig {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.cfg.Clone()
}

// Hub exposes the notify hub, e.g. for host-process listeners.
func (a *App) Hub() *notifyhub.Hub {
	return a.hub
}

// Mount starts the widget bridge server. It returns once the port is bound;
// serving continues in the background until Unmount.
func (a *App) Mount() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.mounted {
		return fmt.Errorf("uploader already mounted")
	}
	if a.cfg.Container == "" || a.cfg.UploadKey == "" {
		// authenticated requests would fail server-side anyway, but
		// mounting without credentials is almost always a setup mistake
		tool.DefaultLogger.Warnf("Mounting without container/uploadKey, authenticated requests will fail")
	}

	if !a.opts.SkipProbe {
		host := apiHost(a.cfg)
		if !tool.QuickICMPProbe(host, ProbeTimeout) {
			tool.DefaultLogger.Warnf("API host %s did not answer a ping, uploads may fail (some networks drop ICMP)", host)
		}
	}

	server := api.NewServer(a.opts.Port, a.opts.WebRoot, a.deps())
	if err := server.Listen(); err != nil {
		return err
	}
	a.server = server
	a.mounted = true
	go func() {
		if err := server.Serve(); err != nil {
			tool.DefaultLogger.Errorf("Widget bridge stopped: %v", err)
		}
	}()

	tool.DefaultLogger.Infof("Uploader mounted at %s", a.pageURLLocked())
	return nil
}

// Unmount gracefully stops the widget bridge server.
func (a *App) Unmount(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.mounted {
		return fmt.Errorf("uploader is not mounted")
	}
	err := a.server.Shutdown(ctx)
	a.server = nil
	a.mounted = false
	return err
}

// PageURL returns the LAN address of the widget page, or empty when not
// mounted or no LAN interface is available.
func (a *App) PageURL() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.pageURLLocked()
}

func (a *App) pageURLLocked() string {
	if a.server == nil {
		return ""
	}
	ip := tool.FirstLANIPv4()
	if ip == "" {
		ip = "127.0.0.1"
	}
	return fmt.Sprintf("http://%s:%d/", ip, a.server.Port())
}

// Upload uploads from the host process through the same path the widget
// page uses, including the alert notifier and the OnUpload callback.
func (a *App) Upload(ctx context.Context, files []types.FileDescriptor, dataType, dir string, onProgress client.ProgressFunc) (*types.UploadResult, error) {
	a.mu.RLock()
	cfg := a.cfg.Clone()
	alert := a.opts.Alert
	onUpload := a.opts.OnUpload
	if dir == "" {
		dir = a.opts.Dir
	}
	a.mu.RUnlock()

	result, err := client.UploadFilesWithContext(ctx, files, dataType, dir, cfg, alert, onProgress)
	if err != nil {
		return nil, err
	}
	onUpload(result.Files)
	return result, nil
}

// TokenSettings returns the account settings, served from the TTL cache when
// fresh. The request layer itself stays cache-free; caching lives here.
func (a *App) TokenSettings() (*types.TokenSettings, error) {
	return a.settings.get(func() (*types.TokenSettings, error) {
		return client.GetTokenSettings(a.Config())
	})
}

func (a *App) deps() *controllers.Deps {
	return &controllers.Deps{
		Uploader:   a.Config,
		DefaultDir: func() string { a.mu.RLock(); defer a.mu.RUnlock(); return a.opts.Dir },
		OnUpload:   func(files []types.RemoteFile) { a.mu.RLock(); cb := a.opts.OnUpload; a.mu.RUnlock(); cb(files) },
		Alert:      func(message string) { a.mu.RLock(); cb := a.opts.Alert; a.mu.RUnlock(); cb(message) },
		Settings:   a.TokenSettings,
		PageURL:    a.PageURL,
		Language:   func() string { a.mu.RLock(); defer a.mu.RUnlock(); return a.opts.Language },
		Hub:        a.hub,
	}
}

// apiHost extracts the hostname the client will talk to, for the probe.
func apiHost(cfg types.UploaderConfig) string {
	if cfg.Platform == types.PlatformFilerobot {
		return "api.filerobot.com"
	}
	return fmt.Sprintf("%s.api.airstore.io", cfg.Container)
}
