package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/soulblade33/filerobot-uploader/client"
	"github.com/soulblade33/filerobot-uploader/tool"
	"github.com/soulblade33/filerobot-uploader/types"
	"github.com/soulblade33/filerobot-uploader/uploader"
)

func main() {
	cfg := tool.SetFlags()
	appCfg, err := tool.LoadConfig(cfg.UseConfigPath)
	if err != nil {
		tool.DefaultLogger.Fatalf("%v", err)
	}
	if cfg.UseContainer != "" {
		appCfg.Uploader.Container = cfg.UseContainer
	}
	if cfg.UseUploadKey != "" {
		appCfg.Uploader.UploadKey = cfg.UseUploadKey
	}
	if cfg.UsePlatform != "" {
		appCfg.Uploader.Platform = types.Platform(cfg.UsePlatform)
	}
	if cfg.UseDir != "" {
		appCfg.Dir = cfg.UseDir
	}
	if cfg.UsePort > 0 {
		appCfg.Port = cfg.UsePort
	}
	if cfg.UseWebRoot != "" {
		appCfg.WebRoot = cfg.UseWebRoot
	}

	// initialize logger
	tool.InitLogger()
	tool.SetLogMode(cfg.Log)

	if cfg.SaveConfig {
		tool.PersistAppConfig(&appCfg)
	}

	app := uploader.New(uploader.Options{
		Platform:     appCfg.Uploader.Platform,
		Container:    appCfg.Uploader.Container,
		UploadKey:    appCfg.Uploader.UploadKey,
		UploadPath:   appCfg.Uploader.UploadPath,
		UploadParams: appCfg.Uploader.UploadParams,
		Dir:          appCfg.Dir,
		Port:         appCfg.Port,
		WebRoot:      appCfg.WebRoot,
		Language:     appCfg.Language,
		SkipProbe:    cfg.SkipProbe,
		OnUpload: func(files []types.RemoteFile) {
			for _, file := range files {
				tool.DefaultLogger.Infof("Uploaded %s (id=%s) %s", file.Name, file.ID, file.PublicLink)
			}
		},
	})

	// one-shot mode: upload the given paths and exit
	if len(cfg.UploadPaths) > 0 {
		uploadAndExit(app, cfg.UploadPaths, appCfg.Dir)
		return
	}

	if err := app.Mount(); err != nil {
		tool.DefaultLogger.Fatalf("Failed to mount uploader: %v", err)
	}
	tool.DefaultLogger.Infof("Widget page: %s (QR at /api/uploader/v1/qrcode)", app.PageURL())

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.Unmount(shutdownCtx); err != nil {
		tool.DefaultLogger.Errorf("Unmount failed: %v", err)
	}
}

func uploadAndExit(app *uploader.App, paths []string, dir string) {
	files := make([]types.FileDescriptor, 0, len(paths))
	for _, path := range paths {
		descriptor, f, err := tool.OpenFileDescriptor(path)
		if err != nil {
			tool.DefaultLogger.Fatalf("%v", err)
		}
		defer f.Close()
		tool.DefaultLogger.Debugf("Queued %s (%s)", descriptor.Name, tool.DetectMimeType(path))
		files = append(files, descriptor)
	}

	var lastPercent int64 = -1
	onProgress := func(loaded, total int64) {
		if total <= 0 {
			return
		}
		percent := loaded * 100 / total
		if percent != lastPercent {
			lastPercent = percent
			tool.DefaultLogger.Debugf("Upload progress: %d%%", percent)
		}
	}

	result, err := app.Upload(context.Background(), files, client.DataTypeFiles, dir, onProgress)
	if err != nil {
		tool.DefaultLogger.Fatalf("Upload failed: %v", err)
	}
	if result.IsDuplicate {
		tool.DefaultLogger.Warnf("Content matched files already stored")
	}
	if result.IsReplacingData {
		tool.DefaultLogger.Warnf("Upload replaced existing stored content")
	}
}
