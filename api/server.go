package api

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/soulblade33/filerobot-uploader/api/controllers"
	"github.com/soulblade33/filerobot-uploader/api/middlewares"
	"github.com/soulblade33/filerobot-uploader/api/notifyhub"
	"github.com/soulblade33/filerobot-uploader/tool"
)

// Server is the widget bridge HTTP server: it serves the (optional) static
// widget page plus the JSON API the page talks to.
type Server struct {
	port     int
	webRoot  string
	deps     *controllers.Deps
	engine   *gin.Engine
	server   *http.Server
	listener net.Listener
	mu       sync.RWMutex
}

// NewServer creates a bridge server. webRoot may be empty; the JSON API is
// served either way.
func NewServer(port int, webRoot string, deps *controllers.Deps) *Server {
	return &Server{
		port:    port,
		webRoot: webRoot,
		deps:    deps,
	}
}

func (s *Server) setupRoutes() *gin.Engine {
	if tool.DefaultLogger.GetLevel() == log.DebugLevel {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(middlewares.AllowAllCORS())
	engine.Use(gin.Recovery())

	uploadCtrl := controllers.NewUploadController(s.deps)
	galleryCtrl := controllers.NewGalleryController(s.deps)
	taggingCtrl := controllers.NewTaggingController(s.deps)
	metadataCtrl := controllers.NewMetadataController(s.deps)
	settingsCtrl := controllers.NewSettingsController(s.deps)

	v1 := engine.Group("/api/uploader/v1")
	{
		v1.POST("/upload", uploadCtrl.HandleUpload)
		v1.POST("/cancel", uploadCtrl.HandleCancel)
		v1.GET("/list", galleryCtrl.HandleList)
		v1.GET("/search", galleryCtrl.HandleSearch)
		v1.GET("/settings", settingsCtrl.HandleSettings)
		v1.GET("/status", settingsCtrl.HandleStatus)
		v1.GET("/qrcode", controllers.GenerateQRCode(s.deps))
		v1.GET("/notify-ws", notifyhub.HandleNotifyWS(s.deps.Hub))

		// management calls are only accepted from the host machine
		manage := v1.Group("", middlewares.OnlyAllowLocal)
		{
			manage.GET("/tags", taggingCtrl.HandleGenerateTags)
			manage.PUT("/file/:id/properties", metadataCtrl.HandleSaveProperties)
			manage.PUT("/file/:id/product", metadataCtrl.HandleUpdateProduct)
		}
	}

	if s.webRoot != "" {
		if _, err := os.Stat(filepath.Join(s.webRoot, "index.html")); err == nil {
			engine.NoRoute(gin.WrapH(http.FileServer(http.Dir(s.webRoot))))
			tool.DefaultLogger.Infof("[Server] Serving widget page from %s", s.webRoot)
		} else {
			tool.DefaultLogger.Warnf("[Server] No index.html under %s, static serving disabled", s.webRoot)
		}
	}

	return engine
}

// Listen binds the server port. Separated from Serve so callers know the
// address is taken before they hand it out (QR code, logs).
func (s *Server) Listen() error {
	listener, err := net.Listen("tcp", fmt.Sprintf(":%d", s.port))
	if err != nil {
		return fmt.Errorf("failed to bind widget bridge port %d: %v", s.port, err)
	}
	s.mu.Lock()
	s.listener = listener
	s.mu.Unlock()
	return nil
}

// Serve runs the HTTP server on the bound listener until Shutdown.
func (s *Server) Serve() error {
	s.mu.Lock()
	if s.listener == nil {
		s.mu.Unlock()
		return fmt.Errorf("serve called before listen")
	}
	engine := s.setupRoutes()
	s.engine = engine
	s.server = &http.Server{Handler: engine}
	listener := s.listener
	s.mu.Unlock()

	tool.DefaultLogger.Infof("Starting widget bridge on http://0.0.0.0:%d", s.Port())
	if err := s.server.Serve(listener); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Start binds and serves. Blocking; mainly for tests and direct use.
func (s *Server) Start() error {
	if err := s.Listen(); err != nil {
		return err
	}
	return s.Serve()
}

// Shutdown gracefully stops the server. When called before Serve got to run,
// the bound listener is closed directly.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	server := s.server
	listener := s.listener
	s.mu.Unlock()
	if server == nil {
		if listener != nil {
			return listener.Close()
		}
		return nil
	}
	return server.Shutdown(ctx)
}

// Port returns the actually bound port (useful when constructed with :0).
func (s *Server) Port() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.listener != nil {
		if addr, ok := s.listener.Addr().(*net.TCPAddr); ok {
			return addr.Port
		}
	}
	return s.port
}
