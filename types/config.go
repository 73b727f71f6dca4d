package types

// Platform selects which API dialect and auth header the client talks to.
type Platform string

const (
	PlatformFilerobot Platform = "filerobot"
	PlatformAirstore  Platform = "airstore"
)

// UploaderConfig is the per-call request configuration. It is merged once at
// init time and treated as immutable afterwards; request functions receive it
// by value and never mutate it.
type UploaderConfig struct {
	Platform  Platform `yaml:"platform"`
	Container string   `yaml:"container"`
	UploadKey string   `yaml:"uploadKey"`
	// UploadPath is the full upload endpoint. When empty it is resolved from
	// the platform base URL at init time.
	UploadPath string `yaml:"uploadPath,omitempty"`
	// BaseURL overrides the platform-derived API root. Only needed for
	// self-hosted gateways and tests.
	BaseURL string `yaml:"baseUrl,omitempty"`
	// UploadParams are appended to the upload URL as a query string.
	// Entries with a nil value are omitted.
	UploadParams map[string]*string `yaml:"uploadParams,omitempty"`
}

// Clone returns a deep copy so a caller-held config cannot be mutated behind
// an in-flight request.
func (c UploaderConfig) Clone() UploaderConfig {
	out := c
	if c.UploadParams != nil {
		out.UploadParams = make(map[string]*string, len(c.UploadParams))
		for k, v := range c.UploadParams {
			if v == nil {
				out.UploadParams[k] = nil
				continue
			}
			val := *v
			out.UploadParams[k] = &val
		}
	}
	return out
}

// AppConfig represents the application configuration loaded from config file
type AppConfig struct {
	Uploader UploaderConfig `yaml:"uploader"`
	// Dir is the default remote directory new uploads land in.
	Dir  string `yaml:"dir,omitempty"`
	Port int    `yaml:"port"`
	// WebRoot points at a static export of the widget page. Empty disables
	// static serving; the JSON bridge API stays available either way.
	WebRoot  string `yaml:"webRoot,omitempty"`
	Language string `yaml:"language,omitempty"`
}
