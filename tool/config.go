package tool

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/soulblade33/filerobot-uploader/types"
)

var ConfigPath = "config.yaml" // be aware that it can be changed, default to ./config.yaml

func defaultConfig() types.AppConfig {
	return types.AppConfig{
		Uploader: types.UploaderConfig{
			Platform:     types.PlatformFilerobot,
			UploadParams: map[string]*string{},
		},
		Port:     8077, // widget bridge port, change it if it collides with something local.
		Language: "en",
	}
}

// LoadConfig reads the YAML config at path, overlaying it on the defaults.
// When the file does not exist a default one is written so the user has
// something to fill the container and upload key into.
func LoadConfig(path string) (types.AppConfig, error) {
	if path == "" {
		path = ConfigPath
	}
	ConfigPath = path

	cfg := defaultConfig()

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			if writeErr := writeConfig(path, cfg); writeErr != nil {
				return cfg, fmt.Errorf("config file not found, and failed to generate default config: %v", writeErr)
			}
			DefaultLogger.Infof("Created new config file at %s, set container and uploadKey before uploading", path)
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config file: %v", err)
	}
	if info.IsDir() {
		return cfg, fmt.Errorf("config file path is a directory: %s", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %v", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file: %v", err)
	}
	if cfg.Uploader.UploadParams == nil {
		cfg.Uploader.UploadParams = map[string]*string{}
	}
	return cfg, nil
}

func writeConfig(path string, cfg types.AppConfig) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// PersistAppConfig writes the merged config back to the loaded config file,
// so CLI overrides can be made permanent with -saveConfig.
func PersistAppConfig(cfg *types.AppConfig) {
	if cfg == nil {
		return
	}
	if err := writeConfig(ConfigPath, *cfg); err != nil {
		DefaultLogger.Warnf("Failed to persist config: %v", err)
		return
	}
	DefaultLogger.Infof("Saved config to %s", ConfigPath)
}
