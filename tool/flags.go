package tool

import "flag"

// Config holds runtime overrides from CLI flags.
type Config struct {
	Log           string
	UseConfigPath string
	UseContainer  string
	UseUploadKey  string
	UsePlatform   string
	UseDir        string // remote directory new uploads land in
	UsePort       int
	UseWebRoot    string
	SkipProbe     bool     // if true, skip the ICMP reachability probe before mount.
	SaveConfig    bool     // if true, write the merged config back to the config file.
	UploadPaths   []string // positional args: upload these local files and exit.
}

// SetFlags parses CLI flags and returns the override config.
func SetFlags() Config {
	var cfg Config
	flag.StringVar(&cfg.Log, "log", "", "log mode: dev|prod|none")
	flag.StringVar(&cfg.UseConfigPath, "useConfigPath", "", "override config file path")
	flag.StringVar(&cfg.UseContainer, "useContainer", "", "override container (tenant) identifier")
	flag.StringVar(&cfg.UseUploadKey, "useUploadKey", "", "override upload secret key")
	flag.StringVar(&cfg.UsePlatform, "usePlatform", "", "override platform: filerobot|airstore")
	flag.StringVar(&cfg.UseDir, "useDir", "", "override remote upload directory")
	flag.IntVar(&cfg.UsePort, "usePort", 0, "override widget bridge port")
	flag.StringVar(&cfg.UseWebRoot, "useWebRoot", "", "path to a static widget page export to serve")
	flag.BoolVar(&cfg.SkipProbe, "skipProbe", false, "skip the API host reachability probe")
	flag.BoolVar(&cfg.SaveConfig, "saveConfig", false, "persist the merged config (flags over file) back to the config file")
	flag.Parse()
	cfg.UploadPaths = flag.Args()
	return cfg
}
