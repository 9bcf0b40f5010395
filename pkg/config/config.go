package config

import (
	"time"

	flag "github.com/spf13/pflag"
)

type BoothConfig struct {
	Booth      Booth
	Server     Server
	Monitoring Monitoring
}

type Booth struct {
	Debug   bool
	Session Session
	Strip   Strip
	Storage Storage
}

// Session bounds the active phase of a paired room.
type Session struct {
	Duration time.Duration `fig:"duration" default:"5m"`
}

// Strip describes the output photo strip canvas.
// The canvas height is SlotHeight * MaxPhotos regardless of
// how many photos were actually submitted.
type Strip struct {
	Width      int `fig:"width" default:"500"`
	SlotHeight int `fig:"slot_height" default:"250"`
	MaxPhotos  int `fig:"max_photos" default:"6"`
	Quality    int `fig:"quality" default:"90"`
}

type Storage struct {
	Dir string `fig:"dir" default:"uploads"`
	S3  S3
}

// S3 is an optional S3-compatible backend for final strips.
// Active when the endpoint is not empty.
type S3 struct {
	Endpoint string
	Bucket   string
	Key      string
	Secret   string
}

type Server struct {
	Address string `fig:"address" default:":8000"`
	Https   bool
	Tls     struct {
		Address   string `fig:"address" default:":443"`
		HttpsCert string
		HttpsKey  string
		Domain    string
	}
}

type Monitoring struct {
	Port             int    `fig:"port" default:"6601"`
	URLPrefix        string `fig:"url_prefix" default:"/booth"`
	MetricEnabled    bool
	ProfilingEnabled bool
}

func (m Monitoring) IsEnabled() bool { return m.MetricEnabled || m.ProfilingEnabled }

// allows custom config path
var configPath string

func NewBoothConfig() (conf BoothConfig) {
	if err := LoadConfig(&conf, configPath); err != nil {
		panic(err)
	}
	return
}

func (c *BoothConfig) ParseFlags() {
	flag.StringVarP(&c.Server.Address, "address", "a", c.Server.Address, "HTTP server address")
	flag.BoolVarP(&c.Booth.Debug, "debug", "d", c.Booth.Debug, "Enable debug logging")
	flag.IntVar(&c.Monitoring.Port, "monitoring.port", c.Monitoring.Port, "Monitoring server port")
	flag.StringVar(&configPath, "conf", configPath, "Set custom configuration file path")
	flag.Parse()
}
