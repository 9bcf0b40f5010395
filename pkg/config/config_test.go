package config

import (
	"os"
	"testing"
	"time"
)

func TestConfigDefaults(t *testing.T) {
	var conf BoothConfig
	if err := LoadConfig(&conf, ""); err != nil {
		t.Fatal(err)
	}
	if conf.Booth.Session.Duration != 5*time.Minute {
		t.Errorf("session duration %v, want 5m", conf.Booth.Session.Duration)
	}
	if conf.Booth.Strip.Width != 500 || conf.Booth.Strip.SlotHeight != 250 || conf.Booth.Strip.MaxPhotos != 6 {
		t.Errorf("unexpected strip defaults: %+v", conf.Booth.Strip)
	}
	if conf.Server.Address != ":8000" {
		t.Errorf("server address %v, want :8000", conf.Server.Address)
	}
	if conf.Monitoring.IsEnabled() {
		t.Error("monitoring is on by default")
	}
}

func TestConfigEnv(t *testing.T) {
	_ = os.Setenv("BOOTH_BOOTH_SESSION_DURATION", "90s")
	_ = os.Setenv("BOOTH_BOOTH_STRIP_MAX_PHOTOS", "3")
	defer func() {
		_ = os.Unsetenv("BOOTH_BOOTH_SESSION_DURATION")
		_ = os.Unsetenv("BOOTH_BOOTH_STRIP_MAX_PHOTOS")
	}()

	var conf BoothConfig
	if err := LoadConfig(&conf, ""); err != nil {
		t.Fatal(err)
	}
	if conf.Booth.Session.Duration != 90*time.Second {
		t.Errorf("session duration %v is not 90s", conf.Booth.Session.Duration)
	}
	if conf.Booth.Strip.MaxPhotos != 3 {
		t.Errorf("max photos %v is not 3", conf.Booth.Strip.MaxPhotos)
	}
}

func TestConfigMissingFile(t *testing.T) {
	var conf BoothConfig
	if err := LoadConfig(&conf, t.TempDir()); err != nil {
		t.Fatalf("missing file should fall back to defaults: %v", err)
	}
	if conf.Booth.Session.Duration != 5*time.Minute {
		t.Errorf("defaults not applied: %+v", conf.Booth.Session)
	}
}
