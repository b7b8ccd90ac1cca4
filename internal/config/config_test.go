package config

import (
	"testing"
	"time"
)

func TestDSN(t *testing.T) {
	c := DatabaseConfig{Host: "db", Port: "5433", Name: "pos", User: "u", Password: "p", SSLMode: "disable", Timezone: "UTC"}
	want := "host=db user=u password=p dbname=pos port=5433 sslmode=disable TimeZone=UTC"
	if got := c.DSN(); got != want {
		t.Errorf("DSN() = %q, want %q", got, want)
	}
}

func TestLocation(t *testing.T) {
	tests := []struct {
		tz   string
		want string
	}{
		{tz: "UTC", want: "UTC"},
		{tz: "Not/AZone", want: time.Local.String()},
	}
	for _, tt := range tests {
		c := AppConfig{Timezone: tt.tz}
		if got := c.Location().String(); got != tt.want {
			t.Errorf("Location(%q) = %s, want %s", tt.tz, got, tt.want)
		}
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	if cfg.Printer.ChunkDelay != 80*time.Millisecond {
		t.Errorf("chunk delay = %s", cfg.Printer.ChunkDelay)
	}
	if cfg.Messaging.WhatsAppBaseURL != "https://wa.me/" {
		t.Errorf("whatsapp base = %q", cfg.Messaging.WhatsAppBaseURL)
	}
}
