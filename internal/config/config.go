package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultAssets is the app shell pre-cached on install.
var DefaultAssets = []string{
	"./",
	"./index.html",
	"./favicon.ico",
	"./icon-192x192.png",
	"./icon-512x512.png",
	"/manifest.json",
	"https://cdn.jsdelivr.net/npm/flatpickr/dist/flatpickr.min.css",
	"https://cdn.jsdelivr.net/npm/flatpickr/dist/themes/dark.css",
	"https://cdn.jsdelivr.net/npm/flatpickr",
	"https://cdn.jsdelivr.net/npm/flatpickr/dist/l10n/ko.js",
}

type Config struct {
	HTTPAddr string

	// AppOrigin is the scheme+host of the web app the worker fronts.
	AppOrigin *url.URL
	// AppScope is the path prefix of pages the worker controls.
	AppScope string

	CacheNamespace     string
	Assets             []string
	CacheMaxEntryBytes int64
	UpstreamTimeout    time.Duration

	MySQLDSN   string
	SQLitePath string

	RabbitMQURL         string
	RabbitExchange      string
	RabbitQueue         string
	RabbitRoutingKey    string
	RabbitConsumerTag   string
	RabbitPublishPrefix string

	SSEHeartbeat time.Duration

	// NotificationPermission is the permission assumed until a page reports one.
	NotificationPermission string
	Location               *time.Location

	OTELServiceName string
	OTLPEndpoint    string
	OTLPInsecure    bool
}

func New() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		HTTPAddr:               ":8080",
		AppScope:               "/",
		CacheNamespace:         "examflow-cache-v1.0.1",
		Assets:                 append([]string(nil), DefaultAssets...),
		CacheMaxEntryBytes:     10 << 20,
		UpstreamTimeout:        30 * time.Second,
		RabbitExchange:         "notifications",
		RabbitQueue:            "examflow.schedule",
		RabbitRoutingKey:       "schedule.*",
		RabbitConsumerTag:      "examflow-worker",
		RabbitPublishPrefix:    "notification",
		SSEHeartbeat:           15 * time.Second,
		NotificationPermission: "default",
		Location:               time.Local,
		OTELServiceName:        "examflow-worker",
		OTLPInsecure:           true,
	}

	if addr := os.Getenv("HTTP_ADDR"); addr != "" {
		cfg.HTTPAddr = addr
	} else if port := os.Getenv("PORT"); port != "" {
		cfg.HTTPAddr = ":" + port
	}

	origin := os.Getenv("APP_ORIGIN")
	if origin == "" {
		origin = "http://localhost:3000"
	}
	u, err := ParseOrigin(origin)
	if err != nil {
		return nil, err
	}
	cfg.AppOrigin = u

	if v := os.Getenv("APP_SCOPE"); v != "" {
		cfg.AppScope = v
	}
	if v := os.Getenv("CACHE_NAMESPACE"); v != "" {
		cfg.CacheNamespace = v
	}
	if v := os.Getenv("ASSETS"); v != "" {
		cfg.Assets = splitList(v)
	}
	if v := os.Getenv("CACHE_MAX_ENTRY_BYTES"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			cfg.CacheMaxEntryBytes = n
		}
	}
	if v := os.Getenv("UPSTREAM_TIMEOUT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.UpstreamTimeout = time.Duration(n) * time.Second
		}
	}

	cfg.MySQLDSN = os.Getenv("MYSQL_DSN")
	cfg.SQLitePath = os.Getenv("SQLITE_PATH")
	cfg.RabbitMQURL = os.Getenv("RABBITMQ_URL")

	if v := os.Getenv("RABBITMQ_EXCHANGE"); v != "" {
		cfg.RabbitExchange = v
	}
	if v := os.Getenv("RABBITMQ_QUEUE"); v != "" {
		cfg.RabbitQueue = v
	}
	if v := os.Getenv("RABBITMQ_ROUTING_KEY"); v != "" {
		cfg.RabbitRoutingKey = v
	}
	if v := os.Getenv("RABBITMQ_CONSUMER_TAG"); v != "" {
		cfg.RabbitConsumerTag = v
	}
	if v := os.Getenv("RABBITMQ_PUBLISH_PREFIX"); v != "" {
		cfg.RabbitPublishPrefix = v
	}

	if v := os.Getenv("NOTIFICATION_PERMISSION"); v != "" {
		cfg.NotificationPermission = v
	}
	if v := os.Getenv("TIMEZONE"); v != "" {
		loc, err := time.LoadLocation(v)
		if err != nil {
			return nil, fmt.Errorf("load timezone %q: %w", v, err)
		}
		cfg.Location = loc
	}

	if v := os.Getenv("OTEL_SERVICE_NAME"); v != "" {
		cfg.OTELServiceName = v
	}
	if v := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"); v != "" {
		cfg.OTLPEndpoint = v
	}
	if v := os.Getenv("OTEL_EXPORTER_OTLP_INSECURE"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.OTLPInsecure = b
		}
	}

	if v := os.Getenv("SSE_HEARTBEAT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.SSEHeartbeat = time.Duration(n) * time.Second
		}
	}

	return cfg, nil
}

// ParseOrigin accepts an absolute http(s) URL and keeps only scheme and host.
func ParseOrigin(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse app origin: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("invalid app origin: %s", raw)
	}
	return &url.URL{Scheme: u.Scheme, Host: u.Host, Path: "/"}, nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
