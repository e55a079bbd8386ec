package config

import (
	"fmt"
	"strings"
)

func normalize(cfg *AppConfig) {
	cfg.Env = normalizeEnv(cfg.Env)
	cfg.AllowedOrigins = normalizeOrigins(cfg.AllowedOrigins)
	cfg.Site.URL = strings.TrimRight(strings.TrimSpace(cfg.Site.URL), "/")
	cfg.Shopify.StoreDomain = normalizeHost(cfg.Shopify.StoreDomain)
	cfg.Images.Zone = normalizeHost(cfg.Images.Zone)
	cfg.Sanity.APIVersion = strings.TrimPrefix(cfg.Sanity.APIVersion, "v")
	if cfg.Mail.To == "" {
		cfg.Mail.To = cfg.Mail.From
	}
}

func normalizeOrigins(origins []string) []string {
	out := make([]string, 0, len(origins))
	for _, origin := range origins {
		trimmed := strings.TrimSpace(origin)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(env string) string {
	trimmed := strings.ToLower(strings.TrimSpace(env))
	switch trimmed {
	case "":
		return defaultEnv
	case "dev":
		return "development"
	case "prod":
		return "production"
	}
	return trimmed
}

// normalizeHost strips scheme and trailing slashes so "https://shop.example.com/"
// and "shop.example.com" are equivalent.
func normalizeHost(raw string) string {
	host := strings.TrimSpace(raw)
	host = strings.TrimPrefix(host, "https://")
	host = strings.TrimPrefix(host, "http://")
	return strings.TrimRight(host, "/")
}

func (c *AppConfig) IsDev() bool {
	return strings.EqualFold(c.Env, defaultEnv)
}

// Addr returns the listen address.
func (c *AppConfig) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// AbsoluteURL joins path onto the public site URL.
func (c *AppConfig) AbsoluteURL(path string) string {
	if path == "" || path == "/" {
		return c.Site.URL + "/"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return c.Site.URL + path
}
