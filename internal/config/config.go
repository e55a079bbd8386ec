package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	neturl "net/url"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Load reads the YAML file at configPath, overlays environment variables and
// validates the result. A missing file is only an error when the path was set
// explicitly; the default path is allowed to be absent so the service can run
// from the environment alone.
func Load(configPath string) (*AppConfig, error) {
	path := strings.TrimSpace(configPath)
	explicit := path != "" && path != DefaultConfigPath
	if path == "" {
		path = DefaultConfigPath
	}

	raw := rawAppConfig{}
	content, err := os.ReadFile(path)
	switch {
	case err == nil:
		decoder := yaml.NewDecoder(bytes.NewReader(content))
		decoder.KnownFields(true)
		if err := decoder.Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("parse config file %q: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
	default:
		return nil, fmt.Errorf("read config file %q: %w", path, err)
	}

	cfg := defaultAppConfig()
	if err := applyRawAppConfig(&cfg, raw); err != nil {
		return nil, fmt.Errorf("config %q: %w", path, err)
	}
	if err := applyEnv(&cfg, os.LookupEnv); err != nil {
		return nil, err
	}
	normalize(&cfg)
	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func defaultAppConfig() AppConfig {
	return AppConfig{
		Port: defaultPort,
		Env:  defaultEnv,
		Site: SiteConfig{
			Name: defaultSiteName,
			URL:  defaultSiteURL,
		},
		Shopify: ShopifyConfig{
			APIVersion: defaultShopifyAPIVersion,
			Timeout:    defaultUpstreamTimeout,
		},
		Sanity: SanityConfig{
			Dataset:    defaultSanityDataset,
			APIVersion: defaultSanityAPIVersion,
			UseCDN:     true,
			Timeout:    defaultUpstreamTimeout,
		},
		Klaviyo: KlaviyoConfig{Revision: defaultKlaviyoRevision},
		Mail:    MailConfig{Port: defaultSMTPPort},
		Search: SearchConfig{
			SourceTimeout: defaultSourceTimeout,
			CatalogTTL:    defaultCatalogTTL,
		},
		Images:        ImagesConfig{Quality: 80},
		HTTPCache:     HTTPCacheConfig{Enable: true, TTL: defaultHTTPCacheTTL},
		FormRateLimit: defaultFormRateLimit,
	}
}

func applyRawAppConfig(cfg *AppConfig, raw rawAppConfig) error {
	if raw.Port != 0 {
		cfg.Port = raw.Port
	}
	setString(&cfg.Env, raw.Env)
	if raw.AllowedOrigins != nil {
		cfg.AllowedOrigins = raw.AllowedOrigins
	}
	setString(&cfg.RedisURL, raw.RedisURL)
	setString(&cfg.SentryDSN, raw.SentryDSN)

	setString(&cfg.Site.Name, raw.Site.Name)
	setString(&cfg.Site.URL, raw.Site.URL)
	setString(&cfg.Site.Description, raw.Site.Description)
	setString(&cfg.Site.Logo, raw.Site.Logo)
	if raw.Site.SameAs != nil {
		cfg.Site.SameAs = raw.Site.SameAs
	}

	setString(&cfg.Shopify.StoreDomain, raw.Shopify.StoreDomain)
	setString(&cfg.Shopify.AccessToken, raw.Shopify.AccessToken)
	setString(&cfg.Shopify.APIVersion, raw.Shopify.APIVersion)
	setString(&cfg.Shopify.WebhookSecret, raw.Shopify.WebhookKey)
	if err := setDuration(&cfg.Shopify.Timeout, raw.Shopify.Timeout, "shopify.timeout"); err != nil {
		return err
	}

	setString(&cfg.Sanity.ProjectID, raw.Sanity.ProjectID)
	setString(&cfg.Sanity.Dataset, raw.Sanity.Dataset)
	setString(&cfg.Sanity.APIVersion, raw.Sanity.APIVersion)
	setString(&cfg.Sanity.Token, raw.Sanity.Token)
	if raw.Sanity.UseCDN != nil {
		cfg.Sanity.UseCDN = *raw.Sanity.UseCDN
	}
	if err := setDuration(&cfg.Sanity.Timeout, raw.Sanity.Timeout, "sanity.timeout"); err != nil {
		return err
	}

	setString(&cfg.Klaviyo.APIKey, raw.Klaviyo.APIKey)
	setString(&cfg.Klaviyo.ListID, raw.Klaviyo.ListID)
	setString(&cfg.Klaviyo.Revision, raw.Klaviyo.Revision)

	if raw.Mail.Enable != nil {
		cfg.Mail.Enable = *raw.Mail.Enable
	}
	setString(&cfg.Mail.Host, raw.Mail.Host)
	if raw.Mail.Port != 0 {
		cfg.Mail.Port = raw.Mail.Port
	}
	setString(&cfg.Mail.User, raw.Mail.User)
	setString(&cfg.Mail.Pass, raw.Mail.Pass)
	setString(&cfg.Mail.From, raw.Mail.From)
	setString(&cfg.Mail.To, raw.Mail.To)
	if raw.Mail.UseResend != nil {
		cfg.Mail.UseResend = *raw.Mail.UseResend
	}
	setString(&cfg.Mail.ResendKey, raw.Mail.ResendKey)

	if err := setDuration(&cfg.Search.SourceTimeout, raw.Search.SourceTimeout, "search.source_timeout"); err != nil {
		return err
	}
	if err := setDuration(&cfg.Search.CatalogTTL, raw.Search.CatalogTTL, "search.catalog_ttl"); err != nil {
		return err
	}

	setString(&cfg.Images.Zone, raw.Images.Zone)
	if raw.Images.Quality != 0 {
		cfg.Images.Quality = raw.Images.Quality
	}

	if raw.HTTPCache.Enable != nil {
		cfg.HTTPCache.Enable = *raw.HTTPCache.Enable
	}
	if err := setDuration(&cfg.HTTPCache.TTL, raw.HTTPCache.TTL, "http_cache.ttl"); err != nil {
		return err
	}
	if raw.FormRateLimit != nil {
		cfg.FormRateLimit = *raw.FormRateLimit
	}
	return nil
}

func validate(cfg *AppConfig) error {
	if cfg.Port < 1 || cfg.Port > 65535 {
		return fmt.Errorf("invalid port %d, expected 1-65535", cfg.Port)
	}
	u, err := neturl.Parse(cfg.Site.URL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid site.url %q, expected absolute URL", cfg.Site.URL)
	}
	if cfg.Search.SourceTimeout <= 0 {
		return fmt.Errorf("invalid search.source_timeout %s, expected > 0", cfg.Search.SourceTimeout)
	}
	if cfg.Search.CatalogTTL < 0 {
		return fmt.Errorf("invalid search.catalog_ttl %s, expected >= 0", cfg.Search.CatalogTTL)
	}
	if cfg.Images.Quality < 1 || cfg.Images.Quality > 100 {
		return fmt.Errorf("invalid images.quality %d, expected 1-100", cfg.Images.Quality)
	}
	if cfg.FormRateLimit < 0 {
		return fmt.Errorf("invalid form_rate_limit %d, expected >= 0", cfg.FormRateLimit)
	}
	return nil
}

func setString(dst *string, v string) {
	if v = strings.TrimSpace(v); v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, v, field string) error {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", field, v, err)
	}
	*dst = d
	return nil
}
