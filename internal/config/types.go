package config

import "time"

// AppConfig holds runtime startup configuration loaded from YAML and the environment.
type AppConfig struct {
	Port           int
	Env            string
	AllowedOrigins []string
	RedisURL       string
	SentryDSN      string
	Site           SiteConfig
	Shopify        ShopifyConfig
	Sanity         SanityConfig
	Klaviyo        KlaviyoConfig
	Mail           MailConfig
	Search         SearchConfig
	Images         ImagesConfig
	HTTPCache      HTTPCacheConfig
	FormRateLimit  int
}

type SiteConfig struct {
	Name        string
	URL         string
	Description string
	Logo        string
	SameAs      []string
}

type ShopifyConfig struct {
	StoreDomain string
	AccessToken string
	APIVersion  string
	Timeout     time.Duration

	// WebhookSecret verifies X-Shopify-Hmac-Sha256 on product webhooks.
	WebhookSecret string
}

// Configured reports whether both Storefront credentials are present.
func (c ShopifyConfig) Configured() bool {
	return c.StoreDomain != "" && c.AccessToken != ""
}

type SanityConfig struct {
	ProjectID  string
	Dataset    string
	APIVersion string
	Token      string
	UseCDN     bool
	Timeout    time.Duration
}

func (c SanityConfig) Configured() bool {
	return c.ProjectID != "" && c.Dataset != ""
}

type KlaviyoConfig struct {
	APIKey   string
	ListID   string
	Revision string
}

func (c KlaviyoConfig) Configured() bool {
	return c.APIKey != "" && c.ListID != ""
}

type MailConfig struct {
	Enable    bool
	Host      string
	Port      int
	User      string
	Pass      string
	From      string
	To        string
	UseResend bool
	ResendKey string
}

type SearchConfig struct {
	SourceTimeout time.Duration
	CatalogTTL    time.Duration
}

type ImagesConfig struct {
	Zone    string
	Quality int
}

type HTTPCacheConfig struct {
	Enable bool
	TTL    time.Duration
}

type rawAppConfig struct {
	Port           int              `yaml:"port"`
	Env            string           `yaml:"env"`
	AllowedOrigins []string         `yaml:"allowed_origins"`
	RedisURL       string           `yaml:"redis_url"`
	SentryDSN      string           `yaml:"sentry_dsn"`
	Site           rawSiteConfig    `yaml:"site"`
	Shopify        rawShopifyConfig `yaml:"shopify"`
	Sanity         rawSanityConfig  `yaml:"sanity"`
	Klaviyo        rawKlaviyoConfig `yaml:"klaviyo"`
	Mail           rawMailConfig    `yaml:"mail"`
	Search         rawSearchConfig  `yaml:"search"`
	Images         rawImagesConfig  `yaml:"images"`
	HTTPCache      rawHTTPCache     `yaml:"http_cache"`
	FormRateLimit  *int             `yaml:"form_rate_limit"`
}

type rawSiteConfig struct {
	Name        string   `yaml:"name"`
	URL         string   `yaml:"url"`
	Description string   `yaml:"description"`
	Logo        string   `yaml:"logo"`
	SameAs      []string `yaml:"same_as"`
}

type rawShopifyConfig struct {
	StoreDomain string `yaml:"store_domain"`
	AccessToken string `yaml:"storefront_access_token"`
	APIVersion  string `yaml:"api_version"`
	Timeout     string `yaml:"timeout"`
	WebhookKey  string `yaml:"webhook_secret"`
}

type rawSanityConfig struct {
	ProjectID  string `yaml:"project_id"`
	Dataset    string `yaml:"dataset"`
	APIVersion string `yaml:"api_version"`
	Token      string `yaml:"token"`
	UseCDN     *bool  `yaml:"use_cdn"`
	Timeout    string `yaml:"timeout"`
}

type rawKlaviyoConfig struct {
	APIKey   string `yaml:"api_key"`
	ListID   string `yaml:"list_id"`
	Revision string `yaml:"revision"`
}

type rawMailConfig struct {
	Enable    *bool  `yaml:"enable"`
	Host      string `yaml:"host"`
	Port      int    `yaml:"port"`
	User      string `yaml:"user"`
	Pass      string `yaml:"pass"`
	From      string `yaml:"from"`
	To        string `yaml:"to"`
	UseResend *bool  `yaml:"use_resend"`
	ResendKey string `yaml:"resend_key"`
}

type rawSearchConfig struct {
	SourceTimeout string `yaml:"source_timeout"`
	CatalogTTL    string `yaml:"catalog_ttl"`
}

type rawImagesConfig struct {
	Zone    string `yaml:"zone"`
	Quality int    `yaml:"quality"`
}

type rawHTTPCache struct {
	Enable *bool  `yaml:"enable"`
	TTL    string `yaml:"ttl"`
}
