package config

import "time"

const (
	// DefaultConfigPath is used when --config is not provided.
	DefaultConfigPath = "config.yml"
	defaultPort       = 3000
	defaultEnv        = "development"
	defaultSiteName   = "Stillhouse"
	defaultSiteURL    = "http://localhost:3000"

	defaultShopifyAPIVersion = "2024-10"
	defaultSanityDataset     = "production"
	defaultSanityAPIVersion  = "2024-01-01"
	defaultKlaviyoRevision   = "2024-10-15"

	defaultUpstreamTimeout = 10 * time.Second
	defaultSourceTimeout   = 5 * time.Second
	defaultCatalogTTL      = 60 * time.Second
	defaultHTTPCacheTTL    = 60 * time.Second
	defaultFormRateLimit   = 5
	defaultSMTPPort        = 587
)

// Environment variables that override the YAML file.
const (
	EnvAppEnv            = "APP_ENV"
	EnvPort              = "PORT"
	EnvSiteURL           = "SITE_URL"
	EnvRedisURL          = "REDIS_URL"
	EnvSentryDSN         = "SENTRY_DSN"
	EnvShopifyDomain     = "SHOPIFY_STORE_DOMAIN"
	EnvShopifyToken      = "SHOPIFY_STOREFRONT_ACCESS_TOKEN"
	EnvShopifyAPIVersion = "SHOPIFY_API_VERSION"
	EnvShopifyWebhookKey = "SHOPIFY_WEBHOOK_SECRET"
	EnvSanityProjectID   = "SANITY_PROJECT_ID"
	EnvSanityDataset     = "SANITY_DATASET"
	EnvSanityToken       = "SANITY_API_TOKEN"
	EnvSanityAPIVersion  = "SANITY_API_VERSION"
	EnvKlaviyoAPIKey     = "KLAVIYO_API_KEY"
	EnvKlaviyoListID     = "KLAVIYO_LIST_ID"
	EnvImagesZone        = "CLOUDFLARE_IMAGES_ZONE"
	EnvMailPass          = "SMTP_PASSWORD"
	EnvResendKey         = "RESEND_API_KEY"
	EnvContactRecipient  = "CONTACT_RECIPIENT"
)
