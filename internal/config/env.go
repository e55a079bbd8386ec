package config

import (
	"fmt"
	"strconv"
	"strings"
)

// LookupFunc matches os.LookupEnv.
type LookupFunc func(key string) (string, bool)

func applyEnv(cfg *AppConfig, lookup LookupFunc) error {
	get := func(key string) string {
		v, ok := lookup(key)
		if !ok {
			return ""
		}
		return strings.TrimSpace(v)
	}

	setString(&cfg.Env, get(EnvAppEnv))
	if v := get(EnvPort); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvPort, v, err)
		}
		cfg.Port = port
	}
	setString(&cfg.Site.URL, get(EnvSiteURL))
	setString(&cfg.RedisURL, get(EnvRedisURL))
	setString(&cfg.SentryDSN, get(EnvSentryDSN))

	setString(&cfg.Shopify.StoreDomain, get(EnvShopifyDomain))
	setString(&cfg.Shopify.AccessToken, get(EnvShopifyToken))
	setString(&cfg.Shopify.APIVersion, get(EnvShopifyAPIVersion))
	setString(&cfg.Shopify.WebhookSecret, get(EnvShopifyWebhookKey))

	setString(&cfg.Sanity.ProjectID, get(EnvSanityProjectID))
	setString(&cfg.Sanity.Dataset, get(EnvSanityDataset))
	setString(&cfg.Sanity.Token, get(EnvSanityToken))
	setString(&cfg.Sanity.APIVersion, get(EnvSanityAPIVersion))

	setString(&cfg.Klaviyo.APIKey, get(EnvKlaviyoAPIKey))
	setString(&cfg.Klaviyo.ListID, get(EnvKlaviyoListID))

	setString(&cfg.Images.Zone, get(EnvImagesZone))
	setString(&cfg.Mail.Pass, get(EnvMailPass))
	if v := get(EnvResendKey); v != "" {
		cfg.Mail.ResendKey = v
		cfg.Mail.UseResend = true
	}
	setString(&cfg.Mail.To, get(EnvContactRecipient))
	return nil
}
