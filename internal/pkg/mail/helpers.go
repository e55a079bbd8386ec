package mail

import (
	"github.com/stillhouse/site/internal/config"
)

// BuildMailConfig constructs a mail.Config from the application config.
func BuildMailConfig(cfg config.MailConfig) Config {
	return Config{
		Enable:    cfg.Enable,
		Host:      cfg.Host,
		Port:      cfg.Port,
		User:      cfg.User,
		Pass:      cfg.Pass,
		From:      cfg.From,
		UseResend: cfg.UseResend && cfg.ResendKey != "",
		ResendKey: cfg.ResendKey,
	}
}
