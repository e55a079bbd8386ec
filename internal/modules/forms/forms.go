// Package forms handles the newsletter and contact form submissions.
package forms

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/stillhouse/site/internal/pkg/mail"
	"github.com/stillhouse/site/internal/pkg/response"
	"go.uber.org/zap"
)

// Subscriber adds an address to the newsletter list.
type Subscriber interface {
	Configured() bool
	Subscribe(ctx context.Context, email, firstName, source string) error
}

// Mailer forwards a contact submission.
type Mailer interface {
	Configured() bool
	SendContact(ctx context.Context, to string, data mail.ContactData) error
}

type NewsletterDTO struct {
	Email     string `json:"email" binding:"required,email,max=254"`
	FirstName string `json:"firstName" binding:"max=100"`
	Source    string `json:"source" binding:"max=64"`
	// Website is a honeypot; people never see the field.
	Website string `json:"website"`
}

type ContactDTO struct {
	Name    string `json:"name" binding:"required,max=100"`
	Email   string `json:"email" binding:"required,email,max=254"`
	Phone   string `json:"phone" binding:"max=40"`
	Subject string `json:"subject" binding:"max=200"`
	Message string `json:"message" binding:"required,min=10,max=5000"`
	Website string `json:"website"`
}

type result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type Handler struct {
	subscriber Subscriber
	mailer     Mailer
	recipient  string
	siteName   string
	logger     *zap.Logger
}

func NewHandler(subscriber Subscriber, mailer Mailer, recipient, siteName string, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		subscriber: subscriber,
		mailer:     mailer,
		recipient:  recipient,
		siteName:   siteName,
		logger:     logger.Named("FormsHandler"),
	}
}

// RegisterRoutes mounts both forms behind the given middlewares (rate limit,
// duplicate submission guard).
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, guards ...gin.HandlerFunc) {
	g := rg.Group("", guards...)
	g.POST("/newsletter", h.newsletter)
	g.POST("/contact", h.contact)
}

var fieldMessages = map[string]string{
	"required": "is required",
	"email":    "must be a valid email address",
	"min":      "is too short",
	"max":      "is too long",
}

// bindErrors turns binding failures into per-field messages keyed by JSON name.
func bindErrors(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"body": "must be a JSON object"}
	}
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		name := jsonName(fe.Field())
		msg, ok := fieldMessages[fe.Tag()]
		if !ok {
			msg = "is invalid"
		}
		out[name] = msg
	}
	return out
}

func jsonName(field string) string {
	if field == "" {
		return field
	}
	return strings.ToLower(field[:1]) + field[1:]
}

func (h *Handler) newsletter(c *gin.Context) {
	var dto NewsletterDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.ValidationFailed(c, bindErrors(err))
		return
	}
	if dto.Website != "" {
		h.logger.Info("newsletter honeypot tripped", zap.String("ip", c.ClientIP()))
		c.JSON(http.StatusOK, result{Success: true, Message: "Thanks for subscribing"})
		return
	}
	if h.subscriber == nil || !h.subscriber.Configured() {
		response.ServiceUnavailable(c, "Newsletter sign-up is not available")
		return
	}

	source := dto.Source
	if source == "" {
		source = "website"
	}
	email := strings.ToLower(strings.TrimSpace(dto.Email))
	if err := h.subscriber.Subscribe(c.Request.Context(), email, strings.TrimSpace(dto.FirstName), source); err != nil {
		h.logger.Error("newsletter subscribe failed", zap.Error(err))
		response.BadGateway(c, "We couldn't subscribe you right now, please try again later")
		return
	}
	c.JSON(http.StatusOK, result{Success: true, Message: "Thanks for subscribing"})
}

func (h *Handler) contact(c *gin.Context) {
	var dto ContactDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.ValidationFailed(c, bindErrors(err))
		return
	}
	if dto.Website != "" {
		h.logger.Info("contact honeypot tripped", zap.String("ip", c.ClientIP()))
		c.JSON(http.StatusOK, result{Success: true, Message: "Thanks, we'll be in touch"})
		return
	}
	if h.mailer == nil || !h.mailer.Configured() || h.recipient == "" {
		response.ServiceUnavailable(c, "The contact form is not available")
		return
	}

	err := h.mailer.SendContact(c.Request.Context(), h.recipient, mail.ContactData{
		SiteName:  h.siteName,
		Name:      strings.TrimSpace(dto.Name),
		Email:     strings.TrimSpace(dto.Email),
		Phone:     strings.TrimSpace(dto.Phone),
		Subject:   strings.TrimSpace(dto.Subject),
		Message:   strings.TrimSpace(dto.Message),
		IP:        c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	})
	if err != nil {
		h.logger.Error("contact mail failed", zap.Error(err))
		response.BadGateway(c, "We couldn't send your message right now, please try again later")
		return
	}
	c.JSON(http.StatusOK, result{Success: true, Message: "Thanks, we'll be in touch"})
}
