package mail

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/smtp"
	"strings"
	"testing"

	"github.com/stillhouse/site/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigured(t *testing.T) {
	assert.False(t, New(Config{Host: "smtp.example"}).Configured())
	assert.True(t, New(Config{Enable: true, Host: "smtp.example"}).Configured())
	assert.True(t, New(Config{Enable: true, UseResend: true, ResendKey: "re_x"}).Configured())
	assert.False(t, New(Config{Enable: true, UseResend: true}).Configured())

	err := New(Config{}).Send(context.Background(), Message{To: []string{"a@b.c"}})
	assert.ErrorIs(t, err, ErrDisabled)
}

func TestBuildMailConfig(t *testing.T) {
	mc := BuildMailConfig(config.MailConfig{Enable: true, Host: "smtp.example", Port: 2525, UseResend: true})
	assert.False(t, mc.UseResend, "resend needs a key")
	assert.Equal(t, 2525, mc.Port)
}

func TestSendContact_SMTP(t *testing.T) {
	s := New(Config{Enable: true, Host: "smtp.example", User: "bot@stillhouse.example", Pass: "pw"})
	var gotAddr, gotFrom string
	var gotTo []string
	var gotMsg []byte
	s.sendMail = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotFrom, gotTo, gotMsg = addr, from, to, msg
		return nil
	}

	err := s.SendContact(context.Background(), "hello@stillhouse.example", ContactData{
		SiteName: "Stillhouse",
		Name:     "Ada <script>",
		Email:    "ada@example.com",
		Subject:  "Trade enquiry",
		Message:  "Do you ship to Leeds?",
	})
	require.NoError(t, err)
	assert.Equal(t, "smtp.example:587", gotAddr)
	assert.Equal(t, "bot@stillhouse.example", gotFrom)
	assert.Equal(t, []string{"hello@stillhouse.example"}, gotTo)

	raw := string(gotMsg)
	assert.Contains(t, raw, "Reply-To: ada@example.com")
	assert.Contains(t, raw, "Subject: [Stillhouse] Contact form: Trade enquiry")
	assert.Contains(t, raw, "multipart/alternative")
	assert.Contains(t, raw, "text/plain; charset=UTF-8")
	assert.Contains(t, raw, "Ada &lt;script&gt;", "html part is escaped")
	assert.Contains(t, raw, "Do you ship to Leeds?")
}

func TestSend_Resend(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer re_test", r.Header.Get("Authorization"))
		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "shop@stillhouse.example", body["from"])
		assert.Equal(t, "ada@example.com", body["reply_to"])
		if strings.Contains(body["subject"].(string), "fail") {
			w.WriteHeader(http.StatusUnprocessableEntity)
			_, _ = w.Write([]byte(`{"message":"invalid from"}`))
			return
		}
		_, _ = w.Write([]byte(`{"id":"1"}`))
	}))
	defer srv.Close()

	s := New(Config{Enable: true, From: "shop@stillhouse.example", UseResend: true, ResendKey: "re_test", ResendEndpoint: srv.URL})
	msg := Message{To: []string{"hello@stillhouse.example"}, ReplyTo: "ada@example.com", Subject: "hi", HTML: "<p>hi</p>"}
	require.NoError(t, s.Send(context.Background(), msg))

	msg.Subject = "fail"
	err := s.Send(context.Background(), msg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid from")
}
