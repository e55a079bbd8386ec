package mail

import (
	"bytes"
	"context"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"
	"time"
)

const contactHTMLTpl = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta http-equiv="Content-Type" content="text/html; charset=UTF-8" />
</head>
<body style="background-color:#f6f3ee;margin:0 auto;font-family:Georgia,'Times New Roman',serif;padding:.5rem">
  <table align="center" width="100%" role="presentation" cellspacing="0" cellpadding="0" border="0" style="max-width:100%;border:1px solid #1d3b2a;border-radius:.25rem;margin:40px auto;padding:20px;width:550px;background:#fff">
    <tbody>
      <tr><td>
        <h1 style="color:#1d3b2a;font-size:18px;font-weight:400;margin:0 0 24px">New enquiry via {{.SiteName}}</h1>
        <p style="font-size:14px;line-height:24px;margin:8px 0"><strong>From:</strong> {{.Name}} &lt;{{.Email}}&gt;</p>
        {{if .Phone}}<p style="font-size:14px;line-height:24px;margin:8px 0"><strong>Phone:</strong> {{.Phone}}</p>{{end}}
        {{if .Subject}}<p style="font-size:14px;line-height:24px;margin:8px 0"><strong>Subject:</strong> {{.Subject}}</p>{{end}}
        <table align="center" width="100%" role="presentation" border="0" cellpadding="0" cellspacing="0" style="background-color:#f3f4f6;border-radius:.5rem;padding:0 1rem;margin-top:16px">
          <tbody><tr><td><p style="font-size:13px;line-height:22px;margin:16px 0;color:#333;white-space:pre-wrap">{{.Message}}</p></td></tr></tbody>
        </table>
        <hr style="width:100%;border:none;border-top:1px solid #eaeaea;margin:26px 0" />
        <p style="font-size:10px;line-height:20px;margin:0;text-align:center;color:#9ca3af">IP {{.IP}} &middot; {{.UserAgent}}<br />&copy;{{year}} {{.SiteName}}</p>
      </td></tr>
    </tbody>
  </table>
</body>
</html>`

const contactTextTpl = `New enquiry via {{.SiteName}}

From: {{.Name}} <{{.Email}}>
{{if .Phone}}Phone: {{.Phone}}
{{end}}{{if .Subject}}Subject: {{.Subject}}
{{end}}
{{.Message}}

--
IP {{.IP}} / {{.UserAgent}}
`

// ContactData is a contact form submission.
type ContactData struct {
	SiteName  string
	Name      string
	Email     string
	Phone     string
	Subject   string
	Message   string
	IP        string
	UserAgent string
}

var funcs = map[string]interface{}{
	"year": func() int {
		return time.Now().Year()
	},
}

var (
	contactHTML = htmltemplate.Must(htmltemplate.New("contact.html").Funcs(funcs).Parse(contactHTMLTpl))
	contactText = texttemplate.Must(texttemplate.New("contact.txt").Funcs(funcs).Parse(contactTextTpl))
)

func render(execute func(*bytes.Buffer) error) (string, error) {
	var buf bytes.Buffer
	if err := execute(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderContact returns the HTML and plain text bodies for a submission.
func RenderContact(data ContactData) (html, text string, err error) {
	data.SiteName = siteName(data)
	if strings.TrimSpace(data.IP) == "" {
		data.IP = "-"
	}
	if strings.TrimSpace(data.UserAgent) == "" {
		data.UserAgent = "-"
	}
	html, err = render(func(b *bytes.Buffer) error { return contactHTML.Execute(b, data) })
	if err != nil {
		return "", "", err
	}
	text, err = render(func(b *bytes.Buffer) error { return contactText.Execute(b, data) })
	if err != nil {
		return "", "", err
	}
	return html, text, nil
}

// SendContact forwards a contact form submission to the site inbox, with
// Reply-To set to the sender.
func (s *Sender) SendContact(ctx context.Context, to string, data ContactData) error {
	html, text, err := RenderContact(data)
	if err != nil {
		return err
	}
	subject := "[" + siteName(data) + "] Contact form"
	if data.Subject != "" {
		subject += ": " + data.Subject
	}
	return s.Send(ctx, Message{
		To:      []string{to},
		ReplyTo: data.Email,
		Subject: subject,
		HTML:    html,
		Text:    text,
	})
}

func siteName(data ContactData) string {
	if strings.TrimSpace(data.SiteName) == "" {
		return "Stillhouse"
	}
	return data.SiteName
}
