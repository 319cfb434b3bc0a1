package emailsvc

import (
	"bytes"
	"errors"
	"log"
	"net/mail"
	"testing"
	"testing/fstest"

	"github.com/sendgrid/rest"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JithuMorrison/OneStop-Web-sub001/core"
)

type nopLogger struct{ errors []string }

func (l *nopLogger) Debug(string, ...interface{})       {}
func (l *nopLogger) Info(string, ...interface{})        {}
func (l *nopLogger) Warn(string, ...interface{})        {}
func (l *nopLogger) Error(msg string, _ ...interface{}) { l.errors = append(l.errors, msg) }
func (l *nopLogger) Fatal(string, ...interface{})       {}

func TestConsoleService(t *testing.T) {
	conf := core.NewTestConfig()
	logger := new(nopLogger)
	core.ParseEmailTemplates(fstest.MapFS{
		"email/_base.txt":       {Data: []byte(`{{template "content" .}} -- {{.AppName}}`)},
		"email/_base.gohtml":    {Data: []byte(`<p>{{template "content" .}}</p>`)},
		"email/greeting.txt":    {Data: []byte(`{{define "content"}}Hi {{.Data}}{{end}}`)},
		"email/greeting.gohtml": {Data: []byte(`{{define "content"}}Hi <b>{{.Data}}</b>{{end}}`)},
	}, "email", true, logger)
	require.Empty(t, logger.errors)

	to := []mail.Address{{Name: "Jane", Address: "jane@test.local"}}

	t.Run("output", func(t *testing.T) {
		buf := new(bytes.Buffer)
		svc := newConsoleService(log.New(buf, "", 0), logger, conf)
		sent := svc.sendMessage(&core.EmailMessage{To: to, Subject: "Hello", TemplateName: "greeting", TemplateData: "Jane"})
		require.True(t, sent)

		out := buf.String()
		assert.Contains(t, out, "From: \"OneStop\" <noreply@test.local>")
		assert.Contains(t, out, "Subject: [OneStop] Hello")
		assert.Contains(t, out, "To: \"Jane\" <jane@test.local>")
		assert.Contains(t, out, "Hi Jane -- OneStop")
		assert.Contains(t, out, "<p>Hi <b>Jane</b></p>")
	})

	tests := []struct {
		name     string
		msg      core.EmailMessage
		wantSent bool
	}{
		{name: "plain body", msg: core.EmailMessage{To: to, Subject: "s", BodyStr: "body"}, wantSent: true},
		{name: "template", msg: core.EmailMessage{To: to, Subject: "s", TemplateName: "greeting", TemplateData: "x"}, wantSent: true},
		{name: "no recipients", msg: core.EmailMessage{Subject: "s", BodyStr: "body"}},
		{name: "no content", msg: core.EmailMessage{To: to, Subject: "s"}},
		{name: "unknown template", msg: core.EmailMessage{To: to, Subject: "s", TemplateName: "nope"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mock := NewConsoleServiceMock(logger, conf)
			msg := tc.msg
			mock.SendMessages(&msg)
			if tc.wantSent {
				require.Len(t, mock.SentMessages(), 1)
				assert.NotEmpty(t, mock.SentMessages()[0].TextContent)
			} else {
				assert.Empty(t, mock.SentMessages())
			}
		})
	}
}

func TestSendgridPrepare(t *testing.T) {
	conf := core.NewTestConfig()
	svc := NewSendgridService(new(nopLogger), conf).(*sendgridService)

	m := svc.prepare(core.EmailMessage{
		To:          []mail.Address{{Address: "a@test.local"}},
		Cc:          []mail.Address{{Address: "b@test.local"}},
		Subject:     "Hello",
		TextContent: "text",
	})
	require.Len(t, m.Personalizations, 1)
	assert.Equal(t, "[OneStop] Hello", m.Personalizations[0].Subject)
	assert.Len(t, m.Personalizations[0].To, 1)
	assert.Len(t, m.Personalizations[0].CC, 1)
	assert.Empty(t, m.Personalizations[0].BCC)
	assert.Len(t, m.Content, 1)
	assert.Empty(t, m.Categories)
	assert.Equal(t, "noreply@test.local", m.From.Address)
}

type fakeSender struct {
	sent []*sgmail.SGMailV3
	res  *rest.Response
	err  error
}

func (f *fakeSender) Send(m *sgmail.SGMailV3) (*rest.Response, error) {
	f.sent = append(f.sent, m)
	return f.res, f.err
}

func TestSendgridDeliver(t *testing.T) {
	conf := core.NewTestConfig()
	to := []mail.Address{{Address: "a@test.local"}}

	tests := []struct {
		name       string
		msg        core.EmailMessage
		res        *rest.Response
		err        error
		wantSent   bool
		wantErrors int
	}{
		{name: "accepted", msg: core.EmailMessage{To: to, Subject: "s", BodyStr: "hi"}, res: &rest.Response{StatusCode: 202}, wantSent: true},
		{name: "rejected", msg: core.EmailMessage{To: to, Subject: "s", BodyStr: "hi"}, res: &rest.Response{StatusCode: 400, Body: "bad"}, wantSent: true, wantErrors: 1},
		{name: "transport error", msg: core.EmailMessage{To: to, Subject: "s", BodyStr: "hi"}, err: errors.New("down"), wantSent: true, wantErrors: 1},
		{name: "no recipients", msg: core.EmailMessage{Subject: "s", BodyStr: "hi"}},
		{name: "no content", msg: core.EmailMessage{To: to, Subject: "s"}},
		{name: "unknown template", msg: core.EmailMessage{To: to, Subject: "s", TemplateName: "nope"}, wantErrors: 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			logger := new(nopLogger)
			sender := &fakeSender{res: tc.res, err: tc.err}
			svc := NewSendgridService(logger, conf).(*sendgridService)
			svc.client = sender

			msg := tc.msg
			svc.deliver(&msg)

			assert.Equal(t, tc.wantSent, len(sender.sent) == 1)
			assert.Len(t, logger.errors, tc.wantErrors)
		})
	}
}
