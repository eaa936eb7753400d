package mailer

import (
	"bytes"
	"fmt"
	"html/template"
)

const VerificationSubject = "Account Verification"

var verificationTmpl = template.Must(template.New("verification").Parse(`<html>
<body style="font-family: Arial, sans-serif;">
  <h2>Welcome to FishMaster, {{.Name}}!</h2>
  <p>Please enter the verification code below to activate your account:</p>
  <p style="font-size: 24px; font-weight: bold; letter-spacing: 4px;">{{.Code}}</p>
  <p>The code expires in {{.ValidFor}}.</p>
  {{if .DashboardURL}}<p>Once verified you can log in at <a href="{{.DashboardURL}}">{{.DashboardURL}}</a>.</p>{{end}}
</body>
</html>`))

type VerificationData struct {
	Name         string
	Code         string
	ValidFor     string
	DashboardURL string
}

func VerificationEmail(to string, data VerificationData) (Message, error) {
	var buf bytes.Buffer
	if err := verificationTmpl.Execute(&buf, data); err != nil {
		return Message{}, fmt.Errorf("render verification email: %w", err)
	}
	return Message{
		To:       to,
		Subject:  VerificationSubject,
		HTMLBody: buf.String(),
	}, nil
}
