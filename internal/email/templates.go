package email

import (
	"bytes"
	"html/template"
)

var submissionRequestTmpl = template.Must(template.New("submission_request").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2>Cadet Data Submission Request</h2>
  <p>Dear {{.InstituteName}},</p>
  <p>{{.Description}}</p>
  <p>Please fill in the attached spreadsheet and upload it using the secure link below.</p>
  <p style="margin: 24px 0;">
    <a href="{{.Link}}" style="background: #1a73e8; color: #fff; padding: 12px 24px; text-decoration: none; border-radius: 4px;">
      Submit Cadet Data
    </a>
  </p>
  <p>This link expires on <strong>{{.ExpiryDate}}</strong>.</p>
  <p>Regards,<br/>Recruitment Team</p>
</div>
`))

var passwordResetTmpl = template.Must(template.New("password_reset").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2>Password Reset</h2>
  <p>Hello {{.FirstName}},</p>
  <p>A password reset was requested for your account. Use the link below to set a new password. The link expires in one hour.</p>
  <p style="margin: 24px 0;">
    <a href="{{.Link}}" style="background: #1a73e8; color: #fff; padding: 12px 24px; text-decoration: none; border-radius: 4px;">
      Reset Password
    </a>
  </p>
  <p>If you did not request this, you can ignore this email.</p>
</div>
`))

type SubmissionRequestData struct {
	InstituteName string
	Description   string
	Link          string
	ExpiryDate    string
}

func RenderSubmissionRequest(data SubmissionRequestData) (string, error) {
	var buf bytes.Buffer
	if err := submissionRequestTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

type PasswordResetData struct {
	FirstName string
	Link      string
}

func RenderPasswordReset(data PasswordResetData) (string, error) {
	var buf bytes.Buffer
	if err := passwordResetTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
