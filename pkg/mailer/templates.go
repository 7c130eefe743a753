package mailer

import (
	"bytes"
	"embed"
	htmpl "html/template"
	texttpl "text/template"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var (
	confirmationText = texttpl.Must(texttpl.ParseFS(templateFS, "templates/confirmation_code.txt.tmpl"))
	confirmationHTML = htmpl.Must(htmpl.ParseFS(templateFS, "templates/confirmation_code.html.tmpl"))
)

// ConfirmationSubject is the subject line for confirmation-code mail.
const ConfirmationSubject = "Your confirmation code"

// RenderConfirmation renders the text and HTML bodies for a confirmation-code
// email.
func RenderConfirmation(job EmailJob) (text string, html string, err error) {
	var tb, hb bytes.Buffer
	if err = confirmationText.Execute(&tb, job); err != nil {
		return "", "", err
	}
	if err = confirmationHTML.Execute(&hb, job); err != nil {
		return "", "", err
	}
	return tb.String(), hb.String(), nil
}
