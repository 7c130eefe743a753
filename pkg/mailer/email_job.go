package mailer

// EmailJob is the JSON payload put on the RabbitMQ queue for sending email.
// The worker renders the confirmation-code template from Username and Code.
type EmailJob struct {
	To       string `json:"to"`
	Username string `json:"username"`
	Code     string `json:"code"`
}
