package mailer

import (
	"fmt"
	"net/smtp"

	"github.com/taskpal/taskpal-api/internal/config"
	"github.com/taskpal/taskpal-api/internal/models"
)

// Mailer delivers task notification emails.
type Mailer interface {
	// SendTaskAssigned notifies the assignee about a newly assigned task
	SendTaskAssigned(to string, task *models.Task, assignedBy *models.User) error

	// SendTaskReminder reminds the assignee about a task due soon
	SendTaskReminder(to string, task *models.Task) error
}

// SMTPMailer sends emails through a plain SMTP relay.
type SMTPMailer struct {
	from     string
	password string
	host     string
	port     string
}

// NewSMTPMailer creates a mailer from SMTP configuration.
func NewSMTPMailer(cfg *config.Config) *SMTPMailer {
	return &SMTPMailer{
		from:     cfg.SMTPUser,
		password: cfg.SMTPPass,
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
	}
}

// Configured reports whether the mailer has a usable SMTP configuration.
func (m *SMTPMailer) Configured() bool {
	return m.host != "" && m.port != "" && m.from != "" && m.password != ""
}

// SendTaskAssigned sends the task assignment email.
func (m *SMTPMailer) SendTaskAssigned(to string, task *models.Task, assignedBy *models.User) error {
	subject := fmt.Sprintf("New Task Assigned: %s", task.Title)
	body := fmt.Sprintf(`<h2>You have been assigned a new task</h2>
<p><strong>Title:</strong> %s</p>
<p><strong>Description:</strong> %s</p>
<p><strong>Priority:</strong> %s</p>
<p><strong>Due Date:</strong> %s</p>
<p><strong>Assigned By:</strong> %s (%s)</p>
<hr />
<p>Please log in to TaskPal to view and update your task.</p>`,
		task.Title,
		task.Description,
		task.Priority,
		task.DueDate.Format("Mon Jan 2 2006"),
		assignedBy.Name,
		assignedBy.Email,
	)

	return m.send(to, subject, body)
}

// SendTaskReminder sends the due-soon reminder email.
func (m *SMTPMailer) SendTaskReminder(to string, task *models.Task) error {
	subject := fmt.Sprintf("Reminder: Task Due Soon - %s", task.Title)
	body := fmt.Sprintf(`<h2>Task Reminder</h2>
<p>Your task <strong>%s</strong> is due soon.</p>
<p><strong>Due Date:</strong> %s</p>
<p>Please make sure to complete it on time.</p>`,
		task.Title,
		task.DueDate.Format("Mon Jan 2 2006"),
	)

	return m.send(to, subject, body)
}

func (m *SMTPMailer) send(to, subject, body string) error {
	if !m.Configured() {
		return fmt.Errorf("missing SMTP configuration")
	}

	msg := []byte(fmt.Sprintf(
		"From: %s\r\n"+
			"To: %s\r\n"+
			"Subject: %s\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/html; charset=\"utf-8\"\r\n"+
			"\r\n%s\r\n",
		m.from, to, subject, body,
	))

	auth := smtp.PlainAuth("", m.from, m.password, m.host)
	return smtp.SendMail(m.host+":"+m.port, auth, m.from, []string{to}, msg)
}
