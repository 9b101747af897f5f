package utils

import (
	"fmt"
	"log"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"

	"microcourses/config"
)

// SendEmail delivers a single HTML email through SendGrid. It is a no-op
// when no API key is configured, so local runs and tests stay offline.
func SendEmail(to, subject, htmlBody string) error {
	if config.AppConfig == nil || config.AppConfig.SendgridKey == "" {
		return nil
	}

	from := sgmail.NewEmail("MicroCourses", config.AppConfig.EmailSender)
	message := sgmail.NewSingleEmail(from, subject, sgmail.NewEmail("", to), "", htmlBody)

	client := sendgrid.NewSendClient(config.AppConfig.SendgridKey)
	resp, err := client.Send(message)
	if err != nil {
		log.Println("Error sending email:", err)
		return err
	}
	if resp.StatusCode >= 400 {
		log.Printf("SendGrid rejected email (%d): %s", resp.StatusCode, resp.Body)
		return fmt.Errorf("sendgrid status %d", resp.StatusCode)
	}
	return nil
}

func getEmailTemplate(title, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; }
			.header { background-color: #1A2B4C; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #1A2B4C; line-height: 1.6; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; }
			.info-box { background: #E8F0FE; padding: 15px; border-radius: 4px; border-left: 4px solid #4A90D9; margin: 20px 0; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header">
				<h1>MICROCOURSES</h1>
			</div>
			<div class="content">
				<h2>%s</h2>
				%s
			</div>
			<div class="footer">
				&copy; 2026 MicroCourses. All rights reserved.
			</div>
		</div>
	</body>
	</html>
	`, title, bodyContent)
}

// --- Triggers ---

// 1. Welcome / Signup
func SendWelcomeEmail(email, name string) {
	subject := "Welcome to MicroCourses"
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Welcome to <strong>MicroCourses</strong>! Your account has been created.</p>
		<p>Browse the published catalog and enroll to start learning.</p>
	`, name)

	SendEmail(email, subject, getEmailTemplate("Welcome Onboard!", body))
}

// 2. Creator application decision
func SendCreatorDecisionEmail(email, name, status string) {
	subject := "Your creator application was " + status
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>An admin has reviewed your creator application. Decision: <strong>%s</strong>.</p>
	`, name, status)
	if status == "approved" {
		body += `
		<div class="info-box">
			You can now create courses from your creator dashboard.
		</div>`
	}

	SendEmail(email, subject, getEmailTemplate("Creator Application Update", body))
}

// 3. Enrollment confirmation
func SendEnrollmentEmail(email, name, courseTitle string) {
	subject := "Enrolled: " + courseTitle
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>You are now enrolled in <strong>%s</strong>.</p>
		<p>Complete every lesson to earn your certificate.</p>
	`, name, courseTitle)

	SendEmail(email, subject, getEmailTemplate("Enrollment Confirmed", body))
}

// 4. Certificate issued
func SendCertificateEmail(email, name, certificateHash string) {
	subject := "Your certificate is ready"
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Congratulations! You completed all lessons and earned your certificate.</p>
		<div class="info-box">
			<strong>Certificate ID:</strong> %s
		</div>
	`, name, certificateHash)

	SendEmail(email, subject, getEmailTemplate("Course Completed", body))
}

// 5. Daily pending-review digest for admins
func SendAdminDigestEmail(email string, pendingCreators, pendingCourses int) {
	subject := "Daily review digest"
	body := fmt.Sprintf(`
		<p>Pending items awaiting review:</p>
		<div class="info-box">
			<strong>Creator applications:</strong> %d<br>
			<strong>Courses:</strong> %d
		</div>
	`, pendingCreators, pendingCourses)

	SendEmail(email, subject, getEmailTemplate("Review Queue Digest", body))
}
