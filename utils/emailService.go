package utils

import (
	"fmt"
	"lms/config"
	"log"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendEmail sends an HTML email through SendGrid. Callers fire this
// from a goroutine; a failed email must not fail the request that
// triggered it.
func SendEmail(toName, toEmail, subject, htmlBody string) error {
	if config.AppConfig.SendGridKey == "" {
		log.Printf("Skipping email to %s (%s): SENDGRID_API_KEY not set", toEmail, subject)
		return nil
	}

	from := mail.NewEmail("LMS Points", config.AppConfig.EmailSender)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, "", htmlBody)

	client := sendgrid.NewSendClient(config.AppConfig.SendGridKey)
	resp, err := client.Send(message)
	if err != nil {
		log.Printf("Error sending email to %s: %v", toEmail, err)
		return err
	}
	if resp.StatusCode >= 400 {
		log.Printf("SendGrid rejected email to %s: %d %s", toEmail, resp.StatusCode, resp.Body)
		return fmt.Errorf("sendgrid status %d", resp.StatusCode)
	}
	return nil
}

// getEmailTemplate wraps body content in the standard layout
func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; box-shadow: 0 4px 15px rgba(0,0,0,0.05); }
			.header { background-color: #1A2B4C; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #1A2B4C; line-height: 1.6; }
			.content h2 { color: #1A2B4C; margin-top: 0; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; border-top: 1px solid #E0E0E0; }
			.info-box { background: #E8F0FE; padding: 15px; border-radius: 4px; border-left: 4px solid #4C8BF5; margin: 20px 0; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header">
				<h1>LMS POINTS</h1>
			</div>
			<div class="content">
				<h2>%s</h2>
				%s
			</div>
			<div class="footer">
				&copy; 2026 LMS Points. All rights reserved.
			</div>
		</div>
	</body>
	</html>`, title, bodyContent)
}

// SendWelcomeEmail greets a new user and tells them their starting balance
func SendWelcomeEmail(name, email string, points uint) error {
	body := fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>Your account is ready. We credited your balance with a starting grant:</p>
		<div class="info-box"><strong>%d points</strong></div>
		<p>Browse the catalog and enroll in your first course.</p>`, name, points)
	return SendEmail(name, email, "Welcome to LMS Points", getEmailTemplate("Welcome aboard", body))
}

// SendEnrollmentEmail confirms an enrollment and the points charged
func SendEnrollmentEmail(name, email, courseTitle string, price uint, balanceAfter uint) error {
	body := fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>You are enrolled in <strong>%s</strong>.</p>
		<div class="info-box">Charged: <strong>%d points</strong><br>Remaining balance: <strong>%d points</strong></div>
		<p>Good luck with your first lesson!</p>`, name, courseTitle, price, balanceAfter)
	return SendEmail(name, email, "Enrollment confirmed: "+courseTitle, getEmailTemplate("Enrollment confirmed", body))
}

// SendCourseCompletedEmail congratulates a student on reaching 100%
func SendCourseCompletedEmail(name, email, courseTitle string) error {
	body := fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>You completed every lesson in <strong>%s</strong>. Congratulations!</p>`, name, courseTitle)
	return SendEmail(name, email, "Course completed: "+courseTitle, getEmailTemplate("Course completed", body))
}
