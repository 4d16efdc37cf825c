package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/resend/resend-go/v2"
)

// ResendEmailSender delivers the outbound mail through the Resend API and
// doubles as the link builder: verification and reset links embed the raw
// token into an absolute URL under AppBaseURL.
type ResendEmailSender struct {
	Client     *resend.Client
	From       string
	AppBaseURL string
	VerifyPath string
	ResetPath  string
}

func NewResendEmailSender(apiKey string, from string, appBaseURL string) *ResendEmailSender {
	if strings.TrimSpace(apiKey) == "" || strings.TrimSpace(from) == "" {
		return &ResendEmailSender{}
	}
	return &ResendEmailSender{
		Client:     resend.NewClient(apiKey),
		From:       from,
		AppBaseURL: strings.TrimRight(appBaseURL, "/"),
		VerifyPath: "/auth/verify-email",
		ResetPath:  "/reset-password",
	}
}

func (s *ResendEmailSender) SendVerificationEmail(ctx context.Context, email string, token string) error {
	if s.Client == nil {
		return errors.New("email sender not configured")
	}
	link := s.buildLinkURL(s.VerifyPath, token)
	subject := "Verify your LawConnect account"
	html := fmt.Sprintf("<p>Welcome to LawConnect. Click to verify your email:</p><p><a href=\"%s\">Verify Email</a></p><p>Your account stays inactive until you do.</p>", link)
	text := fmt.Sprintf("Welcome to LawConnect. Verify your email: %s", link)
	return s.send(email, subject, html, text)
}

func (s *ResendEmailSender) SendPasswordResetEmail(ctx context.Context, email string, token string) error {
	if s.Client == nil {
		return errors.New("email sender not configured")
	}
	link := s.buildLinkURL(s.ResetPath, token)
	subject := "Reset your LawConnect password"
	html := fmt.Sprintf("<p>Click to reset your password:</p><p><a href=\"%s\">Reset Password</a></p>", link)
	text := fmt.Sprintf("Reset your password: %s", link)
	return s.send(email, subject, html, text)
}

func (s *ResendEmailSender) SendLawyerSignupNotice(ctx context.Context, email string, notice LawyerSignupNotice) error {
	if s.Client == nil {
		return errors.New("email sender not configured")
	}
	lines := []string{
		"A new lawyer signed up:",
		"",
		fmt.Sprintf("Username: %s", notice.Username),
		fmt.Sprintf("Email: %s", notice.Email),
		fmt.Sprintf("Specialty: %s", notice.Specialty),
		fmt.Sprintf("Years: %d", notice.YearsExperience),
		fmt.Sprintf("Bar #: %s", notice.BarNumber),
	}
	if notice.CertificateURL != "" {
		lines = append(lines, fmt.Sprintf("Certificate: %s", notice.CertificateURL))
	}
	subject := "New lawyer registration pending approval"
	return s.send(email, subject, "", strings.Join(lines, "\n"))
}

func (s *ResendEmailSender) buildLinkURL(path string, token string) string {
	base := strings.TrimRight(s.AppBaseURL, "/")
	if base == "" {
		return token
	}
	if path == "" {
		path = "/"
	}
	return fmt.Sprintf("%s%s/%s", base, path, token)
}

func (s *ResendEmailSender) send(to string, subject string, html string, text string) error {
	params := &resend.SendEmailRequest{
		From:    s.From,
		To:      []string{to},
		Subject: subject,
		Html:    html,
		Text:    text,
	}
	_, err := s.Client.Emails.Send(params)
	return err
}
