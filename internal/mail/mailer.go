package mail

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/shixiaoya/materials/internal/config"
	"github.com/shixiaoya/materials/internal/model"
)

// Mailer sends inquiry-related notifications
type Mailer interface {
	SendInquiryNotification(model.Inquiry) error
	SendInquiryReply(model.Inquiry) error
}

type smtpMailer struct {
	cfg    config.SMTPCfg
	dialer *gomail.Dialer
}

// NewSMTPMailer builds Mailer on top of gomail dialer, SMTP left unconfigured
// degrades to a no-op mailer
func NewSMTPMailer(cfg config.SMTPCfg) Mailer {
	if cfg.Host == "" {
		return &noopMailer{}
	}
	return &smtpMailer{
		cfg:    cfg,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
	}
}

// SendInquiryNotification notifies the back office about a new inquiry
func (m *smtpMailer) SendInquiryNotification(inq model.Inquiry) error {
	if m.cfg.AdminEmail == "" {
		return nil
	}

	subject := fmt.Sprintf("【施小雅板材】新询价通知 - %s", inq.CustomerName)
	htmlBody := fmt.Sprintf(`
		<h2>新询价通知</h2>
		<p><strong>询价单号:</strong> %s</p>
		<p><strong>客户姓名:</strong> %s</p>
		<p><strong>联系电话:</strong> %s</p>
		<p><strong>产品名称:</strong> %s</p>
		<p><strong>数量:</strong> %d</p>
		<p><strong>需求描述:</strong></p>
		<p>%s</p>
		<p>请及时登录管理后台处理此询价。</p>
	`, inq.InquiryNumber, inq.CustomerName, inq.CustomerPhone, inq.ProductName, inq.Quantity, inq.Requirements)

	return m.send(m.cfg.AdminEmail, subject, htmlBody)
}

// SendInquiryReply forwards the admin reply to the customer, skipped when the
// customer left no email address
func (m *smtpMailer) SendInquiryReply(inq model.Inquiry) error {
	if inq.CustomerEmail == "" {
		return nil
	}

	subject := fmt.Sprintf("【施小雅板材】询价回复 - %s", inq.InquiryNumber)
	htmlBody := fmt.Sprintf(`
		<h2>询价回复</h2>
		<p>尊敬的 %s，您好！</p>
		<p><strong>您的询价:</strong> %s</p>
		<p><strong>我们的回复:</strong></p>
		<p>%s</p>
		<p>如有其他问题，请随时联系我们。</p>
	`, inq.CustomerName, inq.ProductName, inq.AdminReply)

	return m.send(inq.CustomerEmail, subject, htmlBody)
}

func (m *smtpMailer) send(to, subject, htmlBody string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.From)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	return m.dialer.DialAndSend(msg)
}

// noopMailer is used when SMTP is not configured
type noopMailer struct{}

func (*noopMailer) SendInquiryNotification(model.Inquiry) error { return nil }

func (*noopMailer) SendInquiryReply(model.Inquiry) error { return nil }
