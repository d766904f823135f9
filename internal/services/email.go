package services

import (
	"fmt"
	"net/smtp"

	"passauth/internal/config"
	"passauth/internal/logger"

	"go.uber.org/zap"
)

type EmailService struct {
	auth       smtp.Auth
	from       string
	host       string
	port       string
	configured bool
}

func NewEmailService(cfg *config.Config) *EmailService {
	auth := smtp.PlainAuth("", cfg.SMTPUser, cfg.SMTPPassword, cfg.SMTPHost)
	return &EmailService{
		auth:       auth,
		from:       cfg.SMTPUser,
		host:       cfg.SMTPHost,
		port:       cfg.SMTPPort,
		configured: cfg.SMTPHost != "" && cfg.SMTPUser != "",
	}
}

func (s *EmailService) Send(to []string, subject, body string) error {
	if !s.configured {
		return fmt.Errorf("smtp is not configured")
	}

	msg := []byte("Subject: " + subject + "\r\n" +
		"Content-Type: text/plain; charset=\"utf-8\"\r\n\r\n" +
		body)

	addr := fmt.Sprintf("%s:%s", s.host, s.port)
	return smtp.SendMail(addr, s.auth, s.from, to, msg)
}

func (s *EmailService) SendHTML(to []string, subject, body string) error {
	if !s.configured {
		return fmt.Errorf("smtp is not configured")
	}

	msg := []byte("Subject: " + subject + "\r\n" +
		"MIME-Version: 1.0\r\n" +
		"Content-Type: text/html; charset=\"utf-8\"\r\n\r\n" +
		body)

	addr := fmt.Sprintf("%s:%s", s.host, s.port)
	return smtp.SendMail(addr, s.auth, s.from, to, msg)
}

type EmailJob struct {
	To      []string
	Subject string
	Body    string
	IsHTML  bool

	// FallbackLink — ссылка из письма для лога, если доставка не удалась.
	// Сбой доставки не откатывает выпуск токена: токен остаётся рабочим.
	FallbackLink string
}

var EmailQueue = make(chan EmailJob, 100) // глобальная очередь на 100 писем

func StartEmailWorker(emailService *EmailService) {
	go func() {
		for job := range EmailQueue {
			var err error
			if job.IsHTML {
				err = emailService.SendHTML(job.To, job.Subject, job.Body)
			} else {
				err = emailService.Send(job.To, job.Subject, job.Body)
			}
			if err != nil {
				logger.Log.Error("Не удалось отправить письмо", zap.Error(err))
				if job.FallbackLink != "" {
					logger.Log.Warn("Письмо не доставлено, ссылка доступна только в логе",
						zap.String("link", job.FallbackLink))
				}
			}
		}
	}()
}
