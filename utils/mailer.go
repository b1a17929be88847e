package utils

import (
	"fmt"

	"kardexplus/config"

	"gopkg.in/gomail.v2"
)

// EnviarNotificacionRequerimiento mails the requesting user when their
// requirement changes state. With no SMTP host configured it is a no-op.
func EnviarNotificacionRequerimiento(destinatario, numero, accion string) error {
	if config.SMTPHost == "" {
		return nil
	}

	m := gomail.NewMessage()
	m.SetHeader("From", config.SMTPSender)
	m.SetHeader("To", destinatario)
	m.SetHeader("Subject", fmt.Sprintf("Requerimiento %s %s", numero, accion))
	m.SetBody("text/plain", fmt.Sprintf(
		"Su requerimiento %s ha sido %s.\n\nEste es un mensaje automático, no responda a este correo.",
		numero, accion))

	d := gomail.NewDialer(config.SMTPHost, config.SMTPPort, config.SMTPSender, config.SMTPPassword)
	return d.DialAndSend(m)
}
