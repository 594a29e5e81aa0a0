package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"gopkg.in/gomail.v2"

	"github.com/jhoicas/packstock-api/internal/application/dto"
	"github.com/jhoicas/packstock-api/internal/application/notification"
	"github.com/jhoicas/packstock-api/pkg/config"
)

var _ notification.Alerter = (*LowStockMailer)(nil)

// dialer lo cumple *gomail.Dialer.
type dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// LowStockMailer envía la alerta de stock bajo por SMTP como una tabla HTML.
type LowStockMailer struct {
	dialer dialer
	from   string
	to     string
}

// NewLowStockMailer construye el canal de email a partir de la configuración SMTP.
func NewLowStockMailer(cfg config.SMTPConfig) *LowStockMailer {
	return &LowStockMailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
		from:   cfg.From,
		to:     cfg.NotificationEmail,
	}
}

// Name nombre del canal para logs.
func (m *LowStockMailer) Name() string { return "email" }

// SendLowStockAlert arma y envía el correo. gomail no acepta contexto: solo se respeta
// una cancelación previa al envío.
func (m *LowStockMailer) SendLowStockAlert(ctx context.Context, alert dto.LowStockAlert) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	body, err := RenderLowStockHTML(alert)
	if err != nil {
		return err
	}
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", m.to)
	msg.SetHeader("Subject", Subject(alert))
	msg.SetBody("text/html", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("enviar email de stock bajo: %w", err)
	}
	return nil
}

// Subject asunto del correo.
func Subject(alert dto.LowStockAlert) string {
	return fmt.Sprintf("⚠️ Alerta de stock bajo - %d artículos por reabastecer", len(alert.Items))
}

var lowStockTmpl = template.Must(template.New("low_stock").Parse(`<div style="font-family: Arial, sans-serif; max-width: 800px; margin: 0 auto;">
  <h2 style="color: #d9534f;">Alerta de stock bajo</h2>
  <p>Los siguientes artículos están por debajo de su umbral y necesitan reabastecerse:</p>
  <table style="width: 100%; border-collapse: collapse; margin: 20px 0;">
    <thead>
      <tr style="background-color: #f8f9fa;">
        <th style="padding: 12px; border: 1px solid #ddd; text-align: left;">Artículo</th>
        <th style="padding: 12px; border: 1px solid #ddd; text-align: left;">Stock actual</th>
        <th style="padding: 12px; border: 1px solid #ddd; text-align: left;">Umbral</th>
        <th style="padding: 12px; border: 1px solid #ddd; text-align: left;">Detalle</th>
      </tr>
    </thead>
    <tbody>
{{- range .Items}}
      <tr>
        <td style="padding: 8px; border: 1px solid #ddd;">{{.Name}}</td>
        <td style="padding: 8px; border: 1px solid #ddd;">{{.TotalStock.StringFixed 2}} paquetes</td>
        <td style="padding: 8px; border: 1px solid #ddd;">{{.LowStockThreshold.String}} paquetes</td>
        <td style="padding: 8px; border: 1px solid #ddd;">{{.PacksInStock}} paquetes + {{.PiecesInStock}} unidades</td>
      </tr>
{{- end}}
    </tbody>
  </table>
  <p style="color: #666; font-size: 14px;">Notificación automática del sistema de inventario ({{.DetectedAt.Format "2006-01-02 15:04"}}).</p>
</div>`))

// RenderLowStockHTML genera el cuerpo HTML; los nombres se escapan.
func RenderLowStockHTML(alert dto.LowStockAlert) (string, error) {
	var buf bytes.Buffer
	if err := lowStockTmpl.Execute(&buf, alert); err != nil {
		return "", fmt.Errorf("render email: %w", err)
	}
	return buf.String(), nil
}
