package email

import (
	"bytes"
	"fmt"
	"html/template"
	"regexp"
)

// ContractSignedData feeds both contract-signed bodies.
type ContractSignedData struct {
	TenantName  string
	ClientName  string
	ClientEmail string
	SignedDate  string
	WhatsAppURL string
}

var nonDigits = regexp.MustCompile(`\D`)

// WhatsAppLink returns a wa.me link for phone, or "" when it has no digits.
func WhatsAppLink(phone string) string {
	digits := nonDigits.ReplaceAllString(phone, "")
	if digits == "" {
		return ""
	}
	return "https://wa.me/" + digits
}

const bodyStyle = `font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, 'Helvetica Neue', Arial, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;`

const clientSignedTemplate = `<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
</head>
<body style="` + bodyStyle + `">
  <div style="background: linear-gradient(135deg, #10b981 0%, #059669 100%); padding: 30px; border-radius: 12px 12px 0 0; text-align: center;">
    <h1 style="color: white; margin: 0; font-size: 24px;">✅ Contrato Assinado com Sucesso!</h1>
  </div>
  <div style="background: #f9fafb; padding: 30px; border: 1px solid #e5e7eb; border-top: none; border-radius: 0 0 12px 12px;">
    <p style="font-size: 16px;">Olá <strong>{{.ClientName}}</strong>,</p>
    <p>Seu contrato foi assinado digitalmente com sucesso!</p>
    <div style="background: white; border: 1px solid #e5e7eb; border-radius: 8px; padding: 20px; margin: 20px 0;">
      <p style="margin: 0 0 10px 0;"><strong>📅 Data da Assinatura:</strong> {{.SignedDate}}</p>
      <p style="margin: 0;"><strong>✍️ Assinado por:</strong> {{.ClientName}}</p>
    </div>
    <p>Este e-mail serve como confirmação da sua assinatura digital. Guarde-o para seus registros.</p>
    <div style="background: #ecfdf5; border: 1px solid #10b981; border-radius: 8px; padding: 15px; margin: 20px 0;">
      <p style="margin: 0; color: #065f46; font-size: 14px;">
        🔒 <strong>Assinatura Digital Verificada</strong><br>
        Sua assinatura foi registrada com data, hora e informações do dispositivo para garantir a autenticidade do documento.
      </p>
    </div>
    {{- if .WhatsAppURL}}
    <p style="text-align: center; margin-top: 30px;">
      <a href="{{.WhatsAppURL}}" style="display: inline-block; background: #25d366; color: white; text-decoration: none; padding: 12px 24px; border-radius: 8px; font-weight: bold;">
        💬 Entrar em contato via WhatsApp
      </a>
    </p>
    {{- end}}
    <hr style="border: none; border-top: 1px solid #e5e7eb; margin: 30px 0;">
    <p style="color: #6b7280; font-size: 14px; text-align: center; margin: 0;">
      {{.TenantName}}<br>
      Este é um e-mail automático, por favor não responda.
    </p>
  </div>
</body>
</html>`

const ownerSignedTemplate = `<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
</head>
<body style="` + bodyStyle + `">
  <div style="background: linear-gradient(135deg, #8b5cf6 0%, #6366f1 100%); padding: 30px; border-radius: 12px 12px 0 0; text-align: center;">
    <h1 style="color: white; margin: 0; font-size: 24px;">🎉 Contrato Assinado!</h1>
  </div>
  <div style="background: #f9fafb; padding: 30px; border: 1px solid #e5e7eb; border-top: none; border-radius: 0 0 12px 12px;">
    <p style="font-size: 16px;">Boas notícias!</p>
    <p>O cliente <strong>{{.ClientName}}</strong> acabou de assinar o contrato digitalmente.</p>
    <div style="background: white; border: 1px solid #e5e7eb; border-radius: 8px; padding: 20px; margin: 20px 0;">
      <p style="margin: 0 0 10px 0;"><strong>👤 Cliente:</strong> {{.ClientName}}</p>
      {{- if .ClientEmail}}
      <p style="margin: 0 0 10px 0;"><strong>📧 Email:</strong> {{.ClientEmail}}</p>
      {{- end}}
      <p style="margin: 0;"><strong>📅 Data:</strong> {{.SignedDate}}</p>
    </div>
    <p>Acesse o painel administrativo para visualizar a assinatura e baixar o contrato em PDF.</p>
    <hr style="border: none; border-top: 1px solid #e5e7eb; margin: 30px 0;">
    <p style="color: #6b7280; font-size: 14px; text-align: center; margin: 0;">
      Sistema de Contratos - {{.TenantName}}
    </p>
  </div>
</body>
</html>`

var (
	clientSignedTmpl = template.Must(template.New("client-signed").Parse(clientSignedTemplate))
	ownerSignedTmpl  = template.Must(template.New("owner-signed").Parse(ownerSignedTemplate))
)

// ClientSignedSubject and OwnerSignedSubject are the two notification subjects.
func ClientSignedSubject(tenantName string) string {
	return "✅ Contrato Assinado - " + tenantName
}

func OwnerSignedSubject(clientName string) string {
	return "🎉 Novo Contrato Assinado - " + clientName
}

// RenderClientSigned renders the confirmation sent to the signing client.
func RenderClientSigned(data ContractSignedData) (string, error) {
	return render(clientSignedTmpl, data)
}

// RenderOwnerSigned renders the notice sent to the tenant owner.
func RenderOwnerSigned(data ContractSignedData) (string, error) {
	return render(ownerSignedTmpl, data)
}

func render(t *template.Template, data ContractSignedData) (string, error) {
	var body bytes.Buffer
	if err := t.Execute(&body, data); err != nil {
		return "", fmt.Errorf("failed to execute email template %s: %w", t.Name(), err)
	}
	return body.String(), nil
}
