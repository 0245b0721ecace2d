package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldLabels maps struct field names to Portuguese labels shown to the tenant
var FieldLabels = map[string]string{
	// ContractData fields
	"ClientName":     "Nome do Cliente",
	"ClientEmail":    "Email do Cliente",
	"ClientPhone":    "Telefone do Cliente",
	"ContractType":   "Tipo de Serviço",
	"Notes":          "Observações",
	"QuoteItems":     "Itens do Orçamento",
	"TotalValue":     "Valor Total",
	"TenantName":     "Nome da Empresa",
	"SignatureImage": "Assinatura",
	"SignedAt":       "Data da Assinatura",

	// QuoteItem fields
	"Description": "Descrição",
	"Quantity":    "Quantidade",
	"UnitPrice":   "Valor Unitário",
	"TotalPrice":  "Valor do Item",
}

// FormatValidationErrors converts validator.ValidationErrors to user-friendly messages
func FormatValidationErrors(err error) []string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return []string{err.Error()}
	}

	messages := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		messages = append(messages, formatSingleError(e))
	}
	return messages
}

func formatSingleError(e validator.FieldError) string {
	label := getFieldLabel(e.Field())
	param := e.Param()

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s: Campo obrigatório", label)

	case "email":
		return fmt.Sprintf("%s: Formato de email inválido", label)

	case "gte":
		return fmt.Sprintf("%s: Deve ser maior ou igual a %s", label, param)

	case "max":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("%s: Máximo de %s caracteres", label, param)
		}
		return fmt.Sprintf("%s: Máximo %s", label, param)

	case "valid_phone":
		return fmt.Sprintf("%s: Formato de telefone inválido (10 a 13 dígitos)", label)

	default:
		return fmt.Sprintf("%s: Validação falhou (%s)", label, e.Tag())
	}
}

// getFieldLabel returns the user-friendly label for a field
func getFieldLabel(fieldName string) string {
	if label, ok := FieldLabels[fieldName]; ok {
		return label
	}
	return formatCamelCase(fieldName)
}

// formatCamelCase converts CamelCase to spaced words
func formatCamelCase(s string) string {
	var result strings.Builder
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' {
			result.WriteRune(' ')
		}
		result.WriteRune(r)
	}
	return result.String()
}
