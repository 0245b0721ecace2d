package cli

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"celebrai-backend/internal/domain"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadContractDataJSON(t *testing.T) {
	path := writeFile(t, "festa.json", `{
		"clientName": "  Maria Souza ",
		"clientEmail": "maria@example.com",
		"contractType": "party",
		"quoteItems": [{"description": "Painel", "quantity": 2, "unit_price": 50, "total_price": 100}],
		"totalValue": 100,
		"tenantName": "Bella Arte",
		"createdAt": "2026-03-05T15:00:00Z"
	}`)

	data, err := LoadContractData(path)
	require.NoError(t, err)
	assert.Equal(t, "Maria Souza", data.ClientName)
	assert.Equal(t, domain.ContractTypeParty, data.ContractType)
	require.Len(t, data.QuoteItems, 1)
	assert.Equal(t, 2, *data.QuoteItems[0].Quantity)
	assert.Equal(t, 100.0, *data.TotalValue)
	assert.True(t, data.CreatedAt.Equal(time.Date(2026, 3, 5, 15, 0, 0, 0, time.UTC)))
}

func TestLoadContractDataYAML(t *testing.T) {
	path := writeFile(t, "festa.yaml", `clientName: Joao Lima
contractType: rental
tenantName: Bella Arte
notes: Montagem as 10h
quoteItems:
  - description: Pula-pula
    total_price: 250
`)

	data, err := LoadContractData(path)
	require.NoError(t, err)
	assert.Equal(t, "Joao Lima", data.ClientName)
	assert.Equal(t, domain.ContractType("rental"), data.ContractType)
	assert.Equal(t, "Montagem as 10h", data.Notes)
	require.Len(t, data.QuoteItems, 1)
	assert.Nil(t, data.QuoteItems[0].Quantity)
	assert.Equal(t, 250.0, *data.QuoteItems[0].TotalPrice)
}

func TestLoadContractDataErrors(t *testing.T) {
	_, err := LoadContractData(writeFile(t, "festa.txt", "clientName: x"))
	assert.ErrorContains(t, err, "unsupported input format")

	_, err = LoadContractData(writeFile(t, "festa.json", `{"clientName": "x", "bogus": 1}`))
	assert.Error(t, err)

	_, err = LoadContractData(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorContains(t, err, "read input")
}

func TestSignatureDataURL(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewNRGBA(image.Rect(0, 0, 4, 2))))
	path := writeFile(t, "sig.png", buf.String())

	url, err := SignatureDataURL(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "data:image/png;base64,"))

	_, err = SignatureDataURL(writeFile(t, "sig.txt", "not an image"))
	assert.ErrorContains(t, err, "PNG or JPEG")
}

func TestRunRender(t *testing.T) {
	input := writeFile(t, "festa.json", `{"clientName": "Ana Paula", "contractType": "party", "tenantName": "Bella Arte"}`)
	out := t.TempDir()
	now := func() time.Time { return time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC) }

	path, err := runRender(renderOptions{input: input, outDir: out, signedAt: "2026-10-19T09:00:00-03:00", timezone: "America/Sao_Paulo"}, now)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(out, "contrato-ana-paula.pdf"), path)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(raw, []byte("%PDF-")))
}

func TestRunRenderValidation(t *testing.T) {
	input := writeFile(t, "festa.json", `{"clientName": " ", "clientEmail": "nope"}`)

	_, err := runRender(renderOptions{input: input, outDir: t.TempDir(), timezone: "UTC"}, time.Now)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Nome do Cliente: Campo obrigatório")
	assert.Contains(t, err.Error(), "Email do Cliente: Formato de email inválido")
}

func TestRunRenderBadSignedAt(t *testing.T) {
	input := writeFile(t, "festa.json", `{"clientName": "Ana"}`)

	_, err := runRender(renderOptions{input: input, outDir: t.TempDir(), signedAt: "ontem"}, time.Now)
	assert.ErrorContains(t, err, "invalid --signed-at")
}
