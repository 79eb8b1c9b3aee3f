package documento_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agrosystemapp/agroserver-api/pkg/documento"
)

func TestValidarCPF(t *testing.T) {
	casos := []struct {
		nome  string
		cpf   string
		valido bool
	}{
		{"cpf válido sem máscara", "52998224725", true},
		{"cpf válido com máscara", "529.982.247-25", true},
		{"outro cpf válido", "11144477735", true},
		{"dígito verificador errado", "12345678900", false},
		{"todos os dígitos iguais passam no módulo 11 mas são rejeitados", "11111111111", false},
		{"curto demais", "5299822472", false},
		{"vazio", "", false},
	}
	for _, c := range casos {
		t.Run(c.nome, func(t *testing.T) {
			assert.Equal(t, c.valido, documento.ValidarCPF(c.cpf))
		})
	}
}

func TestValidarCNPJ(t *testing.T) {
	casos := []struct {
		nome   string
		cnpj   string
		valido bool
	}{
		{"cnpj válido sem máscara", "11222333000181", true},
		{"cnpj válido com máscara", "11.444.777/0001-61", true},
		{"dígito verificador errado", "11222333000180", false},
		{"todos os dígitos iguais", "00000000000000", false},
		{"tamanho errado", "112223330001", false},
	}
	for _, c := range casos {
		t.Run(c.nome, func(t *testing.T) {
			assert.Equal(t, c.valido, documento.ValidarCNPJ(c.cnpj))
		})
	}
}

// ValidarDocumento decide entre CPF e CNPJ pelo número de dígitos.
func TestValidarDocumento(t *testing.T) {
	assert.True(t, documento.ValidarDocumento("529.982.247-25"))
	assert.True(t, documento.ValidarDocumento("11.222.333/0001-81"))
	assert.False(t, documento.ValidarDocumento("123"))
	assert.False(t, documento.ValidarDocumento("529982247250000"))
}

func TestValidarTelefone(t *testing.T) {
	assert.True(t, documento.ValidarTelefone("1133334444"), "fixo com DDD: 10 dígitos")
	assert.True(t, documento.ValidarTelefone("(11) 98765-4321"), "celular com máscara: 11 dígitos")
	assert.False(t, documento.ValidarTelefone("987654321"), "9 dígitos não é aceito")
	assert.False(t, documento.ValidarTelefone("119876543210"), "12 dígitos não é aceito")
}

func TestApenasDigitos(t *testing.T) {
	assert.Equal(t, "52998224725", documento.ApenasDigitos("529.982.247-25"))
	assert.Equal(t, "", documento.ApenasDigitos("abc-/."))
}
