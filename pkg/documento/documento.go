// Package documento valida documentos fiscais brasileiros (CPF e CNPJ)
// e telefones no formato nacional. Sem dependências externas: os dígitos
// verificadores seguem o algoritmo módulo 11 da Receita Federal.
package documento

import "strings"

// ApenasDigitos remove tudo que não for dígito (pontos, traços, barras, espaços).
func ApenasDigitos(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ValidarDocumento aceita CPF (11 dígitos) ou CNPJ (14 dígitos), com ou sem máscara.
func ValidarDocumento(doc string) bool {
	d := ApenasDigitos(doc)
	switch len(d) {
	case 11:
		return ValidarCPF(d)
	case 14:
		return ValidarCNPJ(d)
	}
	return false
}

// ValidarCPF verifica os dois dígitos verificadores do CPF.
func ValidarCPF(cpf string) bool {
	cpf = ApenasDigitos(cpf)
	if len(cpf) != 11 || todosIguais(cpf) {
		return false
	}

	soma := 0
	for i := 0; i < 9; i++ {
		soma += int(cpf[i]-'0') * (10 - i)
	}
	if digitoVerificador(soma) != int(cpf[9]-'0') {
		return false
	}

	soma = 0
	for i := 0; i < 10; i++ {
		soma += int(cpf[i]-'0') * (11 - i)
	}
	return digitoVerificador(soma) == int(cpf[10]-'0')
}

// ValidarCNPJ verifica os dois dígitos verificadores do CNPJ.
func ValidarCNPJ(cnpj string) bool {
	cnpj = ApenasDigitos(cnpj)
	if len(cnpj) != 14 || todosIguais(cnpj) {
		return false
	}

	if calcularDigitoCNPJ(cnpj, 12) != int(cnpj[12]-'0') {
		return false
	}
	return calcularDigitoCNPJ(cnpj, 13) == int(cnpj[13]-'0')
}

// ValidarTelefone aceita 10 dígitos (fixo) ou 11 dígitos (celular), com DDD.
func ValidarTelefone(telefone string) bool {
	n := len(ApenasDigitos(telefone))
	return n == 10 || n == 11
}

// digitoVerificador aplica a regra do módulo 11: resto 10 ou 11 vira 0.
func digitoVerificador(soma int) int {
	resto := 11 - (soma % 11)
	if resto >= 10 {
		return 0
	}
	return resto
}

// calcularDigitoCNPJ calcula o dígito da posição pos (12 ou 13) com pesos 9..2,9..2.
func calcularDigitoCNPJ(cnpj string, pos int) int {
	peso := pos - 7
	soma := 0
	for i := 0; i < pos; i++ {
		soma += int(cnpj[i]-'0') * peso
		peso--
		if peso < 2 {
			peso = 9
		}
	}
	resto := soma % 11
	if resto < 2 {
		return 0
	}
	return 11 - resto
}

func todosIguais(s string) bool {
	for i := 1; i < len(s); i++ {
		if s[i] != s[0] {
			return false
		}
	}
	return true
}
