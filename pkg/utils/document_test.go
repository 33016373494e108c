package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidCPF(t *testing.T) {
	valid := []string{
		"529.982.247-25",
		"52998224725",
	}
	for _, document := range valid {
		assert.True(t, ValidCPF(document), document)
	}

	invalid := []string{
		"",
		"529.982.247-24", // wrong verifier digit
		"111.111.111-11", // repeated digits pass the checksum but are not issued
		"5299822472",     // too short
		"529982247255",   // too long
		"abc.def.ghi-jk",
	}
	for _, document := range invalid {
		assert.False(t, ValidCPF(document), document)
	}
}

func TestValidCNPJ(t *testing.T) {
	valid := []string{
		"11.222.333/0001-81",
		"11222333000181",
	}
	for _, document := range valid {
		assert.True(t, ValidCNPJ(document), document)
	}

	invalid := []string{
		"",
		"11.222.333/0001-80", // wrong verifier digit
		"11.111.111/1111-11",
		"1122233300018", // too short
	}
	for _, document := range invalid {
		assert.False(t, ValidCNPJ(document), document)
	}
}

func TestNormalizeDocument(t *testing.T) {
	assert.Equal(t, "52998224725", NormalizeDocument("529.982.247-25"))
	assert.Equal(t, "11222333000181", NormalizeDocument("11.222.333/0001-81"))
	assert.Equal(t, "", NormalizeDocument("---"))
}
