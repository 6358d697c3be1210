package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWithholdings(t *testing.T) {
	text := "Importe Neto: $ 132,420.63\n" +
		"Retención Ganancias 1,500.00\n" +
		"Percepción IIBB Buenos Aires: $ 320.75\n" +
		"Retención IVA pendiente\n"

	w := ParseWithholdings(text)
	require.Len(t, w, 2)

	assert.Equal(t, "Retención Ganancias", w[0].Label)
	assert.Equal(t, 1500.00, w[0].Amount)

	assert.Equal(t, "Percepción IIBB Buenos Aires", w[1].Label)
	assert.Equal(t, 320.75, w[1].Amount)
}

func TestParseWithholdingsNone(t *testing.T) {
	assert.Empty(t, ParseWithholdings("Importe Neto: $ 132,420.63\n"))
}
