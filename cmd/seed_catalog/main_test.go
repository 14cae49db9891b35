package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

func TestReadRows_Latin1YComaDecimal(t *testing.T) {
	src := "categoria;nombre;descripcion;precio;stock;imagen_url\n" +
		"Ropa;Camiseta;Algodón peinado;199,90;12;https://cdn/x.png\n"
	latin1, err := charmap.ISO8859_1.NewEncoder().String(src)
	require.NoError(t, err)

	rows, err := readRows(transform.NewReader(strings.NewReader(latin1), charmap.ISO8859_1.NewDecoder()))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Algodón peinado", rows[0].description)
	assert.Equal(t, "199.9", rows[0].price.String())
	assert.Equal(t, 12, rows[0].stock)
	assert.Equal(t, 2, rows[0].line)
}

func TestReadRows_AcumulaErrores(t *testing.T) {
	src := "categoria;nombre;descripcion;precio;stock;imagen_url\n" +
		";Sin categoría;d;10;1;u\n" +
		"Ropa;Gorra;d;-5;1;u\n" +
		"Ropa;Bufanda;d;10;muchos;u\n"

	_, err := readRows(strings.NewReader(src))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "línea 2")
	assert.Contains(t, err.Error(), "línea 3")
	assert.Contains(t, err.Error(), "línea 4")
}
