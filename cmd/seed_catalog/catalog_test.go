package main

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

func TestParseCatalog_EncabezadosDeInventario(t *testing.T) {
	in := "ID,Nombre,Categoría,Cantidad,Precio,Proveedor,Stock Mínimo,Fecha de Creación\n" +
		"abc,Tornillo,Ferretería,120,0.35,ACME,20,2024-01-02 10:00:00\n" +
		",,,,,,,\n" +
		"def,Llave inglesa,Herramientas,,12.5,,,\n"

	items, err := parseCatalog(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, items, 2, "las filas sin nombre se omiten")

	assert.Equal(t, "Tornillo", items[0].Name)
	assert.Equal(t, "Ferretería", items[0].Category)
	assert.Equal(t, 120, items[0].Quantity)
	assert.Equal(t, "0.35", items[0].Price.String())
	require.NotNil(t, items[0].StockMin)
	assert.Equal(t, 20, *items[0].StockMin)

	assert.Equal(t, 0, items[1].Quantity)
	assert.Nil(t, items[1].StockMin, "sin stock mínimo aplica el valor por defecto")
}

func TestParseCatalog_Errores(t *testing.T) {
	_, err := parseCatalog(strings.NewReader("sku,precio\nA1,3\n"))
	assert.Error(t, err, "sin columna de nombre")

	_, err = parseCatalog(strings.NewReader("name,quantity\nTuerca,muchas\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "línea 2")

	_, err = parseCatalog(strings.NewReader("name,price\nTuerca,abc\n"))
	assert.Error(t, err)
}

func TestDecodeCatalog_Latin1(t *testing.T) {
	utf := "nombre,categoría\nCañería,Fontanería\n"
	latin, err := charmap.ISO8859_1.NewEncoder().String(utf)
	require.NoError(t, err)

	r, err := decodeCatalog([]byte(latin), "auto")
	require.NoError(t, err)
	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, utf, string(got))

	r, err = decodeCatalog([]byte("\xef\xbb\xbf"+utf), "auto")
	require.NoError(t, err)
	got, err = io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, utf, string(got), "BOM removido")

	_, err = decodeCatalog([]byte(utf), "ebcdic")
	assert.Error(t, err)
}
