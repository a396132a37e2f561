package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtract(t *testing.T) {
	text := `STATEMENT OF ACCOUNT FOR March 2024
Name: Sample Officer
A/C No: 12345678901
PAN: ABCDE1234F`

	id := Extract(text)
	assert.Equal(t, "Sample Officer", id.Name)
	assert.Equal(t, "12345678901", id.AccountNumber)
	assert.Equal(t, "ABCDE1234F", id.PANNumber)
	assert.Equal(t, "March", id.Month)
	assert.Equal(t, 2024, id.Year)
}

func TestExtract_NumericPeriod(t *testing.T) {
	id := Extract("PAY SLIP FOR 03/2024")
	assert.Equal(t, "March", id.Month)
	assert.Equal(t, 2024, id.Year)
}

func TestExtract_MaskedAccount(t *testing.T) {
	id := Extract("Account XXXXXXXX6323 credited")
	assert.Equal(t, "6323", id.AccountNumber)
}

func TestExtract_MissingFieldsStayZero(t *testing.T) {
	id := Extract("no identity material at all")
	assert.Empty(t, id.Name)
	assert.Empty(t, id.AccountNumber)
	assert.Empty(t, id.PANNumber)
	assert.Empty(t, id.Month)
	assert.Zero(t, id.Year)
}
