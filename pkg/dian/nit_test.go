package dian_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pagos-api/pkg/dian"
)

func TestValidateNITVerificationDigit(t *testing.T) {
	// 900123456 → suma ponderada 586, 586 mod 11 = 3, DV = 11-3 = 8
	assert.NoError(t, dian.ValidateNITVerificationDigit("900123456-8"))
	assert.NoError(t, dian.ValidateNITVerificationDigit("900.123.456-8"), "puntos y guiones se ignoran")
	assert.NoError(t, dian.ValidateNITVerificationDigit("9001234568"))

	assert.Error(t, dian.ValidateNITVerificationDigit("900123456-5"), "DV incorrecto")
	assert.Error(t, dian.ValidateNITVerificationDigit("900123456"), "sin DV")
	assert.Error(t, dian.ValidateNITVerificationDigit("12345"), "muy corto")
}

func TestComputeNITVerificationDigit(t *testing.T) {
	dv, err := dian.ComputeNITVerificationDigit("900123456")
	require.NoError(t, err)
	assert.Equal(t, byte('8'), dv)

	_, err = dian.ComputeNITVerificationDigit("123")
	assert.Error(t, err)
}
