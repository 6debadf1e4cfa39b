package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/santoko/kasir-api/pkg/jwt"
)

const (
	testSecret = "test-secret-key-for-unit-tests"
	testIssuer = "kasir-api-test"
)

func TestGenerateParse_RoundTrip(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, 7, 1, 3, testIssuer, 60)
	require.NoError(t, err)

	userID, storeID, warehouseID, err := pkgjwt.Parse(testSecret, tok)
	require.NoError(t, err)
	assert.Equal(t, int64(7), userID)
	assert.Equal(t, int64(1), storeID)
	assert.Equal(t, int64(3), warehouseID)
}

func TestParse_WrongSecret(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, 7, 1, 3, testIssuer, 60)
	require.NoError(t, err)

	_, _, _, err = pkgjwt.Parse("some-other-secret", tok)
	assert.Error(t, err)
}

func TestParse_ExpiredToken(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, 7, 1, 3, testIssuer, -5)
	require.NoError(t, err)

	_, _, _, err = pkgjwt.Parse(testSecret, tok)
	assert.Error(t, err)
}

func TestParse_Garbage(t *testing.T) {
	_, _, _, err := pkgjwt.Parse(testSecret, "not.a.token")
	assert.Error(t, err)
}

func TestGenerate_EmptySecret(t *testing.T) {
	_, err := pkgjwt.Generate("", 7, 1, 3, testIssuer, 60)
	assert.Error(t, err)
}
