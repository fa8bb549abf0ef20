package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quanpham-dev/warehouse-api/pkg/jwt"
)

const (
	testSecret = "unit-test-secret"
	testIssuer = "warehouse-api-test"
)

func TestGenerateAndParse_RoundTrip(t *testing.T) {
	tok, err := jwt.Generate(testSecret, "EMP07", jwt.RoleStaff, testIssuer, 60)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	employeeCode, role, err := jwt.Parse(testSecret, tok)
	require.NoError(t, err)
	assert.Equal(t, "EMP07", employeeCode)
	assert.Equal(t, jwt.RoleStaff, role)
}

func TestGenerate_EmptySecret(t *testing.T) {
	_, err := jwt.Generate("", "EMP07", jwt.RoleStaff, testIssuer, 60)
	assert.Error(t, err)
}

func TestParse_WrongSecret(t *testing.T) {
	tok, err := jwt.Generate(testSecret, "EMP07", jwt.RoleAdmin, testIssuer, 60)
	require.NoError(t, err)

	_, _, err = jwt.Parse("a-completely-different-secret", tok)
	assert.Error(t, err)
}

func TestParse_ExpiredToken(t *testing.T) {
	tok, err := jwt.Generate(testSecret, "EMP07", jwt.RoleAdmin, testIssuer, -1)
	require.NoError(t, err)

	_, _, err = jwt.Parse(testSecret, tok)
	assert.Error(t, err)
}

func TestParse_Garbage(t *testing.T) {
	_, _, err := jwt.Parse(testSecret, "not.a.token")
	assert.Error(t, err)
}
