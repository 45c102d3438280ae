package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/facturapp-api/pkg/jwt"
)

const secret = "secreto-de-pruebas"

func TestGenerateYParse(t *testing.T) {
	tok, err := jwt.Generate(secret, "Awa@Example.com", "Awa", "facturapp", 5)
	require.NoError(t, err)

	p, err := jwt.Parse(secret, "facturapp", tok)
	require.NoError(t, err)
	assert.Equal(t, "awa@example.com", p.Email)
	assert.Equal(t, "Awa", p.Name)
}

func TestParse_Rechazos(t *testing.T) {
	tok, err := jwt.Generate(secret, "a@b.co", "A", "facturapp", 5)
	require.NoError(t, err)

	_, err = jwt.Parse("otro-secreto", "", tok)
	assert.Error(t, err, "firma incorrecta")

	_, err = jwt.Parse(secret, "otro-emisor", tok)
	assert.Error(t, err, "emisor distinto")

	expired, err := jwt.Generate(secret, "a@b.co", "A", "", -1)
	require.NoError(t, err)
	_, err = jwt.Parse(secret, "", expired)
	assert.Error(t, err, "expirado")

	noEmail, err := jwt.Generate(secret, "", "A", "", 5)
	require.NoError(t, err)
	_, err = jwt.Parse(secret, "", noEmail)
	assert.Error(t, err)

	_, err = jwt.Generate("", "a@b.co", "A", "", 5)
	assert.Error(t, err)
}
