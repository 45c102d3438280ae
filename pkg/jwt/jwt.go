package jwt

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims incluye los claims estándar JWT más la identidad del principal.
// El proveedor de identidad emite email y nombre; el id local se resuelve por email.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Principal identidad autenticada extraída del token.
type Principal struct {
	Email string
	Name  string
}

// Generate genera un token JWT firmado (HS256) para email y nombre.
func Generate(secret, email, name, issuer string, expMinutes int) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		Email: email,
		Name:  name,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse valida el token y devuelve el principal. Si issuer no está vacío también se verifica.
// Retorna error si el token es inválido, expirado, con firma incorrecta o sin email.
func Parse(secret, issuer, tokenString string) (Principal, error) {
	if secret == "" {
		return Principal{}, fmt.Errorf("jwt: secret vacío")
	}
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if issuer != "" {
		opts = append(opts, jwt.WithIssuer(issuer))
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, opts...)
	if err != nil {
		return Principal{}, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return Principal{}, fmt.Errorf("claims inválidos")
	}
	email := strings.ToLower(strings.TrimSpace(claims.Email))
	if email == "" {
		return Principal{}, fmt.Errorf("jwt: token sin email")
	}
	return Principal{Email: email, Name: claims.Name}, nil
}
