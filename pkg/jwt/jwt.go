package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Tipos de token. Un refresh token nunca se acepta como access token y viceversa.
const (
	TypeAccess  = "access"
	TypeRefresh = "refresh"
)

// ErrWrongType el token es válido pero no del tipo esperado.
var ErrWrongType = errors.New("jwt: tipo de token inesperado")

// AccessClaims claims del access token: identidad completa para el gate de autorización sin consultar la DB.
type AccessClaims struct {
	jwt.RegisteredClaims
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Role  int    `json:"role_id"` // 1 admin | 2 vendedor | 3 cliente
	Type  string `json:"typ"`
}

// RefreshClaims claims del refresh token: solo el id del usuario. El jti (RegisteredClaims.ID)
// es la clave en el almacén de sesiones.
type RefreshClaims struct {
	jwt.RegisteredClaims
	ID   int64  `json:"id"`
	Type string `json:"typ"`
}

// GenerateAccess firma un access token con {id, email, role}.
func GenerateAccess(secret, issuer string, id int64, email string, role int, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	now := time.Now()
	claims := AccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   fmt.Sprint(id),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		ID:    id,
		Email: email,
		Role:  role,
		Type:  TypeAccess,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// GenerateRefresh firma un refresh token con {id} y el identificador jti. Devuelve también la expiración.
func GenerateRefresh(secret, issuer string, id int64, jti string, ttl time.Duration) (string, time.Time, error) {
	if secret == "" {
		return "", time.Time{}, fmt.Errorf("jwt: secret vacío")
	}
	now := time.Now()
	exp := now.Add(ttl)
	claims := RefreshClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			Issuer:    issuer,
			Subject:   fmt.Sprint(id),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
		ID:   id,
		Type: TypeRefresh,
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return tok, exp, nil
}

// ParseAccess valida firma, expiración y tipo, y devuelve los claims del access token.
func ParseAccess(secret, tokenString string) (*AccessClaims, error) {
	claims := &AccessClaims{}
	if err := parse(secret, tokenString, claims); err != nil {
		return nil, err
	}
	if claims.Type != TypeAccess {
		return nil, ErrWrongType
	}
	return claims, nil
}

// ParseRefresh valida firma, expiración y tipo, y devuelve los claims del refresh token.
func ParseRefresh(secret, tokenString string) (*RefreshClaims, error) {
	claims := &RefreshClaims{}
	if err := parse(secret, tokenString, claims); err != nil {
		return nil, err
	}
	if claims.Type != TypeRefresh || claims.RegisteredClaims.ID == "" {
		return nil, ErrWrongType
	}
	return claims, nil
}

func parse(secret, tokenString string, claims jwt.Claims) error {
	if secret == "" {
		return fmt.Errorf("jwt: secret vacío")
	}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return err
	}
	if !token.Valid {
		return fmt.Errorf("claims inválidos")
	}
	return nil
}
