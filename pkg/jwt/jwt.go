package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Roles carried in tokens. Admin is the privileged role: it may override
// invoice status and delete paid invoices.
const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

// Claims extends the standard JWT claims with the application's own fields.
// Role rides along so the middleware can make privilege decisions without a
// database lookup.
type Claims struct {
	jwt.RegisteredClaims
	EmployeeCode string `json:"employee_code"`
	Role         string `json:"role"` // "admin" | "staff"
}

// Generate signs a token carrying the employee code and role.
func Generate(secret, employeeCode, role, issuer string, expMinutes int) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: empty secret")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   employeeCode,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		EmployeeCode: employeeCode,
		Role:         role,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse validates the token and returns the employee code and role. Errors
// on invalid, expired, or wrongly signed tokens.
func Parse(secret, tokenString string) (employeeCode, role string, err error) {
	if secret == "" {
		return "", "", fmt.Errorf("jwt: empty secret")
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return "", "", err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return "", "", fmt.Errorf("invalid claims")
	}
	return claims.EmployeeCode, claims.Role, nil
}
