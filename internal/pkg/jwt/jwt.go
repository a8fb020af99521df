package jwt

import (
	"time"

	"github.com/cmlabs-hris/hris-shift-go/internal/domain/employee"
	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

const sseTokenLifetime = 5 * time.Minute

type Service interface {
	GenerateAccessToken(employeeID string, role employee.Role) (token string, expiresAt int64, err error)
	GenerateSSEToken(employeeID string) (token string, expiresIn int, err error)
	ValidateSSEToken(tokenString string) (employeeID string, err error)
	JWTAuth() *jwtauth.JWTAuth
}

type JWTService struct {
	accessTokenExpirationTime string
	tokenAuth                 *jwtauth.JWTAuth
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func NewJWTService(secretKey string, accessTokenExpirationTime string) Service {
	return &JWTService{
		accessTokenExpirationTime: accessTokenExpirationTime,
		tokenAuth:                 jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}
}

func (j *JWTService) GenerateAccessToken(employeeID string, role employee.Role) (token string, expiresAt int64, err error) {
	expDuration, err := time.ParseDuration(j.accessTokenExpirationTime)
	if err != nil {
		return "", 0, err
	}
	expiresAt = time.Now().Add(expDuration).Unix()

	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		"employee_id": employeeID,
		"role":        string(role),
		"type":        "access",
		"exp":         expiresAt,
	})
	return tokenString, expiresAt, err
}

// GenerateSSEToken generates a short-lived token for SSE connections
func (j *JWTService) GenerateSSEToken(employeeID string) (token string, expiresIn int, err error) {
	expiresAt := time.Now().Add(sseTokenLifetime).Unix()

	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		"employee_id": employeeID,
		"type":        "sse",
		"exp":         expiresAt,
	})
	if err != nil {
		return "", 0, err
	}

	return tokenString, int(sseTokenLifetime.Seconds()), nil
}

// ValidateSSEToken validates an SSE token and returns the employee ID
func (j *JWTService) ValidateSSEToken(tokenString string) (employeeID string, err error) {
	token, err := jwtauth.VerifyToken(j.tokenAuth, tokenString)
	if err != nil {
		return "", err
	}

	tokenType, ok := token.Get("type")
	if !ok || tokenType != "sse" {
		return "", jwt.ErrInvalidJWT()
	}

	idVal, ok := token.Get("employee_id")
	if !ok {
		return "", jwt.ErrInvalidJWT()
	}

	employeeID, ok = idVal.(string)
	if !ok || employeeID == "" {
		return "", jwt.ErrInvalidJWT()
	}

	return employeeID, nil
}
