package jwt

import (
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/negatiview/negatiview/internal/models"
)

// Codec errors
var (
	// ErrInvalidToken indicates signature mismatch, malformed payload or expiry violation
	ErrInvalidToken = errors.New("invalid token")

	// ErrSigning indicates malformed key material or a signing failure
	ErrSigning = errors.New("token signing failed")
)

// Claims представляет полезную нагрузку токена
// Subject — ID пользователя, ID (jti) — уникальный идентификатор токена,
// служащий ключом записи сессии в кэше
type Claims struct {
	jwt.RegisteredClaims
}

// Codec encodes and decodes signed, time-bounded tokens for one token class.
// Two instances exist per server: one for access tokens, one for refresh tokens,
// each with its own key material and TTL.
type Codec struct {
	method    jwt.SigningMethod
	signKey   any
	verifyKey any
	ttl       time.Duration
}

// NewHS256 creates a codec signing with a shared symmetric secret
func NewHS256(secret string, ttl time.Duration) *Codec {
	key := []byte(secret)
	return &Codec{
		method:    jwt.SigningMethodHS256,
		signKey:   key,
		verifyKey: key,
		ttl:       ttl,
	}
}

// NewRS256 creates a codec signing with an RSA keypair
// Both keys are base64-encoded PEM blocks (the deployment format)
func NewRS256(privateKeyBase64, publicKeyBase64 string, ttl time.Duration) (*Codec, error) {
	privatePEM, err := base64.StdEncoding.DecodeString(privateKeyBase64)
	if err != nil {
		return nil, fmt.Errorf("%w: decode private key: %w", ErrSigning, err)
	}
	publicPEM, err := base64.StdEncoding.DecodeString(publicKeyBase64)
	if err != nil {
		return nil, fmt.Errorf("%w: decode public key: %w", ErrSigning, err)
	}

	privateKey, err := jwt.ParseRSAPrivateKeyFromPEM(privatePEM)
	if err != nil {
		return nil, fmt.Errorf("%w: parse private key: %w", ErrSigning, err)
	}
	publicKey, err := jwt.ParseRSAPublicKeyFromPEM(publicPEM)
	if err != nil {
		return nil, fmt.Errorf("%w: parse public key: %w", ErrSigning, err)
	}

	return &Codec{
		method:    jwt.SigningMethodRS256,
		signKey:   privateKey,
		verifyKey: publicKey,
		ttl:       ttl,
	}, nil
}

// TTL returns the validity window of tokens issued by this codec
func (c *Codec) TTL() time.Duration {
	return c.ttl
}

// Issue creates a new signed token for subjectID
// Каждый вызов генерирует свежий jti: идентификатор токена никогда
// не переиспользуется между сессиями
func (c *Codec) Issue(subjectID string) (*models.TokenDetails, error) {
	now := time.Now().UTC()
	expiresAt := now.Add(c.ttl)
	tokenID := uuid.New().String()

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subjectID,
			ID:        tokenID,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(c.method, claims)
	tokenString, err := token.SignedString(c.signKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSigning, err)
	}

	return &models.TokenDetails{
		Token:     tokenString,
		TokenID:   tokenID,
		ExpiresAt: expiresAt,
	}, nil
}

// Verify validates signature, expiry and not-before, and returns the claims.
// Проверка записи сессии в кэше сюда не входит — это отдельный,
// композируемый шаг в middleware.
func (c *Codec) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Проверяем что используется правильный алгоритм подписи
		if token.Method.Alg() != c.method.Alg() {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return c.verifyKey, nil
	}, jwt.WithExpirationRequired())

	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	// Токен без jti или subject бесполезен для отслеживания сессии
	if claims.ID == "" || claims.Subject == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
