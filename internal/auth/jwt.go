package auth

import (
	"crypto"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/shixiaoya/materials/internal/model"
)

// JwtClaims represents JWT claims
type JwtClaims struct {
	jwt.RegisteredClaims
	Username string `json:"username"`
	Role     string `json:"role"`
}

// Jwt represents signed jwt and unix expires at
type Jwt struct {
	Signed    string
	ExpiresAt int64
}

// JwtIssuer issues jwt according to config
type JwtIssuer struct {
	issuer     string
	method     jwt.SigningMethod
	timeToLive time.Duration
	privateKey crypto.PrivateKey
}

// NewJwtIssuer builds JwtIssuer
func NewJwtIssuer(issuer string, method jwt.SigningMethod, ttl time.Duration, key crypto.PrivateKey) *JwtIssuer {
	return &JwtIssuer{
		issuer:     issuer,
		method:     method,
		timeToLive: ttl,
		privateKey: key,
	}
}

// Sign issues new jwt for provided user id
func (j *JwtIssuer) Sign(userID, username, role string, issuedAt time.Time) (*Jwt, error) {
	expiresAt := issuedAt.Add(j.timeToLive)

	claims := JwtClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    j.issuer,
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
		},
		Username: username,
		Role:     role,
	}

	token := jwt.NewWithClaims(j.method, claims)

	signed, err := token.SignedString(j.privateKey)
	if err != nil {
		return nil, err
	}

	return &Jwt{Signed: signed, ExpiresAt: expiresAt.Unix()}, nil
}

// JwtValidator verifies jwt according to config
type JwtValidator struct {
	method    jwt.SigningMethod
	publicKey crypto.PublicKey
}

// NewJwtValidator builds new JwtValidator
func NewJwtValidator(method jwt.SigningMethod, key crypto.PublicKey) *JwtValidator {
	return &JwtValidator{publicKey: key, method: method}
}

// Verify checks if jwt valid
func (j *JwtValidator) Verify(rawToken string) (JwtClaims, error) {
	var claims JwtClaims
	if _, err := jwt.ParseWithClaims(rawToken, &claims, j.keyFunc); err != nil {
		return JwtClaims{}, err
	}
	return claims, nil
}

func (j *JwtValidator) keyFunc(token *jwt.Token) (any, error) {
	if token.Method.Alg() != j.method.Alg() {
		return nil, errors.New("failed to verify signing algorithm")
	}
	return j.publicKey, nil
}

// RefreshTokenIssuer issues refresh tokens according to config
type RefreshTokenIssuer struct {
	maxCount   int
	timeToLive time.Duration
}

// NewRefreshTokenIssuer builds new RefreshTokenIssuer
func NewRefreshTokenIssuer(maxCount int, ttl time.Duration) *RefreshTokenIssuer {
	return &RefreshTokenIssuer{maxCount: maxCount, timeToLive: ttl}
}

// Sign issues new refresh token for user and fingerprint
func (r *RefreshTokenIssuer) Sign(userID, fingerprint string, at time.Time) model.RefreshToken {
	return model.RefreshToken{
		ID:          uuid.NewString(),
		UserID:      userID,
		Fingerprint: fingerprint,
		ExpiresIn:   int(r.timeToLive.Seconds()),
		CreatedAt:   at,
	}
}

// TokensMaxCount returns max number of refresh tokens allowed per user
func (r *RefreshTokenIssuer) TokensMaxCount() int {
	return r.maxCount
}

// VerifyRefreshToken checks that token belongs to fingerprint and is not expired
func VerifyRefreshToken(t model.RefreshToken, fingerprint string, at time.Time) error {
	if t.Fingerprint != fingerprint {
		return errors.New("refresh token fingerprint mismatch")
	}
	if t.CreatedAt.Add(time.Duration(t.ExpiresIn) * time.Second).Before(at) {
		return errors.New("refresh token is expired")
	}
	return nil
}
