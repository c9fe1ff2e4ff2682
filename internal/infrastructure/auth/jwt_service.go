package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/josamcode/shiftswaper-backend/domain"
)

// JWTServiceImpl implements domain.TokenService
type JWTServiceImpl struct {
	secretKey []byte
	issuer    string
	accessTTL time.Duration
}

// NewJWTService creates a new JWT service
func NewJWTService(secretKey, issuer string, accessTTL time.Duration) domain.TokenService {
	return &JWTServiceImpl{
		secretKey: []byte(secretKey),
		issuer:    issuer,
		accessTTL: accessTTL,
	}
}

// TTL implements domain.TokenService
func (j *JWTServiceImpl) TTL() time.Duration { return j.accessTTL }

// Generate implements domain.TokenService. IssuedAt and ExpiresAt on the
// input are ignored; the service stamps its own clock.
func (j *JWTServiceImpl) Generate(claims domain.TokenClaims) (string, error) {
	now := time.Now()
	mapClaims := jwt.MapClaims{
		"sub_type":   claims.SubjectType,
		"sub_id":     claims.SubjectID,
		"company_id": claims.CompanyID,
		"session_id": claims.SessionID,
		"iss":        j.issuer,
		"iat":        now.Unix(),
		"exp":        now.Add(j.accessTTL).Unix(),
		"jti":        uuid.NewString(),
	}
	if claims.Position != "" {
		mapClaims["position"] = claims.Position
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, mapClaims)
	return token.SignedString(j.secretKey)
}

// Validate implements domain.TokenService
func (j *JWTServiceImpl) Validate(tokenString string) (*domain.TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.ErrTokenInvalid
		}
		return j.secretKey, nil
	})
	if err != nil || !token.Valid {
		return nil, domain.ErrTokenInvalid
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, domain.ErrTokenInvalid
	}

	subjectType, ok := claims["sub_type"].(string)
	if !ok {
		return nil, domain.ErrTokenInvalid
	}
	subjectID, ok := claims["sub_id"].(float64)
	if !ok {
		return nil, domain.ErrTokenInvalid
	}
	companyID, ok := claims["company_id"].(float64)
	if !ok {
		return nil, domain.ErrTokenInvalid
	}
	sessionID, ok := claims["session_id"].(string)
	if !ok {
		return nil, domain.ErrTokenInvalid
	}
	exp, ok := claims["exp"].(float64)
	if !ok {
		return nil, domain.ErrTokenInvalid
	}
	if time.Unix(int64(exp), 0).Before(time.Now()) {
		return nil, domain.ErrTokenExpired
	}

	iat, _ := claims["iat"].(float64)
	position, _ := claims["position"].(string)

	return &domain.TokenClaims{
		SubjectType: subjectType,
		SubjectID:   uint(subjectID),
		CompanyID:   uint(companyID),
		Position:    position,
		SessionID:   sessionID,
		IssuedAt:    int64(iat),
		ExpiresAt:   int64(exp),
	}, nil
}
