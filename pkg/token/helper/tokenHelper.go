package helper

import (
	"crypto/rsa"
	"errors"
	"time"

	"github.com/gatherhub/gatherhub/pkg/model"
	"github.com/google/uuid"
	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// GenerateAccessToken signs a short-lived RS256 token carrying the user as a claim. Handlers read
// the user back out of the token instead of hitting the database on every request.
func GenerateAccessToken(user *model.User, key *rsa.PrivateKey, expirationInSeconds int) (string, error) {
	now := time.Now()

	token, err := jwt.NewBuilder().
		IssuedAt(now).
		Expiration(now.Add(time.Duration(expirationInSeconds) * time.Second)).
		Claim("user", user).
		Build()
	if err != nil {
		return "", err
	}

	signed, err := jwt.Sign(token, jwt.WithKey(jwa.RS256, key))
	if err != nil {
		return "", err
	}

	return string(signed), nil
}

type refreshToken struct {
	SignedString string
	TokenId      string
	ExpiresIn    time.Duration
}

// GenerateRefreshToken signs an HS256 token whose jti is tracked in Redis so it can be revoked.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func GenerateRefreshToken(user *model.User, secretKey string, expirationInSeconds int) (*refreshToken, error) {
	now := time.Now()
	expiresIn := time.Duration(expirationInSeconds) * time.Second
	tokenId := uuid.NewString()

	token, err := jwt.NewBuilder().
		JwtID(tokenId).
		IssuedAt(now).
		Expiration(now.Add(expiresIn)).
		Claim("userId", user.ID).
		Build()
	if err != nil {
		return nil, err
	}

	signed, err := jwt.Sign(token, jwt.WithKey(jwa.HS256, []byte(secretKey)))
	if err != nil {
		return nil, err
	}

	return &refreshToken{
		SignedString: string(signed),
		TokenId:      tokenId,
		ExpiresIn:    expiresIn,
	}, nil
}

type refreshTokenClaims struct {
	UserId uint
	ID     string
}

//goland:noinspection GoExportedFuncWithUnexportedType
func ValidateRefreshToken(tokenString string, secretKey string) (*refreshTokenClaims, error) {
	token, err := jwt.Parse(
		[]byte(tokenString),
		jwt.WithKey(jwa.HS256, []byte(secretKey)),
		jwt.WithValidate(true),
	)
	if err != nil {
		return nil, err
	}

	claim, ok := token.Get("userId")
	if !ok {
		return nil, errors.New("userId not found in claims")
	}
	userId, ok := claim.(float64)
	if !ok {
		return nil, errors.New("userId claim isn't numeric")
	}

	return &refreshTokenClaims{
		UserId: uint(userId),
		ID:     token.JwtID(),
	}, nil
}
