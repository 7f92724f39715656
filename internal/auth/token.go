package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/BruksfildServices01/smart-hire/internal/actor"
	"github.com/BruksfildServices01/smart-hire/internal/models"
)

var ErrInvalidToken = errors.New("invalid token")

type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewIssuer(secret string, ttl time.Duration) *Issuer {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Issuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (i *Issuer) Issue(u *models.User) (string, error) {
	now := i.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  u.ID,
		"role": u.Role,
		"name": u.Name,
		"iat":  now.Unix(),
		"exp":  now.Add(i.ttl).Unix(),
	})
	return token.SignedString(i.secret)
}

func (i *Issuer) Parse(tokenString string) (actor.Actor, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenMalformed
		}
		return i.secret, nil
	}, jwt.WithTimeFunc(i.now), jwt.WithLeeway(5*time.Second))
	if err != nil || !token.Valid {
		return actor.Actor{}, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return actor.Actor{}, ErrInvalidToken
	}

	sub, _ := claims["sub"].(string)
	role, _ := claims["role"].(string)
	name, _ := claims["name"].(string)
	if sub == "" || (role != actor.RoleProvider && role != actor.RoleSeeker) {
		return actor.Actor{}, ErrInvalidToken
	}

	return actor.Actor{ID: sub, Role: role, Name: name}, nil
}
