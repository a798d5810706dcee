package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/quotable/quotes-api/internal/core/domain"
)

// ActorKey is the echo context key under which the request actor is stored.
const ActorKey = "actor"

// Auth validates the bearer credential and injects the actor into context.
// Requests without a valid credential are rejected with 401.
func Auth(jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			actor, err := actorFromHeader(c, jwtSecret)
			if err != nil {
				return err
			}
			c.Set(ActorKey, actor)
			return next(c)
		}
	}
}

// OptionalAuth injects the actor when a valid credential is present and
// continues as anonymous otherwise. An invalid token is not an error on
// these routes.
func OptionalAuth(jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			actor, err := actorFromHeader(c, jwtSecret)
			if err != nil {
				actor = domain.Anonymous()
			}
			c.Set(ActorKey, actor)
			return next(c)
		}
	}
}

func actorFromHeader(c echo.Context, jwtSecret string) (domain.Actor, error) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return domain.Anonymous(), echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return domain.Anonymous(), echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
	}

	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(jwtSecret), nil
	})
	if err != nil || !tkn.Valid {
		return domain.Anonymous(), echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}

	id, ok := claims["id"].(float64)
	if !ok {
		return domain.Anonymous(), echo.NewHTTPError(http.StatusUnauthorized, "token missing identity")
	}
	role, _ := claims["role"].(string)

	return domain.ActorFor(int64(id), domain.Role(role)), nil
}
