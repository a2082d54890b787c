package serverutils

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// AuthOptions configures AuthMiddleware. With both fields empty every request
// passes.
type AuthOptions struct {
	JWTSecret  string
	APIKeyHash string // bcrypt hash of the accepted X-API-Key value
}

func (o AuthOptions) Enabled() bool {
	return o.JWTSecret != "" || o.APIKeyHash != ""
}

// AuthMiddleware accepts a Bearer token signed with JWTSecret or an X-API-Key
// matching APIKeyHash.
func AuthMiddleware(opts AuthOptions) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		if !opts.Enabled() {
			return ctx.Next()
		}

		if opts.JWTSecret != "" {
			authHeader := ctx.Get("Authorization")
			if len(authHeader) >= 7 && authHeader[:7] == "Bearer " {
				subject, err := verifyToken(authHeader[7:], opts.JWTSecret)
				if err != nil {
					return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(401, "Invalid token"))
				}
				ctx.Locals("subject", subject)
				return ctx.Next()
			}
		}

		if opts.APIKeyHash != "" {
			if key := ctx.Get("X-API-Key"); key != "" {
				if bcrypt.CompareHashAndPassword([]byte(opts.APIKeyHash), []byte(key)) != nil {
					return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(401, "Invalid API key"))
				}
				ctx.Locals("subject", "api-key")
				return ctx.Next()
			}
		}

		return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(401, "Missing credentials"))
	}
}

func verifyToken(tokenStr, secret string) (string, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return "", ErrUnauthorized
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrUnauthorized
	}
	subject, _ := claims.GetSubject()
	if subject == "" {
		if id, ok := claims["user_id"].(string); ok {
			subject = id
		}
	}
	return subject, nil
}
