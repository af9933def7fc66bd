package server

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const tokenTTL = 12 * time.Hour

type tokenRequest struct {
	Secret string `json:"secret"`
}

// handleToken exchanges the shared secret for a short-lived bearer token.
// Disabled (404) when no secret is configured.
func (s *Server) handleToken(c *fiber.Ctx) error {
	if s.cfg.AuthSecret == "" {
		return fiber.NewError(fiber.StatusNotFound, "Auth is not enabled.")
	}

	var req tokenRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body.")
	}
	if req.Secret != s.cfg.AuthSecret {
		return fiber.NewError(fiber.StatusUnauthorized, "Invalid secret.")
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"iat": now.Unix(),
		"exp": now.Add(tokenTTL).Unix(),
	})
	signed, err := token.SignedString([]byte(s.cfg.AuthSecret))
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"token": signed})
}

// requireAuth verifies the bearer token on every API route when a secret
// is configured. Without one the dashboard runs open, the expected mode
// for a localhost deployment.
func (s *Server) requireAuth(c *fiber.Ctx) error {
	if s.cfg.AuthSecret == "" {
		return c.Next()
	}

	header := c.Get(fiber.HeaderAuthorization)
	raw, found := strings.CutPrefix(header, "Bearer ")
	if !found {
		return fiber.NewError(fiber.StatusUnauthorized, "Missing bearer token.")
	}

	_, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.cfg.AuthSecret), nil
	})
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "Invalid bearer token.")
	}
	return c.Next()
}
