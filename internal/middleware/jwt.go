package middleware

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/avalon-edu/campus-api/internal/models"
	"github.com/avalon-edu/campus-api/internal/utils"
)

// AccountClaims is the token payload issued for campus accounts. The subject
// carries the user ID; the role must be one of the campus roles so the
// capability policy can resolve it.
type AccountClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

var knownRoles = map[string]struct{}{
	models.RoleAdmin:   {},
	models.RoleTeacher: {},
	models.RoleStudent: {},
	models.RoleParent:  {},
}

// JWTProtected validates bearer tokens and stores the account identity in
// request locals for the capability middleware and handlers.
func JWTProtected(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authorization := c.Get("Authorization")
		if authorization == "" {
			return utils.SendError(c, fiber.StatusUnauthorized, "authorization header missing")
		}

		const bearer = "Bearer "
		if !strings.HasPrefix(strings.ToLower(authorization), strings.ToLower(bearer)) {
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid authorization header")
		}

		tokenString := strings.TrimSpace(authorization[len(bearer):])
		if tokenString == "" {
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid token")
		}

		var claims AccountClaims
		token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method")
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid token")
		}

		userID, err := claims.AccountID()
		if err != nil {
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid token subject")
		}

		role := claims.CampusRole()
		if role == "" {
			return utils.SendError(c, fiber.StatusUnauthorized, "unknown account role")
		}

		c.Locals("user_id", userID)
		c.Locals("user_role", role)

		return c.Next()
	}
}

// AccountID parses the token subject into a user ID.
func (c AccountClaims) AccountID() (uint, error) {
	parsed, err := strconv.ParseUint(strings.TrimSpace(c.Subject), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse subject: %w", err)
	}

	return uint(parsed), nil
}

// CampusRole returns the normalized role, or "" when the token carries a role
// the policy table does not know.
func (c AccountClaims) CampusRole() string {
	role := strings.ToLower(strings.TrimSpace(c.Role))
	if _, ok := knownRoles[role]; !ok {
		return ""
	}

	return role
}
