package middleware

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/campus-hub/academy-api/internal/utils"
)

// Policy is a declarative table mapping an operation name to the set of roles
// allowed to perform it. The whole API consults one table through a single
// authorization gate instead of scattering role checks across handlers.
type Policy map[string][]string

// Allows reports whether the role may perform the named operation.
func (p Policy) Allows(operation, role string) bool {
	allowed, ok := p[operation]
	if !ok {
		return false
	}

	normalized := strings.ToLower(strings.TrimSpace(role))
	for _, candidate := range allowed {
		if strings.ToLower(strings.TrimSpace(candidate)) == normalized && normalized != "" {
			return true
		}
	}
	return false
}

// Authorize returns the authorization gate for one operation. It reads the
// authenticated role from the request context and consults the policy table.
func Authorize(policy Policy, operation string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := normalizeRoleValue(c.Locals("user_role"))
		if !policy.Allows(operation, role) {
			return utils.SendError(c, fiber.StatusForbidden, "insufficient permissions")
		}
		return c.Next()
	}
}

func normalizeRoleValue(value interface{}) string {
	switch v := value.(type) {
	case string:
		return strings.ToLower(strings.TrimSpace(v))
	case fmt.Stringer:
		return strings.ToLower(strings.TrimSpace(v.String()))
	default:
		if value == nil {
			return ""
		}
		return strings.ToLower(strings.TrimSpace(fmt.Sprintf("%v", value)))
	}
}
