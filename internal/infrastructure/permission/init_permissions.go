package permission

import (
	"fmt"

	"github.com/sahay-inc/sahay/internal/domain/permission"
	"github.com/sahay-inc/sahay/internal/shared/logger"
)

// InitDefaultPolicies writes the built-in role grants and the officer rank
// hierarchy into the policy store. Adding an existing rule is a no-op, so
// the call is repeated on every startup.
func InitDefaultPolicies(enforcer *Enforcer, log logger.Interface) error {
	for _, policy := range permission.DefaultPolicies() {
		if err := enforcer.AddPolicy(policy[0], policy[1], policy[2]); err != nil {
			log.Errorw("failed to add permission policy",
				"error", err,
				"role", policy[0],
				"resource", policy[1],
				"action", policy[2])
			return fmt.Errorf("failed to add policy [%s, %s, %s]: %w",
				policy[0], policy[1], policy[2], err)
		}
	}

	for _, link := range permission.RoleInheritance() {
		if err := enforcer.AddRoleForUser(link[0], link[1]); err != nil {
			log.Errorw("failed to add role inheritance",
				"error", err,
				"role", link[0],
				"inherits", link[1])
			return fmt.Errorf("failed to link roles [%s, %s]: %w", link[0], link[1], err)
		}
	}

	log.Info("default permission policies initialized")
	return nil
}
