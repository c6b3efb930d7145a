// Package auth guards the destructive admin endpoints.
//
// The portal has no user accounts. When ADMIN_TOKEN_HASH holds a bcrypt hash,
// the reset endpoints require "Authorization: Bearer <token>" whose bcrypt
// comparison against that hash succeeds. When it is empty, the endpoints
// stay open.
//
// Generate a hash with the CLI:
//
//	langportal hash-admin-token -token <secret>
//
// # Usage
//
//	guard := auth.NewAdminGuard(cfg.AdminTokenHash, auth.DefaultRateLimitConfig())
//	admin := api.Group("", guard.Handler())
//	admin.POST("/full_reset", resetController.FullReset)
package auth
