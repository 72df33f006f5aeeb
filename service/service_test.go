package service

import (
	"context"
	"testing"

	"projectledger/config"
	"projectledger/database/dbtest"
	"projectledger/logger"
	"projectledger/models"

	"github.com/stretchr/testify/require"
)

// fixture 一个项目、一个管理员、两个普通成员
type fixture struct {
	svc     *Services
	admin   models.Session
	alice   models.Session
	bob     models.Session
	project *models.Project
}

func newTestServices(t *testing.T, cfg *config.Config) *Services {
	t.Helper()
	if cfg == nil {
		cfg = &config.Config{Export: config.ExportConfig{Title: "Expense report"}}
	}
	return New(dbtest.Open(t), cfg, logger.Nop())
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	svc := newTestServices(t, nil)

	_, err := svc.Users.EnsureBootstrapAdmin(ctx, "admin", "admin123")
	require.NoError(t, err)
	admin, err := svc.Users.Authenticate(ctx, "admin", "admin123")
	require.NoError(t, err)
	alice, err := svc.Users.Register(ctx, "alice", "secret-a", models.RoleMember)
	require.NoError(t, err)
	bob, err := svc.Users.Register(ctx, "bob", "secret-b", models.RoleMember)
	require.NoError(t, err)

	f := &fixture{
		svc:   svc,
		admin: models.SessionFor(admin),
		alice: models.SessionFor(alice),
		bob:   models.SessionFor(bob),
	}
	f.project, err = svc.Projects.Create(ctx, f.admin, "Renovation")
	require.NoError(t, err)
	return f
}
