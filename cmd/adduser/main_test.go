package main

import (
	"context"
	"io"
	"testing"

	"projectledger/config"
	"projectledger/database/dbtest"
	"projectledger/logger"
	"projectledger/models"
	"projectledger/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	opts, err := parseFlags([]string{"-user", "alice", "-role", "admin", "-password", "secret-a"}, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, "alice", opts.username)
	assert.Equal(t, models.RoleAdmin, opts.role)
	assert.False(t, opts.reset)

	opts, err = parseFlags([]string{"-user", "admin", "-reset"}, io.Discard)
	require.NoError(t, err)
	assert.True(t, opts.reset)
	assert.Equal(t, models.RoleMember, opts.role)

	_, err = parseFlags([]string{"-role", "member"}, io.Discard)
	assert.Error(t, err)

	_, err = parseFlags([]string{"-user", "x", "-role", "root"}, io.Discard)
	assert.Error(t, err)
}

func TestApply(t *testing.T) {
	ctx := context.Background()
	users := service.New(dbtest.Open(t), &config.Config{}, logger.Nop()).Users

	msg, err := apply(ctx, users, &options{username: "carol", password: "secret-c", role: models.RoleAdmin})
	require.NoError(t, err)
	assert.Contains(t, msg, "carol")

	u, err := users.Authenticate(ctx, "carol", "secret-c")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, u.Role)

	// 重置密码后旧密码失效
	_, err = apply(ctx, users, &options{username: "carol", password: "rotated-1", reset: true})
	require.NoError(t, err)
	_, err = users.Authenticate(ctx, "carol", "secret-c")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	_, err = users.Authenticate(ctx, "carol", "rotated-1")
	assert.NoError(t, err)

	// 重复创建
	_, err = apply(ctx, users, &options{username: "carol", password: "secret-c", role: models.RoleMember})
	assert.ErrorIs(t, err, service.ErrDuplicateUsername)

	// 重置不存在的用户
	_, err = apply(ctx, users, &options{username: "nobody", password: "secret-x", reset: true})
	assert.ErrorIs(t, err, service.ErrNotFound)
}
