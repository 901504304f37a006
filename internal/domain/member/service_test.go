package member_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/library/internal/domain/member"
	"github.com/xiebiao/library/internal/testutil"
	apperrors "github.com/xiebiao/library/pkg/errors"
)

func TestRegisterMember(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	t.Run("正常注册", func(t *testing.T) {
		svc := member.NewService(testutil.NewMemberRepo())

		m, err := svc.RegisterMember(ctx, "reader@example.com", "passw0rd", "测试读者", "13800138000", "上海市", now)
		require.NoError(t, err)

		assert.Equal(t, member.StatusActive, m.Status)
		assert.Equal(t, now, m.DateRegistered)
		// 密码已加密,不落明文
		assert.NotEqual(t, "passw0rd", m.HashedPassword)
		assert.NotEmpty(t, m.HashedPassword)
	})

	t.Run("邮箱格式校验", func(t *testing.T) {
		svc := member.NewService(testutil.NewMemberRepo())

		_, err := svc.RegisterMember(ctx, "not-an-email", "passw0rd", "测试读者", "", "", now)
		assert.ErrorIs(t, err, apperrors.New(apperrors.ErrCodeInvalidParams, ""))
	})

	t.Run("密码强度校验", func(t *testing.T) {
		svc := member.NewService(testutil.NewMemberRepo())

		cases := []struct {
			name     string
			password string
		}{
			{"太短", "a1"},
			{"纯字母", "abcdefgh"},
			{"纯数字", "12345678"},
			{"太长", "a1234567890123456789x"},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := svc.RegisterMember(ctx, "reader@example.com", tc.password, "测试读者", "", "", now)
				assert.Error(t, err)
			})
		}
	})
}

func TestAuthenticateMember(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	t.Run("密码正确", func(t *testing.T) {
		svc := member.NewService(testutil.NewMemberRepo())
		registered, err := svc.RegisterMember(ctx, "reader@example.com", "passw0rd", "测试读者", "", "", now)
		require.NoError(t, err)

		m, err := svc.AuthenticateMember(ctx, "reader@example.com", "passw0rd")
		require.NoError(t, err)
		assert.Equal(t, registered.ID, m.ID)
	})

	t.Run("密码错误", func(t *testing.T) {
		svc := member.NewService(testutil.NewMemberRepo())
		_, err := svc.RegisterMember(ctx, "reader@example.com", "passw0rd", "测试读者", "", "", now)
		require.NoError(t, err)

		_, err = svc.AuthenticateMember(ctx, "reader@example.com", "wr0ngpass")
		assert.Error(t, err)
	})

	t.Run("账户不存在", func(t *testing.T) {
		svc := member.NewService(testutil.NewMemberRepo())

		_, err := svc.AuthenticateMember(ctx, "ghost@example.com", "passw0rd")
		assert.ErrorIs(t, err, member.ErrMemberNotFound)
	})
}

func TestAuthenticateLibrarian(t *testing.T) {
	ctx := context.Background()

	t.Run("停用账户不允许登录", func(t *testing.T) {
		repo := testutil.NewMemberRepo()
		svc := member.NewService(repo)

		l, err := svc.CreateLibrarian(ctx, "staff@example.com", "passw0rd", "前台馆员", member.RoleLibrarian)
		require.NoError(t, err)
		l.IsActive = false

		_, err = svc.AuthenticateLibrarian(ctx, "staff@example.com", "passw0rd")
		assert.ErrorIs(t, err, apperrors.ErrForbidden)
	})

	t.Run("正常登录", func(t *testing.T) {
		svc := member.NewService(testutil.NewMemberRepo())

		_, err := svc.CreateLibrarian(ctx, "staff@example.com", "passw0rd", "前台馆员", member.RoleAdmin)
		require.NoError(t, err)

		l, err := svc.AuthenticateLibrarian(ctx, "staff@example.com", "passw0rd")
		require.NoError(t, err)
		assert.Equal(t, member.RoleAdmin, l.Role)
	})
}

func TestCreateLibrarian(t *testing.T) {
	ctx := context.Background()

	t.Run("未知角色被拒", func(t *testing.T) {
		svc := member.NewService(testutil.NewMemberRepo())

		_, err := svc.CreateLibrarian(ctx, "staff@example.com", "passw0rd", "馆员", member.Role("Intern"))
		assert.ErrorIs(t, err, apperrors.New(apperrors.ErrCodeInvalidParams, ""))
	})
}
