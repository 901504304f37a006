package member

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/library/internal/domain/member"
	"github.com/xiebiao/library/internal/testutil"
	apperrors "github.com/xiebiao/library/pkg/errors"
)

func TestSearchMembers(t *testing.T) {
	ctx := context.Background()

	seed := func() (*testutil.MemberRepo, *ManageMemberUseCase) {
		repo := testutil.NewMemberRepo()
		repo.AddMember(&member.Member{
			Email:       "zhangsan@example.com",
			FullName:    "张三",
			PhoneNumber: "13800000001",
			Status:      member.StatusActive,
		})
		repo.AddMember(&member.Member{
			Email:       "lisi@example.com",
			FullName:    "李四",
			PhoneNumber: "13900000002",
			Status:      member.StatusActive,
		})
		return repo, NewManageMemberUseCase(repo)
	}

	t.Run("按姓名查找", func(t *testing.T) {
		_, uc := seed()

		result, err := uc.Search(ctx, "张")
		require.NoError(t, err)
		require.Len(t, result, 1)
		assert.Equal(t, "张三", result[0].FullName)
	})

	t.Run("按邮箱查找不区分大小写", func(t *testing.T) {
		_, uc := seed()

		result, err := uc.Search(ctx, "LISI")
		require.NoError(t, err)
		require.Len(t, result, 1)
		assert.Equal(t, "lisi@example.com", result[0].Email)
	})

	t.Run("按电话查找", func(t *testing.T) {
		_, uc := seed()

		result, err := uc.Search(ctx, "139000")
		require.NoError(t, err)
		require.Len(t, result, 1)
		assert.Equal(t, "李四", result[0].FullName)
	})

	t.Run("命中多条按ID排序", func(t *testing.T) {
		_, uc := seed()

		result, err := uc.Search(ctx, "example.com")
		require.NoError(t, err)
		require.Len(t, result, 2)
		assert.Equal(t, "张三", result[0].FullName)
		assert.Equal(t, "李四", result[1].FullName)
	})

	t.Run("无命中返回空列表", func(t *testing.T) {
		_, uc := seed()

		result, err := uc.Search(ctx, "王五")
		require.NoError(t, err)
		assert.Empty(t, result)
	})

	t.Run("关键字不能为空", func(t *testing.T) {
		_, uc := seed()

		_, err := uc.Search(ctx, "")
		assert.ErrorIs(t, err, apperrors.New(apperrors.ErrCodeInvalidParams, "查询关键字不能为空"))
	})
}
