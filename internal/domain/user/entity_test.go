//go:build unit

package user_test

import (
	"testing"

	"evcharge-booking/internal/domain/user"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var cmpOpts = []cmp.Option{
	cmpopts.IgnoreUnexported(user.User{}),
	cmpopts.EquateEmpty(),
}

func TestNewUser(t *testing.T) {
	t.Run("基本成功ケース", func(t *testing.T) {
		email, err := user.NewEmail("taro@example.com")
		require.NoError(t, err)
		username, err := user.NewUsername("taro_123")
		require.NoError(t, err)

		actual := user.NewUser(email, username, "hashed_password", user.RoleUser)
		expected := user.NewUser(email, username, "hashed_password", user.RoleUser)

		if diff := cmp.Diff(expected, actual, cmpOpts...); diff != "" {
			t.Errorf("User mismatch (-want +got):\n%s", diff)
		}

		assert.NotEqual(t, uuid.Nil, actual.ID())
		assert.True(t, actual.IsActive())
		assert.Nil(t, actual.LastLogin())
	})
}

func TestUserValueObjects(t *testing.T) {
	t.Run("メールアドレス検証", func(t *testing.T) {
		cases := []struct {
			name  string
			email string
			ok    bool
		}{
			{"有効なメールアドレスOK", "valid@example.com", true},
			{"空NG", "", false},
			{"@なしNG", "invalidemail.com", false},
			{"ドメインなしNG", "user@", false},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := user.NewEmail(tc.email)
				if tc.ok {
					assert.NoError(t, err)
				} else {
					assert.ErrorIs(t, err, user.ErrInvalidEmail)
				}
			})
		}
	})

	t.Run("ユーザー名検証", func(t *testing.T) {
		cases := []struct {
			name     string
			username string
			ok       bool
		}{
			{"英数字とアンダースコアOK", "taro_123", true},
			{"短すぎNG", "ab", false},
			{"空白を含むNG", "taro yamada", false},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := user.NewUsername(tc.username)
				if tc.ok {
					assert.NoError(t, err)
				} else {
					assert.ErrorIs(t, err, user.ErrInvalidUsername)
				}
			})
		}
	})

	t.Run("パスワード検証", func(t *testing.T) {
		_, err := user.NewPassword("short")
		assert.ErrorIs(t, err, user.ErrPasswordTooWeak)

		_, err = user.NewPassword("long-enough-password")
		assert.NoError(t, err)
	})

	t.Run("ロール検証", func(t *testing.T) {
		for _, valid := range []string{"user", "operator", "admin"} {
			_, err := user.NewRole(valid)
			assert.NoError(t, err)
		}

		_, err := user.NewRole("superuser")
		assert.ErrorIs(t, err, user.ErrInvalidRole)
	})
}
