package openapi

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeSchemaName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"User", "User"},
		{"Page[github.com/x/model.User]", "PageUser"},
		{"Page[[]github.com/x/model.User]", "PageUserList"},
		{"Page[[][]github.com/x/model.User]", "PageUserListList"},
		{"Box[*github.com/x/model.User]", "BoxUser"},
		{"Pair[string,int64]", "PairStringInt64"},
		{"Page[github.com/x/model.Page[github.com/x/model.User]]", "PagePageUser"},
		{"Pair[github.com/x/model.Pair[int,string],bool]", "PairPairIntStringBool"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, sanitizeSchemaName(tt.in))
		})
	}
}

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"User", "User"},
		{"User-Response", "User-Response"},
		{"createUser.alice", "createUser.alice"},
		{"snake_case", "snake_case"},
		{"Map[string]int", "Mapstringint"},
		{"with space/and*stars", "withspaceandstars"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, sanitizeName(tt.in))
		})
	}
}

func TestTypeOf(t *testing.T) {
	assert.Equal(t, TypeOf[User](), typeOf(User{}))
	assert.Equal(t, TypeOf[User](), typeOf(TypeOf[User]()))
	assert.Equal(t, "error", TypeOf[error]().Name())
	assert.Nil(t, typeOf(nil))
}
