package identitypb

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/types/known/structpb"
)

func TestToStruct_FieldNames(t *testing.T) {
	city := "Riga"
	s, err := ToStruct(RegisterUserRequest{Email: "a@example.com", FirstName: "Ada", LastName: "L", Password: "pw", City: &city})
	require.NoError(t, err)

	f := s.GetFields()
	assert.Equal(t, "a@example.com", f["email"].GetStringValue())
	assert.Equal(t, "Ada", f["firstName"].GetStringValue())
	assert.Equal(t, "Riga", f["city"].GetStringValue())
	_, hasZip := f["zip"]
	assert.False(t, hasZip, "nil optional fields are omitted")
}

func TestFromStruct(t *testing.T) {
	s, err := structpb.NewStruct(map[string]any{
		"accessToken": "a",
		"idToken":     "b",
		"extra":       1.0,
	})
	require.NoError(t, err)

	var got LoginResponse
	require.NoError(t, FromStruct(s, &got))
	assert.Empty(t, cmp.Diff(LoginResponse{AccessToken: "a", IDToken: "b"}, got))

	var empty LoginRequest
	require.NoError(t, FromStruct(nil, &empty))
	assert.Equal(t, LoginRequest{}, empty)

	bad, err := structpb.NewStruct(map[string]any{"email": 42.0})
	require.NoError(t, err)
	assert.Error(t, FromStruct(bad, &empty))
}
