package utils_test

import (
	"testing"

	"github.com/jrsteele09/go-ticketing-client/internal/utils"
	"github.com/stretchr/testify/require"
)

func TestStrings(t *testing.T) {
	require.Equal(t, []string{"ADMIN"}, utils.Strings("ADMIN"))
	require.Nil(t, utils.Strings(" "))
	require.Equal(t, []string{"ADMIN", "CLIENT"}, utils.Strings([]any{"ADMIN", 3, "", "CLIENT"}))
	require.Equal(t, []string{"CLIENT"}, utils.Strings([]string{"CLIENT"}))
	require.Nil(t, utils.Strings(42))
	require.Nil(t, utils.Strings(nil))
}

func TestPtrValue(t *testing.T) {
	var missing *int
	require.Equal(t, 0, utils.Value(missing))
	require.Equal(t, 5, utils.Value(utils.Ptr(5)))
	require.Equal(t, "DONE", utils.Value(utils.Ptr("DONE")))
}
