package navigation

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestRecorder(t *testing.T) {
	so := require.New(t)
	r := &Recorder{}
	so.Equal(Route(""), r.Current())

	so.NoError(r.ResetTo(RouteLogin))
	so.NoError(r.ResetTo(RouteRegisterComplete))

	so.Equal([]Route{RouteLogin, RouteRegisterComplete}, r.Resets())
	so.Equal(RouteRegisterComplete, r.Current())
}

func TestNavigatorFunc(t *testing.T) {
	var got Route
	var nav Navigator = NavigatorFunc(func(route Route) error {
		got = route
		return errors.New("boom")
	})

	err := nav.ResetTo(RouteLogin)
	require.EqualError(t, err, "boom")
	require.Equal(t, RouteLogin, got)
}
