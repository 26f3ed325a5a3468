package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPage_ValidAndProtected(t *testing.T) {
	t.Parallel()

	for _, p := range Pages {
		require.True(t, p.Valid(), p)
	}
	require.False(t, Page("settings").Valid())

	require.False(t, PageLogin.Protected())
	require.False(t, PageRegister.Protected())
	for _, p := range []Page{PageDashboard, PageCourses, PageGrades, PageProfile} {
		require.True(t, p.Protected(), p)
	}
}

func TestTab_Valid(t *testing.T) {
	t.Parallel()

	require.True(t, TabAvailable.Valid())
	require.True(t, TabMine.Valid())
	require.False(t, Tab("all").Valid())
	require.False(t, Tab("").Valid())
}
