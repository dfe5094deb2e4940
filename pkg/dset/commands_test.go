package dset

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cbdog94/dset/internal/wire"
)

func TestMatchCommandExactAndAliases(t *testing.T) {
	a, ok := matchCommand("create")
	require.True(t, ok)
	require.Equal(t, ActionCreate, a)

	a, ok = matchCommand("new")
	require.True(t, ok)
	require.Equal(t, ActionCreate, a)

	a, ok = matchCommand("-N")
	require.True(t, ok)
	require.Equal(t, ActionCreate, a)

	a, ok = matchCommand("x")
	require.True(t, ok)
	require.Equal(t, ActionDestroy, a)
}

func TestMatchCommandDoubleDashStripped(t *testing.T) {
	a, ok := matchCommand("--create")
	require.True(t, ok)
	require.Equal(t, ActionCreate, a)
}

func TestMatchCommandUniquePrefix(t *testing.T) {
	a, ok := matchCommand("hel")
	require.True(t, ok)
	require.Equal(t, ActionHelp, a)
}

func TestMatchCommandAmbiguousPrefixFails(t *testing.T) {
	// "s" prefixes both "save" and "swap"
	_, ok := matchCommand("s")
	require.False(t, ok)
}

func TestMatchCommandUnknownFails(t *testing.T) {
	_, ok := matchCommand("frobnicate")
	require.False(t, ok)
}

func TestActionCmdMapsWireCommand(t *testing.T) {
	require.Equal(t, wire.CmdCreate, ActionCreate.Cmd())
	require.Equal(t, wire.CmdNone, ActionHelp.Cmd())
	require.Equal(t, wire.CmdNone, ActionVersion.Cmd())
	require.Equal(t, wire.CmdNone, ActionQuit.Cmd())
}
