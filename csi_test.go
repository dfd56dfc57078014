package tvinput

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReadCSIRoundTrip(t *testing.T) {
	for _, seq := range []string{
		"A",
		"1;5A",
		"15~",
		";5H",
		"27;2;97~",
		"38:2:255m",
		"1;2;3;4;5;6_",
	} {
		t.Run(seq, func(t *testing.T) {
			la := NewLookahead(NewBytesSource([]byte(seq)))
			csi, ok := readCSI(la)
			require.True(t, ok)
			require.Equal(t, seq, csi.String())
		})
	}
}

func TestReadCSIValues(t *testing.T) {
	la := NewLookahead(NewBytesSource([]byte(";5H")))
	csi, ok := readCSI(la)
	require.True(t, ok)
	require.Equal(t, 2, csi.Len())
	require.True(t, csi.Omitted(0))
	require.Equal(t, uint(1), csi.Value(0, 1))
	require.Equal(t, uint(5), csi.Value(1, 1))
	require.Equal(t, uint(9), csi.Value(2, 9))
	require.Equal(t, byte('H'), csi.Terminator())
}

func TestReadCSIFailures(t *testing.T) {
	for name, seq := range map[string]string{
		"incomplete":      "1;5",
		"empty":           "",
		"too many params": "1;2;3;4;5;6;7~",
	} {
		t.Run(name, func(t *testing.T) {
			la := NewLookahead(NewBytesSource([]byte(seq)))
			_, ok := readCSI(la)
			require.False(t, ok)
		})
	}
}
