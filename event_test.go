package tvinput

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKeyName(t *testing.T) {
	require.Equal(t, "Esc", KeyName(KbEsc))
	require.Equal(t, "F7", KeyName(KbF7))
	require.Equal(t, "Shift+F10", KeyName(KbShiftF10))
	require.Equal(t, "Alt+0", KeyName(KbAlt0))
	require.Equal(t, "Ctrl+Q", KeyName(KbCtrlQ))
	require.Equal(t, "Alt+M", KeyName(KbAltM))
	require.Empty(t, KeyName('a'))
}

func TestEventString(t *testing.T) {
	require.Equal(t, "nothing", Event{}.String())
	require.Equal(t, `key 0x8d00 Ctrl+Up mods=ctrl`, keyEv(KbCtrlUp, KbCtrlShift, "").String())
	require.Equal(t, `key 0x0061 text="a" mods=paste`, keyEv('a', KbPaste, "a").String())

	ev := Event{What: EvCommand, Command: CommandEvent{Command: CmScreenChanged, Width: 80, Height: 25}}
	require.Equal(t, "resize 80x25", ev.String())

	ev = mouseEv(1, 2, MbLeftButton, MouseMoved, WheelNone, KbShift)
	require.Equal(t, "mouse x=1 y=2 buttons=0x1 flags=0x1 wheel=0 mods=shift", ev.String())
}

func TestKeyDownEventText(t *testing.T) {
	var k KeyDownEvent
	k.SetText('ü')
	require.Equal(t, "ü", k.GetText())
	k.SetText(-1)
	require.Empty(t, k.GetText())
	require.Equal(t, [maxCharSize]byte{}, k.Text)

	k = textKey('ü')
	require.Equal(t, uint16(0x81), k.KeyCode)
	require.Equal(t, uint8(0x81), k.CharCode())
	require.Zero(t, k.ScanCode())

	k = KeyDownEvent{KeyCode: KbEnter}
	require.Equal(t, uint8(0x1c), k.ScanCode())
	require.Equal(t, uint8(0x0d), k.CharCode())
}
