package tvinput

import (
	"bytes"
	"encoding/base64"
	"strings"
)

// maxStringSeq bounds the payload of DCS, OSC and APC sequences
const maxStringSeq = 1 << 20

// readStringSeq reads a DCS, OSC or APC payload terminated by BEL or ESC \.
// On failure every byte it read is pushed back to the source.
func readStringSeq(la *Lookahead) ([]byte, bool) {
	var payload []byte
	fail := func(extra ...int) ([]byte, bool) {
		for i := len(extra) - 1; i >= 0; i-- {
			if extra[i] != EOF {
				la.src.Unget(extra[i])
			}
		}
		for i := len(payload) - 1; i >= 0; i-- {
			la.src.Unget(int(payload[i]))
		}
		return nil, false
	}
	for len(payload) < maxStringSeq {
		k := la.getUnbuffered()
		switch k {
		case EOF:
			return fail()
		case 0x07:
			return payload, true
		case 0x1b:
			next := la.getUnbuffered()
			switch next {
			case EOF:
				return fail(k)
			case '\\':
				return payload, true
			}
			// a new sequence started: it ends this one
			la.src.Unget(next)
			la.src.Unget(k)
			return payload, true
		}
		payload = append(payload, byte(k))
	}
	return fail()
}

// xtgettcapOSC52 starts an XTGETTCAP reply that reports the "Ms"
// capability (hex encoded), which terminals use to announce OSC 52
const xtgettcapOSC52 = "1+r4d73"

func parseDCS(la *Lookahead, st *InputState) ParseResult {
	payload, ok := readStringSeq(la)
	if !ok {
		return Rejected
	}
	if bytes.HasPrefix(bytes.ToLower(payload), []byte(xtgettcapOSC52)) {
		if !st.HasOSC52 {
			logger().Debug("terminal supports OSC 52", "via", "XTGETTCAP")
		}
		st.HasOSC52 = true
	}
	return Ignored
}

// parseAPC swallows application program commands, such as kitty graphics
// replies
func parseAPC(la *Lookahead) ParseResult {
	if _, ok := readStringSeq(la); !ok {
		return Rejected
	}
	return Ignored
}

func parseOSC(la *Lookahead, st *InputState) ParseResult {
	payload, ok := readStringSeq(la)
	if !ok {
		return Rejected
	}
	s := string(payload)
	switch {
	case strings.HasPrefix(s, "52;"):
		handleOSC52(s[len("52;"):], st)
	case strings.HasPrefix(s, "11;rgb:"):
		st.BackgroundColor = s[len("11;"):]
		st.GotResponse = true
	}
	return Ignored
}

// handleOSC52 processes "<selection>;<base64>". A reply without data only
// tells that the terminal understands OSC 52.
func handleOSC52(rest string, st *InputState) {
	st.HasOSC52 = true
	_, data, found := strings.Cut(rest, ";")
	if !found || data == "" || data == "?" {
		return
	}
	text, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		text, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(data, "="))
	}
	if err != nil {
		logger().Debug("malformed OSC 52 reply", "err", err)
		return
	}
	if f := st.PasteFunc; f != nil {
		st.PasteFunc = nil
		f(string(text))
	}
}

// OSC52Set returns the sequence that copies text to the clipboard
func OSC52Set(text string) string {
	return wrapPassthrough("\x1b]52;c;" + base64.StdEncoding.EncodeToString([]byte(text)) + "\a")
}

// OSC52Query returns the sequence that asks the terminal for the clipboard
func OSC52Query() string {
	return wrapPassthrough("\x1b]52;c;?\a")
}

// wrapPassthrough wraps seq so that tmux forwards it to the outer
// terminal instead of interpreting it
func wrapPassthrough(seq string) string {
	if !UnderTMUX {
		return seq
	}
	return "\x1bPtmux;" + strings.ReplaceAll(seq, "\x1b", "\x1b\x1b") + "\x1b\\"
}
