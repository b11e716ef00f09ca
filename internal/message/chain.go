// Package message models the outbound message chain the host pipeline
// hands to decorating hooks: an ordered list of typed segments. Only
// plain-text segments are ever rewritten; everything else is carried
// through untouched.
package message

import "strings"

// Kind tags a segment with its media type.
type Kind string

const (
	KindPlain   Kind = "plain"
	KindImage   Kind = "image"
	KindAt      Kind = "at"
	KindRecord  Kind = "record"
	KindVideo   Kind = "video"
	KindFace    Kind = "face"
	KindUnknown Kind = "unknown"
)

// Segment is one element of a message chain. Text is meaningful only
// for KindPlain; Data holds the opaque payload for every other kind
// (image URL, mentioned user id, audio file reference).
type Segment struct {
	Kind Kind
	Text string
	Data string
}

// Plain builds a plain-text segment.
func Plain(text string) Segment {
	return Segment{Kind: KindPlain, Text: text}
}

// At builds a mention segment for the given target id.
func At(target string) Segment {
	return Segment{Kind: KindAt, Data: target}
}

// Image builds an image segment referencing an opaque source.
func Image(src string) Segment {
	return Segment{Kind: KindImage, Data: src}
}

// Chain is an ordered message chain.
type Chain []Segment

// PlainText concatenates the text of every plain segment in order.
func (c Chain) PlainText() string {
	var b strings.Builder
	for _, seg := range c {
		if seg.Kind == KindPlain {
			b.WriteString(seg.Text)
		}
	}
	return b.String()
}

// HasPlainText reports whether the chain carries any non-whitespace
// plain text worth rewriting.
func (c Chain) HasPlainText() bool {
	return strings.TrimSpace(c.PlainText()) != ""
}

// ReplacePlainText returns a new chain in which every plain segment is
// collapsed into a single plain segment holding text, inserted at the
// position of the first original plain segment. Non-text segments keep
// their identity and relative order. The receiver is not modified.
func (c Chain) ReplacePlainText(text string) Chain {
	firstPlain := -1
	rest := make(Chain, 0, len(c))
	for i, seg := range c {
		if seg.Kind == KindPlain {
			if firstPlain == -1 {
				firstPlain = i
			}
			continue
		}
		rest = append(rest, seg)
	}

	polished := Plain(text)
	if firstPlain == -1 {
		return append(Chain{polished}, rest...)
	}

	idx := firstPlain
	if idx > len(rest) {
		idx = len(rest)
	}
	out := make(Chain, 0, len(rest)+1)
	out = append(out, rest[:idx]...)
	out = append(out, polished)
	out = append(out, rest[idx:]...)
	return out
}

// Clone returns a copy of the chain with its own backing array.
func (c Chain) Clone() Chain {
	if c == nil {
		return nil
	}
	out := make(Chain, len(c))
	copy(out, c)
	return out
}
