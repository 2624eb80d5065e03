package xmldom

import (
	"bytes"
	"io"

	"github.com/orisano/gosax"
)

// gosaxBufferSize mirrors the teacher's streaming reader sizing: large
// enough that typical documents are read in one buffer fill.
const gosaxBufferSize = 1024 * 1024 * 64

// countingReader tracks how many bytes have been pulled from r, giving
// gosaxTokenizer an approximate cursor into the input for Point(). Because
// gosax buffers ahead of the event it is currently yielding, this is a
// best-effort position (accurate to the last buffer refill), adequate for
// the serializer-reuse hint the DOM itself never interprets.
type countingReader struct {
	r     io.Reader
	count int
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.count += n
	return n, err
}

// gosaxTokenizer adapts github.com/orisano/gosax's pull SAX reader to the
// Tokenizer contract. A single EventStart carries the element name and all
// of its attribute bytes together; this adapter buffers the parsed
// attributes and drains them as individual TokenAttribute events (and a
// trailing TokenEndEmptyElement for self-closing tags) before pulling the
// next real gosax event, matching the token sequence the parse driver
// expects.
type gosaxTokenizer struct {
	cr *countingReader
	r  *gosax.Reader

	pendingAttrs    []rawAttr
	attrIdx         int
	pendingEndEmpty bool

	curPrefix, curLocal, curValue []byte
	point                         int
}

func newGosaxTokenizer(input []byte) *gosaxTokenizer {
	t := &gosaxTokenizer{}
	t.Reset(input)
	return t
}

func (t *gosaxTokenizer) Reset(input []byte) {
	t.cr = &countingReader{r: bytes.NewReader(input)}
	t.r = gosax.NewReaderSize(t.cr, gosaxBufferSize)
	t.pendingAttrs = t.pendingAttrs[:0]
	t.attrIdx = 0
	t.pendingEndEmpty = false
	t.curPrefix, t.curLocal, t.curValue = nil, nil, nil
	t.point = 0
}

func (t *gosaxTokenizer) Prefix() []byte    { return t.curPrefix }
func (t *gosaxTokenizer) LocalName() []byte { return t.curLocal }
func (t *gosaxTokenizer) RawValue() []byte  { return t.curValue }
func (t *gosaxTokenizer) Point() int        { return t.point }

func (t *gosaxTokenizer) Next() (TokenKind, error) {
	if t.attrIdx < len(t.pendingAttrs) {
		a := t.pendingAttrs[t.attrIdx]
		t.attrIdx++
		t.curPrefix, t.curLocal, t.curValue = a.prefix, a.local, a.value
		return TokenAttribute, nil
	}
	if t.pendingEndEmpty {
		t.pendingEndEmpty = false
		t.curPrefix, t.curLocal, t.curValue = nil, nil, nil
		return TokenEndEmptyElement, nil
	}

	e, err := t.r.Event()
	t.point = t.cr.count
	if err != nil {
		if err == io.EOF {
			return TokenDone, nil
		}
		return TokenDone, &TokenizerError{Err: err}
	}

	switch e.Type() {
	case gosax.EventEOF:
		return TokenDone, nil

	case gosax.EventStart:
		name, attrBytes := gosax.Name(e.Bytes)
		t.curPrefix, t.curLocal = splitPrefixLocal(name)
		t.curValue = nil
		if len(attrBytes) > 0 {
			t.pendingAttrs = scanAttributes(attrBytes, t.pendingAttrs)
		} else {
			t.pendingAttrs = t.pendingAttrs[:0]
		}
		t.attrIdx = 0
		t.pendingEndEmpty = isSelfClosingTag(e.Bytes)
		return TokenStartElement, nil

	case gosax.EventEnd:
		t.curPrefix, t.curLocal, t.curValue = nil, nil, nil
		return TokenEndElement, nil

	case gosax.EventText:
		t.curPrefix, t.curLocal = nil, nil
		t.curValue = e.Bytes
		return TokenData, nil

	case gosax.EventCData:
		t.curPrefix, t.curLocal = nil, nil
		t.curValue = stripWrapper(e.Bytes, len("<![CDATA["), len("]]>"))
		return TokenCData, nil

	case gosax.EventComment:
		t.curPrefix, t.curLocal = nil, nil
		t.curValue = stripWrapper(e.Bytes, len("<!--"), len("-->"))
		return TokenComment, nil

	default:
		return TokenOther, nil
	}
}
