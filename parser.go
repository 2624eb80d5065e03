package xmldom

// parseInto drives tok over a Document's tree, maintaining a current-parent
// cursor starting at the root. Text is always copied into each node's own
// buffer (via Node.setRawValue) so the tokenizer's input need not outlive
// the document.
func parseInto(d *Document, tok Tokenizer) error {
	cursor := d.root

	for {
		kind, err := tok.Next()
		if err != nil {
			return err
		}

		switch kind {
		case TokenStartElement:
			n := d.arena.allocate()
			n.kind = KindElement
			n.owner = d
			n.setName(tok.Prefix(), tok.LocalName())
			n.sliceStart = tok.Point()
			cursor.appendChild(n)
			cursor = n

		case TokenEndElement, TokenEndEmptyElement:
			if cursor == d.root {
				return &structuralMismatchError{}
			}
			cursor.sliceEnd = tok.Point()
			cursor = cursor.parent

		case TokenAttribute:
			a := d.arena.allocate()
			a.kind = KindAttribute
			a.owner = d
			a.setName(tok.Prefix(), tok.LocalName())
			a.setRawValue(tok.RawValue())
			cursor.appendAttr(a)

		case TokenData:
			n := d.arena.allocate()
			n.kind = KindData
			n.owner = d
			n.setRawValue(tok.RawValue())
			cursor.appendChild(n)

		case TokenCData:
			n := d.arena.allocate()
			n.kind = KindCData
			n.owner = d
			n.setRawValue(tok.RawValue())
			cursor.appendChild(n)

		case TokenComment:
			n := d.arena.allocate()
			n.kind = KindComment
			n.owner = d
			n.setRawValue(tok.RawValue())
			cursor.appendChild(n)

		case TokenPI:
			n := d.arena.allocate()
			n.kind = KindPI
			n.owner = d
			n.setRawValue(tok.RawValue())
			n.sliceStart = tok.Point()
			cursor.appendChild(n)

		case TokenDoctype:
			n := d.arena.allocate()
			n.kind = KindDoctype
			n.owner = d
			n.setRawValue(tok.RawValue())
			cursor.appendChild(n)

		case TokenDone:
			return nil

		default:
			// ignored per the downward tokenizer contract
		}
	}
}

// structuralMismatchError reports an end tag with no matching open element.
type structuralMismatchError struct{}

func (e *structuralMismatchError) Error() string {
	return "xmldom: end tag with no matching start tag"
}

func (e *structuralMismatchError) Unwrap() error {
	return ErrStructuralMismatch
}
