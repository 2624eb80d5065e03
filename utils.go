package xmldom

import "bytes"

// rawAttr is an attribute scanned from a start-tag's raw attribute bytes,
// before it becomes an Attribute node.
type rawAttr struct {
	prefix, local, value []byte
}

// splitPrefixLocal splits a qualified name on its first ':' into prefix and
// local parts. Namespace URI resolution is out of scope; only the
// syntactic split is preserved.
func splitPrefixLocal(name []byte) (prefix, local []byte) {
	if idx := bytes.IndexByte(name, ':'); idx != -1 {
		return name[:idx], name[idx+1:]
	}
	return nil, name
}

// scanAttributes parses a start tag's raw attribute bytes into a sequence
// of rawAttr values, preserving source order. Adapted from the teacher's
// byte-level attribute scanner: same quote/whitespace handling, generalized
// to split each name into prefix/local instead of populating an
// XMLElement.Attributes slice directly.
func scanAttributes(attrs []byte, out []rawAttr) []rawAttr {
	out = out[:0]
	i := 0
	for i < len(attrs) {
		for i < len(attrs) && isAttrSpace(attrs[i]) {
			i++
		}
		if i >= len(attrs) {
			break
		}

		nameStart := i
		for i < len(attrs) && attrs[i] != '=' {
			i++
		}
		if i >= len(attrs) {
			break
		}
		name := bytes.TrimSpace(attrs[nameStart:i])
		i++ // skip '='

		for i < len(attrs) && (attrs[i] == ' ' || attrs[i] == '\t') {
			i++
		}
		if i >= len(attrs) {
			break
		}

		quote := attrs[i]
		if quote != '"' && quote != '\'' {
			break
		}
		i++
		valueStart := i
		for i < len(attrs) && attrs[i] != quote {
			i++
		}
		value := attrs[valueStart:i]
		i++ // skip closing quote

		prefix, local := splitPrefixLocal(name)
		out = append(out, rawAttr{prefix: prefix, local: local, value: value})
	}
	return out
}

func isAttrSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

// isSelfClosingTag reports whether a raw start-tag slice (as delivered by
// the tokenizer, including the enclosing angle brackets) ends in "/>".
func isSelfClosingTag(fullTag []byte) bool {
	return len(fullTag) >= 2 && fullTag[len(fullTag)-2] == '/' && fullTag[len(fullTag)-1] == '>'
}

// stripWrapper removes a fixed-length prefix and suffix from content,
// e.g. "<!--"/"-->" around a comment or "<![CDATA["/"]]>" around CDATA.
// Returns nil if content is too short to contain both delimiters.
func stripWrapper(content []byte, prefixLen, suffixLen int) []byte {
	if len(content) < prefixLen+suffixLen {
		return nil
	}
	return content[prefixLen : len(content)-suffixLen]
}
