// =============================================================================
// XLCut - XML Parser Module
// =============================================================================
//
// This module parses input XML files into an in-memory node tree. The tree
// is the input to the row-set extractor and the flattener, so it must keep
// everything in document order:
//   - Attributes in the order they appear on the element
//   - Children in the order they appear in the document
//
// The tree is built with the standard library's streaming decoder. Files are
// read in full; there is no support for documents larger than memory.
//
// =============================================================================

package xmlparser

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ErrEmptyDocument is returned when a file contains no XML content at all
// (empty or whitespace-only). The caller treats this as a row-less file,
// not as a parse failure.
var ErrEmptyDocument = errors.New("empty document")

// =============================================================================
// NODE TYPE
// =============================================================================

// Node represents a single XML element: a tag name, its attributes in
// document order, its child elements in document order, and any character
// data found directly inside it.
type Node struct {
	Tag        string
	Attributes []xml.Attr
	Children   []*Node
	Text       string
}

// HasChildren reports whether the node contains at least one child element.
func (n *Node) HasChildren() bool {
	return len(n.Children) > 0
}

// TrimmedText returns the node's character data with surrounding whitespace
// removed.
func (n *Node) TrimmedText() string {
	return strings.TrimSpace(n.Text)
}

// =============================================================================
// PARSER FUNCTIONS
// =============================================================================

// ParseFile reads an XML file in full and parses it into a node tree.
//
// RETURNS:
//   - The root node of the document.
//   - ErrEmptyDocument if the file holds no content.
//   - The decoder's own error, unmodified, if the XML is malformed.
func ParseFile(filePath string) (*Node, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	if strings.TrimSpace(string(data)) == "" {
		return nil, ErrEmptyDocument
	}

	return Parse(strings.NewReader(string(data)))
}

// Parse decodes an XML document from a reader into a node tree.
//
// The decoder is used in strict mode, so malformed input surfaces as an
// error here and is reported by the caller as a malformed-XML condition
// for that file.
func Parse(r io.Reader) (*Node, error) {
	decoder := xml.NewDecoder(r)

	var root *Node
	var stack []*Node

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := token.(type) {
		case xml.StartElement:
			// The document has exactly one root. Anything after it closes
			// is a malformed document, not content to discard.
			if len(stack) == 0 && root != nil {
				return nil, fmt.Errorf("unexpected element <%s> after document root", t.Name.Local)
			}

			// Copy the attributes; the decoder reuses its buffers.
			attrs := make([]xml.Attr, len(t.Attr))
			copy(attrs, t.Attr)

			node := &Node{
				Tag:        t.Name.Local,
				Attributes: attrs,
			}

			if len(stack) > 0 {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, node)
			} else if root == nil {
				root = node
			}
			stack = append(stack, node)

		case xml.EndElement:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}

		case xml.CharData:
			if len(stack) > 0 {
				current := stack[len(stack)-1]
				current.Text += string(t)
			}
		}
	}

	if root == nil {
		return nil, ErrEmptyDocument
	}

	return root, nil
}
