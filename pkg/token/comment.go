package token

import "strings"

// CommentKind tells line comments from block comments.
type CommentKind int

const (
	LineComment  CommentKind = iota // -- to end of line
	BlockComment                    // /* ... */
)

func (k CommentKind) String() string {
	if k == BlockComment {
		return "block"
	}
	return "line"
}

// delimiters returns the opening and closing markers of a comment kind.
func (k CommentKind) delimiters() (open, close string) {
	if k == BlockComment {
		return "/*", "*/"
	}
	return "--", ""
}

// Comment is a comment found between tokens. Text keeps the delimiters.
type Comment struct {
	Kind CommentKind
	Text string
	Span Span
}

// Body is the comment text with delimiters and surrounding space removed.
func (c *Comment) Body() string {
	open, close := c.Kind.delimiters()
	body := strings.TrimPrefix(c.Text, open)
	if close != "" {
		body = strings.TrimSuffix(body, close)
	}
	return strings.TrimSpace(body)
}
