package ast

type (
	// NodeID is a stable handle of a syntax node inside one Tree.
	NodeID uint32
	// CommentID is a stable handle of a comment, issued at parse time.
	CommentID uint32
)

const (
	NoNodeID    NodeID    = 0
	NoCommentID CommentID = 0
)

func (id NodeID) IsValid() bool    { return id != NoNodeID }
func (id CommentID) IsValid() bool { return id != NoCommentID }
