package ruby

// NodeKind identifies the shape of a syntax node.
type NodeKind int

const (
	Invalid NodeKind = iota
	MethodDef
	SingletonDef // def self.name
	Return
	NilLit
	TrueLit
	FalseLit
	IntLit
	StrLit
	SymLit
	Ident
	Send
	Begin        // statement sequence; value is the last child's value
	Rescue       // children: [protected body, branch...]
	RescueBranch // children: [exception list (Begin), branch body (Begin)]
	Ensure       // children: [protected body, cleanup body]
	If           // children: [cond, then body] or [cond, then body, else body]
	Assign       // children: [value]
)

func (k NodeKind) String() string {
	switch k {
	case MethodDef:
		return "def"
	case SingletonDef:
		return "defs"
	case Return:
		return "return"
	case NilLit:
		return "nil"
	case TrueLit:
		return "true"
	case FalseLit:
		return "false"
	case IntLit:
		return "int"
	case StrLit:
		return "str"
	case SymLit:
		return "sym"
	case Ident:
		return "ident"
	case Send:
		return "send"
	case Begin:
		return "begin"
	case Rescue:
		return "rescue"
	case RescueBranch:
		return "resbody"
	case Ensure:
		return "ensure"
	case If:
		return "if"
	case Assign:
		return "assign"
	default:
		return "invalid"
	}
}

// Node is a single immutable syntax-tree node. Name carries the method name
// for defs and sends, the identifier for idents and assignment targets, and
// the exception variable for rescue branches. Children are in source order.
type Node struct {
	Kind     NodeKind
	Name     string
	Recv     *Node // receiver of a Send, nil for receiverless calls
	Children []*Node
	Pos      Position
	End      Position
}

// Body returns the body of a method definition, or nil when the method is
// empty.
func (n *Node) Body() *Node {
	if n == nil || (n.Kind != MethodDef && n.Kind != SingletonDef) {
		return nil
	}
	if len(n.Children) == 0 {
		return nil
	}
	return n.Children[0]
}

// LastChild returns the final child, or nil for a childless node.
func (n *Node) LastChild() *Node {
	if n == nil || len(n.Children) == 0 {
		return nil
	}
	return n.Children[len(n.Children)-1]
}

// IsMethodDef reports whether the node defines an instance or singleton
// method.
func (n *Node) IsMethodDef() bool {
	return n != nil && (n.Kind == MethodDef || n.Kind == SingletonDef)
}

// Inspect traverses the tree rooted at n in depth-first preorder, calling f
// for each node. If f returns false, the node's children are skipped.
func Inspect(n *Node, f func(*Node) bool) {
	if n == nil {
		return
	}
	if !f(n) {
		return
	}
	if n.Recv != nil {
		Inspect(n.Recv, f)
	}
	for _, c := range n.Children {
		Inspect(c, f)
	}
}

// File is the parse result for one source file.
type File struct {
	Filename string
	Source   []byte
	Root     *Node // Begin node holding top-level statements
	Comments []Comment
}

// Snippet returns the source text covered by the node.
func (f *File) Snippet(n *Node) string {
	if n == nil || n.Pos.Offset < 0 || n.End.Offset > len(f.Source) || n.Pos.Offset > n.End.Offset {
		return ""
	}
	return string(f.Source[n.Pos.Offset:n.End.Offset])
}
