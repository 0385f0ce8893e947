package proto

// Walk visits node and its children depth-first, in source order. The
// callback returns true to descend into the node's children, false to
// skip them. Downstream consumers use this to enumerate declarations
// without spelling out the union arms themselves.
func Walk(node Node, fn func(Node) bool) {
	if node == nil || !fn(node) {
		return
	}
	switch n := node.(type) {
	case *Schema:
		for _, decl := range n.Decls {
			Walk(decl, fn)
		}
	case *OptionDecl:
		Walk(n.Name.Value, fn)
		Walk(n.Value.Value, fn)
	case *EnumDecl:
		for _, field := range n.Fields {
			Walk(field, fn)
		}
	case *MessageDecl:
		for _, field := range n.Fields {
			Walk(field, fn)
		}
	case *FieldDecl:
		Walk(n.Field, fn)
	case *Field:
		Walk(n.Type.Value, fn)
		for _, opt := range n.Options {
			Walk(opt, fn)
		}
	case *OneOf:
		for _, field := range n.Fields {
			Walk(field, fn)
		}
	case *ExtendDecl:
		for _, field := range n.Fields {
			Walk(field, fn)
		}
	case *ServiceDecl:
		for _, field := range n.Fields {
			Walk(field, fn)
		}
	case *RpcMethod:
		for _, t := range n.Inputs {
			Walk(t.Value, fn)
		}
		for _, t := range n.Outputs {
			Walk(t.Value, fn)
		}
		for _, opt := range n.Options {
			Walk(opt, fn)
		}
	}
	// Remaining kinds (imports, literals, idents, scalar and named types,
	// enum values, extension ranges) are leaves.
}
