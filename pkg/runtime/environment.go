package runtime

// Cell is a single mutable storage slot. Assignment mutates the cell in
// place; it never rebinds a name to a new cell, so every holder of the cell
// observes the write. A freshly declared cell is undefined until its first
// assignment.
type Cell struct {
	value   Value
	defined bool
}

func NewCell(value Value) *Cell {
	return &Cell{value: value, defined: true}
}

func (c *Cell) Defined() bool { return c.defined }

func (c *Cell) Value() Value {
	if !c.defined {
		return NoneValue{}
	}
	return c.value
}

func (c *Cell) Set(value Value) {
	c.value = value
	c.defined = true
}

// Scope is one frame of named cells linked to a parent frame, forming the
// lexical lookup chain. A scope may tag itself as the active struct context
// for implicit member resolution.
type Scope struct {
	cells            map[string]*Cell
	parent           *Scope
	containingStruct *StructValue
}

// NewScope creates a scope, optionally nested under a parent.
func NewScope(parent *Scope) *Scope {
	return &Scope{
		cells:  make(map[string]*Cell),
		parent: parent,
	}
}

// Parent exposes the lexical parent (nil at the root).
func (s *Scope) Parent() *Scope { return s.parent }

// Push allocates a child scope pre-declaring each name with an undefined
// cell. Names are unique within one scope; insertion order is irrelevant.
func (s *Scope) Push(names ...string) *Scope {
	child := NewScope(s)
	for _, name := range names {
		child.cells[name] = &Cell{}
	}
	return child
}

// Declare inserts an undefined cell for name in this scope, returning the
// existing cell when the name is already declared here.
func (s *Scope) Declare(name string) *Cell {
	if cell, ok := s.cells[name]; ok {
		return cell
	}
	cell := &Cell{}
	s.cells[name] = cell
	return cell
}

// Define declares name and sets its value in one step. Used when building
// the initial builtin scope.
func (s *Scope) Define(name string, value Value) {
	s.Declare(name).Set(value)
}

// Resolve finds the nearest declared cell for name, defined or not. This is
// the assignment target search: a local's own freshly pushed cell wins over
// any outer binding of the same name.
func (s *Scope) Resolve(name string) (*Cell, bool) {
	for scope := s; scope != nil; scope = scope.parent {
		if cell, ok := scope.cells[name]; ok {
			return cell, true
		}
	}
	return nil, false
}

// Get finds the value of name for reading. Cells that are declared but not
// yet assigned are skipped so that the right-hand side of a shadowing local
// binding still sees the outer value.
func (s *Scope) Get(name string) (Value, bool) {
	for scope := s; scope != nil; scope = scope.parent {
		if cell, ok := scope.cells[name]; ok && cell.defined {
			return cell.value, true
		}
	}
	return nil, false
}

// Cells exposes the scope's own storage. A struct literal's Struct value
// holds this exact map so field writes alias scope writes.
func (s *Scope) Cells() map[string]*Cell { return s.cells }

// SetContainingStruct tags this scope as the active struct context.
func (s *Scope) SetContainingStruct(st *StructValue) {
	s.containingStruct = st
}

// ContainingStruct returns the nearest struct context up the chain, so
// closures defined inside struct initializers keep implicit member access.
func (s *Scope) ContainingStruct() *StructValue {
	for scope := s; scope != nil; scope = scope.parent {
		if scope.containingStruct != nil {
			return scope.containingStruct
		}
	}
	return nil
}
