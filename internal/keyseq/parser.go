package keyseq

import "fmt"

// marker is a stack sentinel for '(' grouping and '|' alternation; it is
// never confused with a *Node because Go's type switch distinguishes them.
type marker byte

// Registry resolves `name` macro references during parsing and backs
// KeyGroup-style append-only choices.
type Registry struct {
	macros map[string]*Node
}

// NewRegistry returns an empty macro registry.
func NewRegistry() *Registry {
	return &Registry{macros: make(map[string]*Node)}
}

// Default is the package-level registry used by the free functions below;
// mode.Mode.Bind and config.ValidateKeymap parse against it. The editor's
// `motion` group is defined in the registry mode.NewDefaultMachine builds,
// not in Default.
var Default = NewRegistry()

// ParseExpr parses expr against the default registry.
func ParseExpr(expr string) (*Node, error) { return Default.Parse(expr) }

// Define parses expr and registers the result under name in the default
// registry, so later expressions can reference it as `` `name` ``.
func Define(name, expr string) (*Node, error) { return Default.Define(name, expr) }

// NewGroup creates an append-only macro group in the default registry.
func NewGroup(name string) *Group { return Default.NewGroup(name) }

// Parse compiles a key expression into a grammar node tree. Concrete
// syntax: `<name>` a named key or a bracketed literal meta character,
// a bare literal character, `@` any printable, `#` a number, `X?`
// optional, `X Y` sequence, `X|Y` choice, `(...)` grouping, and
// `` `name` `` a reference to a macro previously registered with Define
// or built via a Group.
func (r *Registry) Parse(expr string) (*Node, error) {
	var stack []any
	var state byte // 0 = normal, '<' = inside <...>, '`' = inside `...`
	var buf []rune

	for _, k := range []rune(expr) {
		switch state {
		case '<':
			if k == '>' {
				stack = append(stack, Unit(string(buf)))
				buf = nil
				state = 0
			} else {
				buf = append(buf, k)
			}
			continue
		case '`':
			if k == '`' {
				name := string(buf)
				macro, ok := r.macros[name]
				if !ok {
					return nil, fmt.Errorf("%w: unknown macro %q", ErrInvalidKeyExpression, name)
				}
				stack = append(stack, macro.Clone())
				buf = nil
				state = 0
			} else {
				buf = append(buf, k)
			}
			continue
		}

		switch k {
		case '<':
			state = '<'
			buf = nil
		case '`':
			state = '`'
			buf = nil
		case '>':
			return nil, fmt.Errorf("%w: unmatched '>'", ErrInvalidKeyExpression)
		case '#':
			stack = append(stack, Number())
		case '@':
			stack = append(stack, Printable())
		case '?':
			if len(stack) == 0 {
				return nil, fmt.Errorf("%w: '?' with nothing to make optional", ErrInvalidKeyExpression)
			}
			n, ok := stack[len(stack)-1].(*Node)
			if !ok {
				return nil, fmt.Errorf("%w: '?' with nothing to make optional", ErrInvalidKeyExpression)
			}
			stack[len(stack)-1] = Optional(n)
		case '|':
			stack = append(stack, marker('|'))
		case '(':
			stack = append(stack, marker('('))
		case ')':
			collapsed, err := quiesce(&stack)
			if err != nil {
				return nil, err
			}
			if len(stack) == 0 {
				return nil, fmt.Errorf("%w: unmatched ')'", ErrInvalidKeyExpression)
			}
			stack[len(stack)-1] = collapsed
		default:
			stack = append(stack, Unit(string(k)))
		}
	}

	switch state {
	case '<':
		return nil, fmt.Errorf("%w: unterminated '<'", ErrInvalidKeyExpression)
	case '`':
		return nil, fmt.Errorf("%w: unterminated '`'", ErrInvalidKeyExpression)
	}

	result, err := quiesce(&stack)
	if err != nil {
		return nil, err
	}
	if len(stack) != 0 {
		return nil, fmt.Errorf("%w: unmatched '('", ErrInvalidKeyExpression)
	}
	return result, nil
}

// quiesce collapses the stack down to (but not past) the nearest '('
// marker, folding adjacent nodes into a Sequence and '|'-separated runs
// into a Choice. The matching '(' marker, if any, is left on the stack for
// the caller to replace.
func quiesce(stack *[]any) (*Node, error) {
	var seq []*Node
	var choices []*Node

	for len(*stack) > 0 {
		top := (*stack)[len(*stack)-1]
		if m, ok := top.(marker); ok && m == '(' {
			break
		}
		*stack = (*stack)[:len(*stack)-1]

		if m, ok := top.(marker); ok && m == '|' {
			if len(seq) == 0 {
				return nil, fmt.Errorf("%w: empty alternative", ErrInvalidKeyExpression)
			}
			choices = append([]*Node{sequenceToNode(seq)}, choices...)
			seq = nil
			continue
		}

		n, ok := top.(*Node)
		if !ok {
			return nil, fmt.Errorf("%w: unexpected token", ErrInvalidKeyExpression)
		}
		seq = append([]*Node{n}, seq...)
	}

	if len(seq) == 0 {
		return nil, fmt.Errorf("%w: empty expression", ErrInvalidKeyExpression)
	}
	choices = append([]*Node{sequenceToNode(seq)}, choices...)
	if len(choices) > 1 {
		return Choice(choices...), nil
	}
	return choices[0], nil
}

func sequenceToNode(seq []*Node) *Node {
	if len(seq) == 1 {
		return seq[0]
	}
	return Sequence(seq...)
}

// Define parses expr and registers the result under name so later
// expressions can reference it as `` `name` ``. Referencing a macro always
// clones its current tree, so a Group built incrementally must be fully
// populated before anything parses a reference to it.
func (r *Registry) Define(name, expr string) (*Node, error) {
	n, err := r.Parse(expr)
	if err != nil {
		return nil, err
	}
	r.macros[name] = n
	return n, nil
}

// Group is an append-only Choice built up under a registered macro name,
// used for binding sets (e.g. the set of motion keys) that grow as more
// alternatives are registered.
type Group struct {
	r    *Registry
	name string
}

// NewGroup registers an empty Choice under name and returns a handle for
// appending alternatives to it.
func (r *Registry) NewGroup(name string) *Group {
	r.macros[name] = Choice()
	return &Group{r: r, name: name}
}

// Add parses expr and appends it as a new alternative.
func (g *Group) Add(expr string) error {
	n, err := g.r.Parse(expr)
	if err != nil {
		return err
	}
	root := g.r.macros[g.name]
	root.children = append(root.children, n)
	return nil
}

// Node returns the group's current underlying Choice node. Callers that
// need a live, independent copy should Clone it.
func (g *Group) Node() *Node { return g.r.macros[g.name] }
