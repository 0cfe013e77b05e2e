package mode

import "github.com/pym-editor/pym/internal/keyseq"

// motionKeys builds (or rebuilds) the append-only `motion` macro group
// shared by the bare-motion binding and the delete-operator binding, so
// both recognize exactly the same set of motion keys without duplicating
// the grammar.
func motionKeys(r *keyseq.Registry) *keyseq.Group {
	g := r.NewGroup("motion")
	for _, alt := range []string{"h", "j", "k", "l", "<enter>", " ", "<backspace>"} {
		if err := g.Add(alt); err != nil {
			panic(err) // fixed literal alternatives; a parse failure here is a programming error
		}
	}
	return g
}

// intOrDefault reads an Optional(Number)'s parsed value (nil or int),
// defaulting to 1 when the count was omitted.
func intOrDefault(v any) int {
	if v == nil {
		return 1
	}
	return v.(int)
}
