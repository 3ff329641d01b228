package tree

import (
	"fmt"
	"io"
)

const paramColumn = 50

// Print writes a human readable listing of the tree to w: each node name
// on its own line followed by its parameters, names right-aligned.
// Parameters without a value are left out.
func (t *Tree) Print(w io.Writer) error {
	_, err := fmt.Fprint(w, "\n Node Name\t\t\t\tParameters\n")
	if err != nil {
		return fmt.Errorf("printing tree: %w", err)
	}

	for i := range t.count {
		_, err = fmt.Fprintf(w, "%s\n", t.names[i])
		if err != nil {
			return fmt.Errorf("printing node %q: %w", t.names[i], err)
		}

		params := &t.nodes[i]

		for j := range params.count {
			if params.values[j].IsEmpty() {
				continue
			}

			_, err = fmt.Fprintf(w, "%*s: %s\n", paramColumn, params.names[j], params.values[j].String())
			if err != nil {
				return fmt.Errorf("printing parameter %q: %w", params.names[j], err)
			}
		}
	}

	return nil
}
