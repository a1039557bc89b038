package traverse

import (
	"github.com/lukeapage/flow-to-ts/internal/ast"
)

// Walk visits the tree from its root in pre-order, children in source
// order, calling the registered handlers. The first handler error stops the
// walk and is returned as is.
func Walk[S any](t *ast.Tree, r *Registry[S], state S) error {
	w := &walker[S]{tree: t, reg: r, state: state, comments: r.Comments}
	if w.comments == nil {
		w.comments = moveComments{}
	}
	root := &Path{Tree: t, ID: t.Root, Index: -1, comments: w.comments}
	_, err := w.visit(root)
	return err
}

type walker[S any] struct {
	tree     *ast.Tree
	reg      *Registry[S]
	state    S
	comments Reattacher
}

// visit walks one node and reports whether a handler removed it.
func (w *walker[S]) visit(p *Path) (removed bool, err error) {
	if !p.ID.IsValid() {
		return false, nil
	}
	v := w.reg.visitors[p.Kind()]
	if v.Enter != nil {
		if err := v.Enter(p, w.state); err != nil {
			return false, err
		}
		if p.removed {
			return true, nil
		}
		if p.replaced {
			// заменённый узел входит в обход ещё раз, но только один
			v = w.reg.visitors[p.Kind()]
			if v.Enter != nil {
				if err := v.Enter(p, w.state); err != nil {
					return false, err
				}
				if p.removed {
					return true, nil
				}
				v = w.reg.visitors[p.Kind()]
			}
		}
	}

	if !p.skipped {
		if err := w.children(p); err != nil {
			return false, err
		}
	}

	if v.Exit != nil {
		if err := v.Exit(p, w.state); err != nil {
			return false, err
		}
	}
	return p.removed, nil
}

func (w *walker[S]) children(p *Path) error {
	n := p.Node()
	for _, slot := range ast.VisitOrder(n.Kind, len(n.Kids)) {
		if slot != ast.ListSlot {
			child := &Path{Tree: w.tree, ID: n.Kid(int(slot)), Parent: p, Slot: int(slot), comments: w.comments}
			if _, err := w.visit(child); err != nil {
				return err
			}
			continue
		}
		// список перечитывается на каждом шаге: обработчики могут его менять,
		// вставленные соседи обходятся этим же циклом
		for i := 0; i < len(n.List); i++ {
			child := &Path{Tree: w.tree, ID: n.List[i], Parent: p, Slot: ast.ListSlot, Index: i, comments: w.comments}
			removed, err := w.visit(child)
			if err != nil {
				return err
			}
			if removed {
				i--
			}
		}
	}
	return nil
}
