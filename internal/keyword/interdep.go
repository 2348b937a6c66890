package keyword

import (
	"sort"

	jserrors "github.com/jacoelho/jsonschema/errors"
)

// interdependence reorganises the pending nodes of one schema object into
// the final keyword list: applicator fall-back chains by priority,
// contains bounds adoption, conditional branch wiring, and unevaluated
// threading into combinators. Pure metadata rewiring; the instance is
// never read here.
func interdependence(pending List) (List, error) {
	var (
		arrayAppl   List
		objectAppl  List
		combinators List
		final       List

		containsKw *containsNode
		minC, maxC *containsBound
		ifKw       *conditionalNode
		thenKw     *conditionalNode
		elseKw     *conditionalNode
	)

	for _, n := range pending {
		switch v := n.(type) {
		case *prefixItems, *items:
			arrayAppl = append(arrayAppl, n)
		case *additionalNode:
			if v.properties {
				objectAppl = append(objectAppl, n)
			} else {
				arrayAppl = append(arrayAppl, n)
			}
		case *propertiesNode, *patternPropertiesNode:
			objectAppl = append(objectAppl, n)
		case *combinatorNode, *notNode:
			combinators = append(combinators, n)
			final = append(final, n)
		case *conditionalNode:
			switch v.name {
			case "if":
				ifKw = v
			case "then":
				thenKw = v
			case "else":
				elseKw = v
			}
		case *containsNode:
			containsKw = v
			final = append(final, n)
		case *containsBound:
			if v.name == "minContains" {
				minC = v
			} else {
				maxC = v
			}
		default:
			final = append(final, n)
		}
	}

	if ifKw != nil {
		if thenKw == nil && elseKw == nil {
			return nil, jserrors.NewStructural("if", "if requires a then or else branch")
		}
		var t, e Node
		if thenKw != nil {
			t = thenKw
		}
		if elseKw != nil {
			e = elseKw
		}
		ifKw.SetDependents(t, e)
		final = append(final, ifKw)
	} else if thenKw != nil || elseKw != nil {
		name := "then"
		if thenKw == nil {
			name = "else"
		}
		return nil, jserrors.NewStructural(name, "branch requires a sibling if")
	}

	// minContains/maxContains without a sibling contains are inert
	if containsKw != nil {
		var mn, mx Node
		if minC != nil {
			mn = minC
		}
		if maxC != nil {
			mx = maxC
		}
		containsKw.SetDependents(mn, mx)
	}

	unevalItems := findUnevaluated(arrayAppl)
	unevalProps := findUnevaluated(objectAppl)
	for _, n := range combinators {
		n.SetUnevaluated(unevalItems, unevalProps)
		threadUnevaluated(n, unevalItems, unevalProps)
	}

	if head := chainArray(arrayAppl); head != nil {
		final = append(final, head)
	}
	if head := chain(objectAppl); head != nil {
		final = append(final, head)
	}
	return final, nil
}

// chain sorts an applicator family by ascending priority and links each
// node to its successor; only the head joins the keyword list, the rest is
// reached through the alternate references.
func chain(appl List) Node {
	if len(appl) == 0 {
		return nil
	}
	sort.SliceStable(appl, func(i, j int) bool {
		return appl[i].Priority() < appl[j].Priority()
	})
	for i := 0; i < len(appl)-1; i++ {
		appl[i].SetAlternate(appl[i+1])
	}
	return appl[0]
}

// chainArray builds the array applicator chain. additionalItems with no
// items or prefixItems sibling to drive it is inert and dropped.
func chainArray(appl List) Node {
	hasDriver := false
	for _, n := range appl {
		if n.Priority() <= prioSecondary {
			hasDriver = true
			break
		}
	}
	if !hasDriver {
		kept := appl[:0]
		for _, n := range appl {
			if n.Priority() != prioAdditional {
				kept = append(kept, n)
			}
		}
		appl = kept
	}
	return chain(appl)
}

func findUnevaluated(appl List) Node {
	for _, n := range appl {
		if a, ok := n.(*additionalNode); ok && a.priority == prioUnevaluated {
			return a
		}
	}
	return nil
}

// threadUnevaluated gives applicators inside a combinator's sub-schemas a
// fall-back tail when they have none: the enclosing object's unevaluated
// applicator. This is how unevaluatedItems/unevaluatedProperties semantics
// reach across combinators. Nested combinators thread their own enclosing
// object, never the outer one.
func threadUnevaluated(n Node, itemsTail, propsTail Node) {
	if itemsTail == nil && propsTail == nil {
		return
	}
	var lists []List
	switch v := n.(type) {
	case *combinatorNode:
		lists = v.lists
	case *notNode:
		lists = []List{v.schema}
	default:
		return
	}
	for _, list := range lists {
		for _, child := range list {
			if child.alternate() != nil {
				continue
			}
			switch c := child.(type) {
			case *prefixItems, *items:
				if itemsTail != nil {
					child.SetAlternate(itemsTail)
				}
			case *propertiesNode, *patternPropertiesNode:
				if propsTail != nil {
					child.SetAlternate(propsTail)
				}
			case *additionalNode:
				if c.properties {
					if propsTail != nil {
						c.SetAlternate(propsTail)
					}
				} else if itemsTail != nil {
					c.SetAlternate(itemsTail)
				}
			}
		}
	}
}
