package keyword

import (
	"github.com/jacoelho/jsonschema/pkg/jsonstream"
)

// build maps a keyword name to its node implementation. The argument kind
// is the kind of the keyword's value, needed up front by the keywords whose
// boolean form sets the allowed flag. Unknown keywords compile to inert
// annotations, preserving forward compatibility.
func build(name string, kind jsonstream.Kind) Node {
	switch name {
	case "type":
		return newType()
	case "const":
		return newConst()
	case "enum":
		return newEnum()
	case "maximum":
		return newNumericBound(name, func(v, bound float64) bool { return v <= bound })
	case "minimum":
		return newNumericBound(name, func(v, bound float64) bool { return v >= bound })
	case "exclusiveMaximum":
		return newNumericBound(name, func(v, bound float64) bool { return v < bound })
	case "exclusiveMinimum":
		return newNumericBound(name, func(v, bound float64) bool { return v > bound })
	case "multipleOf":
		return newMultipleOf()
	case "maxLength":
		return newLengthBound(name, true)
	case "minLength":
		return newLengthBound(name, false)
	case "pattern":
		return newPattern()
	case "maxItems":
		return newItemsCount(name, true)
	case "minItems":
		return newItemsCount(name, false)
	case "uniqueItems":
		return newUniqueItems()
	case "contains":
		return newContains()
	case "minContains", "maxContains":
		return newContainsBound(name)
	case "prefixItems":
		return newPrefixItems(name)
	case "items":
		return newItems(kind)
	case "additionalItems":
		return newAdditional(name, prioAdditional, false, kind)
	case "unevaluatedItems":
		return newAdditional(name, prioUnevaluated, false, kind)
	case "properties":
		return newProperties()
	case "patternProperties":
		return newPatternProperties()
	case "additionalProperties":
		return newAdditional(name, prioAdditional, true, kind)
	case "unevaluatedProperties":
		return newAdditional(name, prioUnevaluated, true, kind)
	case "propertyNames":
		return newPropertyNames()
	case "required":
		return newRequired()
	case "dependentRequired":
		return newDependentRequired()
	case "maxProperties":
		return newPropsCount(name, true)
	case "minProperties":
		return newPropsCount(name, false)
	case "allOf":
		return newCombinator(name, func(count, total int) bool { return count == total })
	case "anyOf":
		return newCombinator(name, func(count, _ int) bool { return count >= 1 })
	case "oneOf":
		return newCombinator(name, func(count, _ int) bool { return count == 1 })
	case "not":
		return newNot()
	case "if", "then", "else":
		return newConditional(name)
	case "format":
		return newFormat()
	default:
		return newAnnotation(name)
	}
}
