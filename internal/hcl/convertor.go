package hcl

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
)

// bodyAttributesForLogs evaluates the literal attributes of a body and
// returns them as a plain map so slog renders something readable instead of
// opaque expression values.
func bodyAttributesForLogs(body hcl.Body) map[string]any {
	if body == nil {
		return nil
	}
	attrs, diags := body.JustAttributes()
	if diags.HasErrors() {
		return map[string]any{"error": diags.Error()}
	}
	out := make(map[string]any, len(attrs))
	for name, attr := range attrs {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			out[name] = fmt.Sprintf("[unevaluable: %s]", diags.Error())
			continue
		}
		out[name] = ctyValueToInterface(val)
	}
	return out
}

// ctyValueToInterface converts a cty.Value to its loggable Go
// representation. Unknown and null values come back as nil.
func ctyValueToInterface(val cty.Value) any {
	if val.IsNull() || !val.IsKnown() {
		return nil
	}
	ty := val.Type()
	switch {
	case ty == cty.String:
		return val.AsString()
	case ty == cty.Number:
		f, _ := val.AsBigFloat().Float64()
		return f
	case ty == cty.Bool:
		return val.True()
	case ty.IsTupleType() || ty.IsListType() || ty.IsSetType():
		var out []any
		for it := val.ElementIterator(); it.Next(); {
			_, ev := it.Element()
			out = append(out, ctyValueToInterface(ev))
		}
		return out
	case ty.IsObjectType() || ty.IsMapType():
		out := make(map[string]any)
		for it := val.ElementIterator(); it.Next(); {
			kv, ev := it.Element()
			out[kv.AsString()] = ctyValueToInterface(ev)
		}
		return out
	default:
		return val.GoString()
	}
}
