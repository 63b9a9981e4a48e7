package monkey

import (
	"fmt"
	"strconv"
	"strings"
)

func (k ValueKind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "boolean"
	case KindInt:
		return "integer"
	case KindFunction:
		return "function"
	case KindError:
		return "error"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// String renders the value for display. Functions render as an opaque
// summary rather than their source.
func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindBool:
		return strconv.FormatBool(v.Bool())
	case KindInt:
		return strconv.FormatInt(v.Int(), 10)
	case KindFunction:
		fn := v.Function()
		label := "fn"
		if fn.Name != "" {
			label = "fn " + fn.Name
		}
		return label + "(" + strings.Join(fn.Params, ", ") + ") { ... }"
	case KindError:
		return v.Err().Summary()
	default:
		return fmt.Sprintf("<%s>", v.kind)
	}
}

// Inspect is String with the kind tag made explicit for errors, which is what
// shells print when they do not style errors differently.
func (v Value) Inspect() string {
	if v.kind == KindError {
		return "ERROR: " + v.String()
	}
	return v.String()
}

// Truthy implements the conditional rule: false and null are falsy, every
// other value (including 0) is truthy.
func (v Value) Truthy() bool {
	switch v.kind {
	case KindNull:
		return false
	case KindBool:
		return v.Bool()
	default:
		return true
	}
}

// Equal compares kind and value. Functions compare by identity, errors by
// kind, message and position.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.Bool() == other.Bool()
	case KindInt:
		return v.Int() == other.Int()
	case KindFunction:
		return v.Function() == other.Function()
	case KindError:
		a, b := v.Err(), other.Err()
		return a.Kind == b.Kind && a.Message == b.Message && a.Pos == b.Pos
	default:
		return false
	}
}
