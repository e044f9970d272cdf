package v1alpha1

import (
	"math"
	"strconv"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/rpg-build-optimizer/internal/errors"
)

// maxExactInt is the largest integer a JSON number holds exactly
const maxExactInt = 1 << 53

// reader pulls typed fields out of a request struct, collecting problems
// instead of stopping at the first one
type reader struct {
	fields map[string]*structpb.Value
	vb     *errors.ValidationBuilder
}

func newReader(s *structpb.Struct) *reader {
	return &reader{
		fields: s.GetFields(),
		vb:     errors.NewValidationBuilder(),
	}
}

func (r *reader) Err() error {
	return r.vb.Build()
}

// lookup returns the named value. Missing and null fields are absent.
func (r *reader) lookup(name string, required bool) (*structpb.Value, bool) {
	if v, ok := r.fields[name]; ok && v.GetKind() != nil {
		if _, isNull := v.GetKind().(*structpb.Value_NullValue); !isNull {
			return v, true
		}
	}
	if required {
		r.vb.RequiredField(name)
	}
	return nil, false
}

func (r *reader) String(name string, required bool) string {
	v, ok := r.lookup(name, required)
	if !ok {
		return ""
	}
	s, isString := v.GetKind().(*structpb.Value_StringValue)
	if !isString {
		r.vb.InvalidField(name, "must be a string")
		return ""
	}
	if required && s.StringValue == "" {
		r.vb.RequiredField(name)
	}
	return s.StringValue
}

func (r *reader) Bool(name string) bool {
	v, ok := r.lookup(name, false)
	if !ok {
		return false
	}
	b, isBool := v.GetKind().(*structpb.Value_BoolValue)
	if !isBool {
		r.vb.InvalidField(name, "must be a boolean")
		return false
	}
	return b.BoolValue
}

func (r *reader) Number(name string) float64 {
	v, ok := r.lookup(name, false)
	if !ok {
		return 0
	}
	n, isNumber := v.GetKind().(*structpb.Value_NumberValue)
	if !isNumber || math.IsNaN(n.NumberValue) || math.IsInf(n.NumberValue, 0) {
		r.vb.InvalidField(name, "must be a finite number")
		return 0
	}
	return n.NumberValue
}

func (r *reader) Int(name string, required bool) int {
	v, ok := r.lookup(name, required)
	if !ok {
		return 0
	}
	n, isNumber := v.GetKind().(*structpb.Value_NumberValue)
	if !isNumber || n.NumberValue != math.Trunc(n.NumberValue) || math.Abs(n.NumberValue) > maxExactInt {
		r.vb.InvalidField(name, "must be an integer")
		return 0
	}
	return int(n.NumberValue)
}

// Uint64 accepts a non-negative integer number or a decimal string, so
// seeds above 2^53 survive the trip through JSON
func (r *reader) Uint64(name string) uint64 {
	v, ok := r.lookup(name, false)
	if !ok {
		return 0
	}
	switch k := v.GetKind().(type) {
	case *structpb.Value_StringValue:
		n, err := strconv.ParseUint(k.StringValue, 10, 64)
		if err != nil {
			r.vb.InvalidField(name, "must be an unsigned decimal integer")
			return 0
		}
		return n
	case *structpb.Value_NumberValue:
		f := k.NumberValue
		if f < 0 || f != math.Trunc(f) || f > maxExactInt {
			r.vb.InvalidField(name, "must be a non-negative integer")
			return 0
		}
		return uint64(f)
	default:
		r.vb.InvalidField(name, "must be a number or a decimal string")
		return 0
	}
}

// formatSeed renders a seed as a decimal string
func formatSeed(seed uint64) string {
	return strconv.FormatUint(seed, 10)
}
