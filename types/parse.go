package types

import (
	"fmt"
	"strconv"
	"strings"
)

// primLookup maps lowercased spellings (including the short aliases used in
// declaration metadata) to primitive types.
var primLookup = map[string]PrimType{}

func init() {
	for pt, name := range primNames {
		primLookup[strings.ToLower(name)] = pt
	}

	primLookup["tod"] = PrimTOD
	primLookup["ltod"] = PrimLTOD
	primLookup["dt"] = PrimDT
	primLookup["ldt"] = PrimLDT
}

// Parse parses the compact SCL type text used in declaration metadata:
// primitive names, quoted or bare user-defined type names, hardware type
// names, `Array[lo..hi, ...] of T`, and `REF_TO T`.
func Parse(text string) (Type, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("empty type text")
	}

	lower := strings.ToLower(text)

	if strings.HasPrefix(lower, "array[") {
		return parseArray(text)
	}

	if strings.HasPrefix(lower, "ref_to ") {
		to, err := Parse(text[len("ref_to "):])
		if err != nil {
			return nil, err
		}

		return &RefType{To: to}, nil
	}

	if pt, ok := primLookup[lower]; ok {
		return pt, nil
	}

	if lower == "any" {
		return AnyType{}, nil
	}

	if strings.HasPrefix(text, `"`) && strings.HasSuffix(text, `"`) && len(text) > 2 {
		return &NamedType{Name: text[1 : len(text)-1]}, nil
	}

	if IsHWTypeName(text) {
		return &HWType{Name: text}, nil
	}

	return &NamedType{Name: text}, nil
}

func parseArray(text string) (Type, error) {
	close := strings.IndexByte(text, ']')
	if close < 0 {
		return nil, fmt.Errorf("malformed array type `%s`", text)
	}

	rest := strings.TrimSpace(text[close+1:])
	if len(rest) < 3 || !strings.EqualFold(rest[:3], "of ") {
		return nil, fmt.Errorf("malformed array type `%s`: missing element type", text)
	}

	elem, err := Parse(rest[3:])
	if err != nil {
		return nil, err
	}

	var dims []Dim
	for _, dimText := range strings.Split(text[len("array["):close], ",") {
		bounds := strings.SplitN(strings.TrimSpace(dimText), "..", 2)
		if len(bounds) != 2 {
			return nil, fmt.Errorf("malformed array dimension `%s`", dimText)
		}

		start, err := strconv.Atoi(strings.TrimSpace(bounds[0]))
		if err != nil {
			return nil, fmt.Errorf("malformed array bound `%s`", bounds[0])
		}

		end, err := strconv.Atoi(strings.TrimSpace(bounds[1]))
		if err != nil {
			return nil, fmt.Errorf("malformed array bound `%s`", bounds[1])
		}

		dims = append(dims, Dim{Start: start, End: end})
	}

	return &ArrayType{Dims: dims, Elem: elem}, nil
}
