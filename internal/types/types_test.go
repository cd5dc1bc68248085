package types

import "testing"

func TestTypeFlagsString(t *testing.T) {
	tests := []struct {
		flags TypeFlags
		want  string
	}{
		{0, "none"},
		{FlagNumber, "number"},
		{FlagString | FlagStringLiteral, "string|stringLiteral"},
		{FlagObject, "object"},
	}
	for _, tt := range tests {
		if got := tt.flags.String(); got != tt.want {
			t.Errorf("TypeFlags(%d).String() = %q, want %q", tt.flags, got, tt.want)
		}
	}
}

func TestParseFlags(t *testing.T) {
	for _, name := range []string{"any", "number", "booleanLiteral", "object", "void"} {
		f, ok := ParseTypeFlag(name)
		if !ok {
			t.Fatalf("ParseTypeFlag(%q) failed", name)
		}
		if f.String() != name {
			t.Errorf("round trip of %q gave %q", name, f.String())
		}
	}
	if _, ok := ParseTypeFlag("bigint"); ok {
		t.Errorf("ParseTypeFlag accepted an unknown name")
	}

	f, ok := ParseSymbolFlag("method")
	if !ok || f != SymbolMethod {
		t.Errorf("ParseSymbolFlag(method) = %v, %v", f, ok)
	}
}

func TestTypePredicates(t *testing.T) {
	var nilType *Type
	if nilType.Is(FlagAny) || nilType.IsObject() {
		t.Errorf("nil type must not match any flag")
	}
	if nilType.String() != "<nil>" {
		t.Errorf("nil type String() = %q", nilType.String())
	}

	lit := &Type{Flags: FlagStringLiteral, Value: "a"}
	if !lit.IsString() {
		t.Errorf("string literal type should be string-like")
	}

	point := &Type{Flags: FlagObject, Symbol: &Symbol{Name: "Point", Flags: SymbolClass}}
	if !point.IsObject() || point.String() != "Point" {
		t.Errorf("object type predicates wrong: %v", point)
	}
	if !point.Symbol.Is(SymbolClass | SymbolInterface) {
		t.Errorf("Symbol.Is should match any of the given flags")
	}

	named := &Type{Flags: FlagNumber, Name: "number"}
	if named.String() != "number" {
		t.Errorf("named type String() = %q", named.String())
	}
}
