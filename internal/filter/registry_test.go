package filter

import (
	"errors"
	"testing"
)

func TestResolveOperator(t *testing.T) {
	r := conferenceRegistry(t)
	want := map[string]Operator{
		"EQ": "=", "GT": ">", "GTEQ": ">=", "LT": "<", "LTEQ": "<=", "NE": "!=",
	}
	for tok, sym := range want {
		got, err := r.ResolveOperator(tok)
		if err != nil {
			t.Fatalf("ResolveOperator(%s): %v", tok, err)
		}
		if got != sym {
			t.Fatalf("ResolveOperator(%s) = %s, want %s", tok, got, sym)
		}
	}
	if _, err := r.ResolveOperator("eq"); err == nil {
		t.Fatalf("expected lower-case token to be rejected")
	}
}

func TestResolveFieldRoundTrip(t *testing.T) {
	r := conferenceRegistry(t)
	for _, tok := range r.Tokens() {
		f, err := r.ResolveField(tok)
		if err != nil {
			t.Fatalf("ResolveField(%s): %v", tok, err)
		}
		back, ok := r.FieldToken(f.Name)
		if !ok || back != tok {
			t.Fatalf("round trip %s -> %s -> %s", tok, f.Name, back)
		}
		again, _ := r.ResolveField(back)
		if again != f {
			t.Fatalf("mapping not idempotent for %s", tok)
		}
	}
	for _, tok := range []string{"EQ", "GT", "GTEQ", "LT", "LTEQ", "NE"} {
		op, _ := r.ResolveOperator(tok)
		back, ok := r.OperatorToken(op)
		if !ok || back != tok {
			t.Fatalf("operator round trip %s -> %s -> %s", tok, op, back)
		}
	}
}

func TestResolveFieldUnknown(t *testing.T) {
	r := conferenceRegistry(t)
	_, err := r.ResolveField("UNKNOWN")
	var target *InvalidFilterError
	if !errors.As(err, &target) || target.Kind != "field" {
		t.Fatalf("expected field InvalidFilterError, got %v", err)
	}
}

func TestExtendDoesNotMutateOriginal(t *testing.T) {
	r := conferenceRegistry(t)
	ext, err := r.Extend(Field{Token: "COUNTRY", Name: "country"})
	if err != nil {
		t.Fatalf("Extend: %v", err)
	}
	if _, err := ext.ResolveField("COUNTRY"); err != nil {
		t.Fatalf("extended registry misses COUNTRY: %v", err)
	}
	if _, err := r.ResolveField("COUNTRY"); err == nil {
		t.Fatalf("original registry was mutated")
	}
	if _, err := ext.ResolveField("CITY"); err != nil {
		t.Fatalf("extended registry lost CITY: %v", err)
	}
}

func TestNewRegistryRejectsBadFields(t *testing.T) {
	cases := map[string][]Field{
		"duplicate token":  {{Token: "A", Name: "a"}, {Token: "A", Name: "b"}},
		"duplicate name":   {{Token: "A", Name: "a"}, {Token: "B", Name: "a"}},
		"unsafe column":    {{Token: "A", Name: "a", Column: "a; DROP TABLE x"}},
		"camel case name":  {{Token: "A", Name: "maxAttendees"}},
		"missing name":     {{Token: "A"}},
		"unsafe cast type": {{Token: "A", Name: "a", Cast: "date)"}},
	}
	for name, fields := range cases {
		if _, err := NewRegistry("name", fields...); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
	if _, err := NewRegistry(""); err == nil {
		t.Fatalf("expected error for empty sort field")
	}
}
