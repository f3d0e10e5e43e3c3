package auth

import "testing"

func TestCheckPasswordComplexity(t *testing.T) {
	tests := []struct {
		password string
		ok       bool
	}{
		{"Str0ng!pass", true},
		{"Aa1!aaaa", true},
		{"short1!", false},       // too short
		{"alllower1!aa", false},  // no uppercase
		{"ALLUPPER1!AA", false},  // no lowercase
		{"NoDigits!here", false}, // no digit
		{"NoSpecial1here", false},
		{"", false},
	}
	for _, tt := range tests {
		err := CheckPasswordComplexity(tt.password)
		if tt.ok && err != nil {
			t.Errorf("password %q: unexpected error: %v", tt.password, err)
		}
		if !tt.ok && err == nil {
			t.Errorf("password %q: expected error, got none", tt.password)
		}
	}
}

func TestParseRole(t *testing.T) {
	for _, s := range []string{"reader", "editor", "journalist"} {
		role, err := ParseRole(s)
		if err != nil {
			t.Fatalf("ParseRole(%q): %v", s, err)
		}
		if role.String() != s {
			t.Errorf("ParseRole(%q) = %q", s, role)
		}
	}
	if _, err := ParseRole("admin"); err == nil {
		t.Error("ParseRole(admin) should fail")
	}
}
