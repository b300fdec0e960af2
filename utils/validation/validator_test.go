package validation

import "testing"

func TestEmail(t *testing.T) {
	v := NewValidator()

	valid := []string{"admin@example.com", "a.b+c@sub.example.co.in"}
	for _, email := range valid {
		if !v.Email(email) {
			t.Errorf("Email(%q) = false, want true", email)
		}
	}

	invalid := []string{"", "not-an-email", "missing@tld@twice", "@example.com"}
	for _, email := range invalid {
		if v.Email(email) {
			t.Errorf("Email(%q) = true, want false", email)
		}
	}
}

func TestMobile(t *testing.T) {
	v := NewValidator()

	if !v.Mobile("9876543210") {
		t.Error("10-digit number rejected")
	}

	invalid := []string{"", "12345", "98765432101", "98765abc10", "+919876543"}
	for _, mobile := range invalid {
		if v.Mobile(mobile) {
			t.Errorf("Mobile(%q) = true, want false", mobile)
		}
	}
}

func TestUUID(t *testing.T) {
	v := NewValidator()

	if !v.UUID("0198c1a2-7f3e-7000-8000-000000000001") {
		t.Error("valid UUID rejected")
	}
	if v.UUID("not-a-uuid") {
		t.Error("garbage accepted as UUID")
	}
	if v.UUID("") {
		t.Error("empty string accepted as UUID")
	}
}

func TestSanitizeString(t *testing.T) {
	cases := map[string]string{
		"  padded  ":      "padded",
		"nul\x00byte":     "nulbyte",
		"\x00 \x00mix \t": "mix",
		"clean":           "clean",
	}
	for in, want := range cases {
		if got := SanitizeString(in); got != want {
			t.Errorf("SanitizeString(%q) = %q, want %q", in, got, want)
		}
	}
}
