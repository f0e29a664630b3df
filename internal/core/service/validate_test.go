package service

import "testing"

func TestFieldName(t *testing.T) {
	cases := map[string]string{
		"FirstName":  "first name",
		"Email":      "email",
		"CustomerID": "customer id",
		"ProductID":  "product id",
		"Quantity":   "quantity",
	}
	for in, want := range cases {
		if got := fieldName(in); got != want {
			t.Fatalf("fieldName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestPhonePattern(t *testing.T) {
	valid := []string{"555-123-4567", "000-000-0000"}
	for _, p := range valid {
		if !phonePattern.MatchString(p) {
			t.Fatalf("expected %q to be a valid phone", p)
		}
	}
	invalid := []string{"5551234567", "555-123-456", "abc-def-ghij", "555 123 4567", ""}
	for _, p := range invalid {
		if phonePattern.MatchString(p) {
			t.Fatalf("expected %q to be rejected", p)
		}
	}
}
