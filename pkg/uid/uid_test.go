package uid

import "testing"

func TestIsValid(t *testing.T) {
	t.Parallel()

	if !IsValid(New()) {
		t.Fatalf("New() should produce a valid id")
	}

	for _, id := range []string{"", "abc", "{6ba7b810-9dad-11d1-80b4-00c04fd430c8}", "urn:uuid:6ba7b810-9dad-11d1-80b4-00c04fd430c8"} {
		if IsValid(id) {
			t.Fatalf("IsValid(%q) got true, want false", id)
		}
	}
}
