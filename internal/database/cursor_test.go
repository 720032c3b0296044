package database

import "testing"

func TestCursorRoundTrip(t *testing.T) {
	key := EncodeCursor(12.5, "3f1c2a44-0000-4000-8000-000000000001")

	cur, err := DecodeCursor(key)
	if err != nil {
		t.Fatalf("DecodeCursor: %v", err)
	}
	if cur.StartTime != 12.5 {
		t.Errorf("StartTime = %v, want 12.5", cur.StartTime)
	}
	if cur.ID != "3f1c2a44-0000-4000-8000-000000000001" {
		t.Errorf("ID = %q", cur.ID)
	}
}

func TestDecodeCursor_Invalid(t *testing.T) {
	cases := []struct {
		name string
		key  string
	}{
		{"garbage", "!!!not-base64!!!"},
		{"not_json", "bm90LWpzb24"},
		{"missing_id", "eyJzIjoxLjV9"}, // {"s":1.5}
		{"empty", ""},
	}
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeCursor(tt.key); err == nil {
				t.Errorf("DecodeCursor(%q) should fail", tt.key)
			}
		})
	}
}

func TestEncodeCursor_Opaque(t *testing.T) {
	// Cursors must be URL-safe: they ride in a query parameter.
	key := EncodeCursor(99.25, "id-with-+/chars")
	for _, c := range key {
		if c == '+' || c == '/' || c == '=' {
			t.Fatalf("cursor %q contains non-URL-safe character %q", key, c)
		}
	}
}
