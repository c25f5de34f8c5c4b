package source

import (
	"testing"
)

func TestStatusIDFromURL(t *testing.T) {
	cases := []struct {
		url  string
		want string
	}{
		{"https://x.com/user/status/1234567890123456789", "1234567890123456789"},
		{"https://x.com/user/status/1234567890123456789?s=20", "1234567890123456789"},
		{"/user/status/987654321/photo/1", "987654321"},
		{"https://nitter.example/user/status/555#m", "555"},
		{"https://x.com/user/with_replies", ""},
		{"", ""},
	}

	for _, c := range cases {
		if got := StatusIDFromURL(c.url); got != c.want {
			t.Errorf("StatusIDFromURL(%q) = %q, want %q", c.url, got, c.want)
		}
	}
}
