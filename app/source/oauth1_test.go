package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestOAuth1Source_Fetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/1.1/statuses/user_timeline.json" {
			t.Errorf("Unexpected request path: %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if got := r.URL.Query().Get("screen_name"); got != "someuser" {
			t.Errorf("Expected screen_name 'someuser', got %q", got)
		}
		if auth := r.Header.Get("Authorization"); !strings.HasPrefix(auth, "OAuth ") {
			t.Errorf("Expected OAuth1 signed request, got Authorization: %q", auth)
		}

		w.Write([]byte(`[
			{"id_str":"200","full_text":"newest","created_at":"Tue Nov 14 22:13:20 +0000 2023","user":{"screen_name":"someuser"}},
			{"id_str":"199","text":"older, no full_text","created_at":"Tue Nov 14 22:12:00 +0000 2023","user":{"screen_name":"someuser"}}
		]`))
	}))
	defer server.Close()

	src := NewOAuth1Source("ck", "cs", "at", "as", server.URL)
	defer src.Close()

	items, err := src.Fetch(context.Background(), "@someuser")
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}

	if len(items) != 2 {
		t.Fatalf("Expected 2 items, got %d", len(items))
	}
	if items[0].NativeID != "200" || items[0].Text != "newest" {
		t.Errorf("Unexpected first item: %+v", items[0])
	}
	if items[1].Text != "older, no full_text" {
		t.Errorf("Expected fallback to the text field, got %q", items[1].Text)
	}
	if items[0].CreatedAt == nil {
		t.Fatal("Expected created_at to be parsed")
	}
	if items[0].CreatedAt.Unix() != 1700000000 {
		t.Errorf("Unexpected parsed time: %v", items[0].CreatedAt)
	}
}
