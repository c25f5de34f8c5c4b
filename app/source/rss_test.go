package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

const testRSS = `<?xml version="1.0" encoding="UTF-8"?>
<rss xmlns:dc="http://purl.org/dc/elements/1.1/" version="2.0">
  <channel>
    <title>someuser / Twitter</title>
    <link>https://nitter.example/someuser</link>
    <item>
      <title>the newest post body</title>
      <dc:creator>@someuser</dc:creator>
      <pubDate>Tue, 14 Nov 2023 22:13:20 GMT</pubDate>
      <guid>https://nitter.example/someuser/status/200#m</guid>
      <link>https://nitter.example/someuser/status/200#m</link>
    </item>
    <item>
      <title>RT by someuser: a retweet from elsewhere</title>
      <dc:creator>@otheruser</dc:creator>
      <pubDate>Tue, 14 Nov 2023 22:12:00 GMT</pubDate>
      <guid>https://nitter.example/otheruser/status/199#m</guid>
      <link>https://nitter.example/otheruser/status/199#m</link>
    </item>
  </channel>
</rss>`

func TestRSSSource_Fetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/someuser/rss" {
			t.Errorf("Unexpected request path: %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/rss+xml")
		w.Write([]byte(testRSS))
	}))
	defer server.Close()

	src := NewRSSSource(server.URL, "tweetwatch-test/1.0")
	defer src.Close()

	items, err := src.Fetch(context.Background(), "someuser")
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}

	if len(items) != 2 {
		t.Fatalf("Expected 2 raw items, got %d", len(items))
	}

	if items[0].NativeID != "200" {
		t.Errorf("Expected ID '200' from the status link, got '%s'", items[0].NativeID)
	}
	if items[0].Author != "someuser" {
		t.Errorf("Expected author 'someuser', got '%s'", items[0].Author)
	}
	if items[0].CreatedAt == nil {
		t.Error("Expected pubDate to be parsed")
	}

	// The retweet keeps its real creator so the normalizer can drop it
	if items[1].Author != "otheruser" {
		t.Errorf("Expected author 'otheruser', got '%s'", items[1].Author)
	}
}

func TestRSSSource_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	src := NewRSSSource(server.URL, "tweetwatch-test/1.0")
	defer src.Close()

	if _, err := src.Fetch(context.Background(), "someuser"); err == nil {
		t.Error("Expected error on upstream failure, got nil")
	}
}
