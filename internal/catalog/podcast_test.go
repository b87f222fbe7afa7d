package catalog

import (
	"crypto/sha1"
	"fmt"
	"testing"
	"time"
)

func TestPodcastAuthHeaders(t *testing.T) {
	client := NewPodcastClient("key", "secret")
	client.now = func() time.Time { return time.Unix(1700000000, 0) }

	headers := client.authHeaders()

	if headers["X-Auth-Key"] != "key" {
		t.Errorf("X-Auth-Key = %q, want %q", headers["X-Auth-Key"], "key")
	}
	if headers["X-Auth-Date"] != "1700000000" {
		t.Errorf("X-Auth-Date = %q, want %q", headers["X-Auth-Date"], "1700000000")
	}

	// Authorization is sha1(key + secret + unix time) in lowercase hex.
	want := fmt.Sprintf("%x", sha1.Sum([]byte("keysecret1700000000")))
	if headers["Authorization"] != want {
		t.Errorf("Authorization = %q, want %q", headers["Authorization"], want)
	}
}

func TestPodcastAuthHeadersChangeWithTime(t *testing.T) {
	client := NewPodcastClient("key", "secret")

	client.now = func() time.Time { return time.Unix(1700000000, 0) }
	first := client.authHeaders()["Authorization"]

	client.now = func() time.Time { return time.Unix(1700000001, 0) }
	second := client.authHeaders()["Authorization"]

	if first == second {
		t.Error("Authorization should change with the timestamp")
	}
}
