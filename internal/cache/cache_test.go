package cache

import (
	"testing"
	"time"
)

func TestSetGetRoundTrip(t *testing.T) {
	c := New(true)
	etag := c.Set("k", []byte(`{"a":1}`), time.Minute)
	if etag == "" {
		t.Fatal("Set returned empty etag")
	}

	data, gotTag, ok := c.Get("k")
	if !ok {
		t.Fatal("Get miss after Set")
	}
	if string(data) != `{"a":1}` {
		t.Errorf("data = %s", data)
	}
	if gotTag != etag {
		t.Errorf("etag = %q, want %q", gotTag, etag)
	}
}

func TestDisabledCacheNeverHits(t *testing.T) {
	c := New(false)
	etag := c.Set("k", []byte("v"), time.Minute)
	if etag == "" {
		t.Error("disabled cache must still compute an etag")
	}
	if _, _, ok := c.Get("k"); ok {
		t.Error("disabled cache returned a hit")
	}
}

func TestExpiredEntryMisses(t *testing.T) {
	c := New(true)
	c.Set("k", []byte("v"), -time.Second)
	if _, _, ok := c.Get("k"); ok {
		t.Error("expired entry returned a hit")
	}
}

func TestETagDeterministic(t *testing.T) {
	a := ComputeETag([]byte("payload"))
	b := ComputeETag([]byte("payload"))
	if a != b {
		t.Errorf("etags differ: %q vs %q", a, b)
	}
	if a == ComputeETag([]byte("other")) {
		t.Error("different payloads share an etag")
	}
}

func TestCheckETagMatch(t *testing.T) {
	etag := ComputeETag([]byte("v"))
	if !CheckETagMatch(etag, etag) {
		t.Error("exact match failed")
	}
	if !CheckETagMatch("*", etag) {
		t.Error("wildcard match failed")
	}
	if CheckETagMatch("", etag) {
		t.Error("empty header matched")
	}
	if CheckETagMatch(`W/"nope"`, etag) {
		t.Error("mismatched etag matched")
	}
}

func TestPurgeByPrefix(t *testing.T) {
	c := New(true)
	c.Set("dashboard:summary:2024-25:0", []byte("a"), time.Minute)
	c.Set("dashboard:summary:2023-24:0", []byte("b"), time.Minute)
	c.Set("prediction:best:2024-25", []byte("c"), time.Minute)

	if got := c.Purge("dashboard:summary:2024-25"); got != 1 {
		t.Errorf("Purge removed %d entries, want 1", got)
	}
	if _, _, ok := c.Get("dashboard:summary:2024-25:0"); ok {
		t.Error("purged entry still readable")
	}
	if _, _, ok := c.Get("dashboard:summary:2023-24:0"); !ok {
		t.Error("unrelated season entry was purged")
	}
	if _, _, ok := c.Get("prediction:best:2024-25"); !ok {
		t.Error("unrelated keyspace entry was purged")
	}

	if got := c.Purge(""); got != 2 {
		t.Errorf("full purge removed %d entries, want 2", got)
	}
}

func TestPurgeDisabledCache(t *testing.T) {
	c := New(false)
	c.Set("k", []byte("v"), time.Minute)
	if got := c.Purge(""); got != 0 {
		t.Errorf("disabled cache purged %d entries, want 0", got)
	}
}
