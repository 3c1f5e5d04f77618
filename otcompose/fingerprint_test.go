package otcompose

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestFingerprintDeterministic(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontisan.compose")
	defer teardown()
	//
	fp := newFingerprinter()
	body := []byte("some table body")
	if fp.fingerprint(body) != fp.fingerprint(body) {
		t.Error("expected identical digests for the same buffer")
	}
}

func TestFingerprintContentIdentity(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontisan.compose")
	defer teardown()
	//
	// distinct buffers, equal content: the cache must not get in the way
	fp := newFingerprinter()
	a := []byte("glyf body bytes")
	b := append([]byte{}, a...)
	if fp.fingerprint(a) != fp.fingerprint(b) {
		t.Error("expected equal digests for equal content in distinct buffers")
	}
	c := []byte("different bytes!")
	if fp.fingerprint(a) == fp.fingerprint(c) {
		t.Error("expected different digests for different content")
	}
}

func TestFingerprintBufferCache(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontisan.compose")
	defer teardown()
	//
	fp := newFingerprinter()
	body := []byte("shared buffer")
	d := fp.fingerprint(body)
	if len(fp.cache) != 1 {
		t.Fatalf("expected 1 cache entry, have %d", len(fp.cache))
	}
	if fp.fingerprint(body) != d {
		t.Error("expected cache hit to return the original digest")
	}
	if len(fp.cache) != 1 {
		t.Errorf("expected cache hit to add no entry, have %d", len(fp.cache))
	}
}

func TestFingerprintEmptyBody(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontisan.compose")
	defer teardown()
	//
	fp := newFingerprinter()
	if fp.fingerprint(nil) != fp.fingerprint([]byte{}) {
		t.Error("expected nil and empty bodies to hash alike")
	}
}
