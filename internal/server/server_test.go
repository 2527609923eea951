package server

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func get(t *testing.T, srv *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	t.Parallel()

	rec := get(t, New(), "/health")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("status field = %q", body["status"])
	}
}

func TestGenerators(t *testing.T) {
	t.Parallel()

	rec := get(t, New(), "/generators")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var body []struct {
		Name      string `json:"name"`
		SeedWidth int    `json:"seed_width"`
		BlockSize int    `json:"block_size"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body) != 4 {
		t.Errorf("listed %d generators, want 4", len(body))
	}
}

// The stream endpoint must return the generator's canonical bytes -
// here checked against the MT19937-64 seed-5489 reference words.
func TestStream_ReferenceBytes(t *testing.T) {
	t.Parallel()

	rec := get(t, New(), "/stream?generator=lagged&seed=5489&n=16")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/octet-stream" {
		t.Errorf("content type = %q", ct)
	}

	var want [16]byte
	binary.LittleEndian.PutUint64(want[0:8], 14514284786278117030)
	binary.LittleEndian.PutUint64(want[8:16], 4620546740167642908)

	got, _ := io.ReadAll(rec.Body)
	if !bytes.Equal(got, want[:]) {
		t.Errorf("body = %x, want %x", got, want)
	}
}

func TestStream_SplitDiffers(t *testing.T) {
	t.Parallel()

	srv := New()
	plain, _ := io.ReadAll(get(t, srv, "/stream?generator=siphash&seed=5&n=32").Body)
	s0, _ := io.ReadAll(get(t, srv, "/stream?generator=siphash&seed=5&n=32&split=0").Body)
	s0again, _ := io.ReadAll(get(t, srv, "/stream?generator=siphash&seed=5&n=32&split=0").Body)
	s1, _ := io.ReadAll(get(t, srv, "/stream?generator=siphash&seed=5&n=32&split=1").Body)

	if !bytes.Equal(s0, s0again) {
		t.Error("split 0 not reproducible across requests")
	}
	if bytes.Equal(s0, s1) {
		t.Error("splits 0 and 1 returned identical bytes")
	}
	if bytes.Equal(plain, s0) {
		t.Error("split 0 aliases the unsplit stream")
	}
}

func TestStream_BadRequests(t *testing.T) {
	t.Parallel()

	srv := New()
	cases := []struct {
		path   string
		status int
	}{
		{"/stream?generator=nonesuch&n=16", http.StatusNotFound},
		{"/stream?n=16", http.StatusBadRequest},
		{"/stream?generator=lagged", http.StatusBadRequest},
		{"/stream?generator=lagged&n=-5", http.StatusBadRequest},
		{"/stream?generator=cipher&seed=0xabcd&n=16", http.StatusBadRequest}, // 2 bytes, cipher needs 32
		{"/stream?generator=lagged&seed=bogus&n=16", http.StatusBadRequest},
		{"/stream?generator=lagged&seed=1&n=16&split=-1", http.StatusBadRequest},
	}
	for _, tc := range cases {
		rec := get(t, srv, tc.path)
		if rec.Code != tc.status {
			t.Errorf("%s: status = %d, want %d (body %s)", tc.path, rec.Code, tc.status, rec.Body.String())
		}
	}
}
