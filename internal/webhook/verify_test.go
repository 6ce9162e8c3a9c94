package webhook

import (
	"encoding/base64"
	"errors"
	"net/http"
	"strconv"
	"testing"
	"time"
)

var testSecret = "whsec_" + base64.StdEncoding.EncodeToString([]byte("super-secret-signing-key"))

func newTestVerifier(t *testing.T) *SignatureVerifier {
	t.Helper()
	v, err := NewSignatureVerifier(testSecret)
	if err != nil {
		t.Fatalf("NewSignatureVerifier: %v", err)
	}
	return v
}

func signedHeader(t *testing.T, v *SignatureVerifier, id string, at time.Time, body []byte) http.Header {
	t.Helper()
	sig, err := v.Sign(id, at, body)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	h := http.Header{}
	h.Set(headerID, id)
	h.Set(headerTimestamp, strconv.FormatInt(at.Unix(), 10))
	h.Set(headerSignature, sig)
	return h
}

func TestNewSignatureVerifier(t *testing.T) {
	if _, err := NewSignatureVerifier(""); err == nil {
		t.Error("expected error for empty secret")
	}
	if _, err := NewSignatureVerifier("whsec_not base64!"); err == nil {
		t.Error("expected error for undecodable secret")
	}
	raw := base64.StdEncoding.EncodeToString([]byte("k"))
	if _, err := NewSignatureVerifier(raw); err != nil {
		t.Errorf("secret without prefix: %v", err)
	}
}

func TestSignatureVerifier_Verify(t *testing.T) {
	now := time.Now()
	v := newTestVerifier(t)
	body := []byte(`{"type":"user.created","data":{"id":"user_1"}}`)

	other, err := NewSignatureVerifier("whsec_" + base64.StdEncoding.EncodeToString([]byte("another-key")))
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		header  func() http.Header
		body    []byte
		wantErr bool
	}{
		{
			name:   "valid",
			header: func() http.Header { return signedHeader(t, v, "msg_1", now, body) },
			body:   body,
		},
		{
			name:   "valid within tolerance",
			header: func() http.Header { return signedHeader(t, v, "msg_1", now.Add(-4*time.Minute), body) },
			body:   body,
		},
		{
			name: "one of several signatures matches",
			header: func() http.Header {
				h := signedHeader(t, v, "msg_1", now, body)
				h.Set(headerSignature, "v1,bm9wZQ== v2,abc "+h.Get(headerSignature))
				return h
			},
			body: body,
		},
		{
			name:    "tampered body",
			header:  func() http.Header { return signedHeader(t, v, "msg_1", now, body) },
			body:    []byte(`{"type":"user.deleted","data":{"id":"user_1"}}`),
			wantErr: true,
		},
		{
			name:    "wrong secret",
			header:  func() http.Header { return signedHeader(t, other, "msg_1", now, body) },
			body:    body,
			wantErr: true,
		},
		{
			name:    "stale timestamp",
			header:  func() http.Header { return signedHeader(t, v, "msg_1", now.Add(-6*time.Minute), body) },
			body:    body,
			wantErr: true,
		},
		{
			name:    "future timestamp",
			header:  func() http.Header { return signedHeader(t, v, "msg_1", now.Add(6*time.Minute), body) },
			body:    body,
			wantErr: true,
		},
		{
			name: "id mismatch",
			header: func() http.Header {
				h := signedHeader(t, v, "msg_1", now, body)
				h.Set(headerID, "msg_2")
				return h
			},
			body:    body,
			wantErr: true,
		},
		{
			name: "bad timestamp",
			header: func() http.Header {
				h := signedHeader(t, v, "msg_1", now, body)
				h.Set(headerTimestamp, "yesterday")
				return h
			},
			body:    body,
			wantErr: true,
		},
		{
			name: "unsupported version only",
			header: func() http.Header {
				h := signedHeader(t, v, "msg_1", now, body)
				h.Set(headerSignature, "v2"+h.Get(headerSignature)[2:])
				return h
			},
			body:    body,
			wantErr: true,
		},
		{
			name:    "missing headers",
			header:  func() http.Header { return http.Header{} },
			body:    body,
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Verify(tt.header(), tt.body)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Verify() err = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidSignature) {
				t.Errorf("error %v does not wrap ErrInvalidSignature", err)
			}
		})
	}
}

func TestSignatureVerifier_KnownVector(t *testing.T) {
	v, err := NewSignatureVerifier("whsec_MfKQ9r8GKYqrTwjUPD8ILPZIo2LaLaSw")
	if err != nil {
		t.Fatal(err)
	}
	const (
		id   = "msg_p5jXN8AQM9LWM0D4loKWxJek"
		want = "v1,g0hM9SsE+OTPJTGt/tmIKtSyZlE3uFJELVlNIOLJ1OE="
	)
	body := []byte(`{"test": 2432232314}`)
	at := time.Unix(1614265330, 0)

	got, err := v.Sign(id, at, body)
	if err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Errorf("Sign() = %q, want %q", got, want)
	}

	h := http.Header{}
	h.Set(headerID, id)
	h.Set(headerTimestamp, "1614265330")
	h.Set(headerSignature, want)
	if err := v.Verify(h, body); !errors.Is(err, ErrInvalidSignature) {
		t.Errorf("Verify() of a 2021 delivery = %v, want stale timestamp rejection", err)
	}
}
