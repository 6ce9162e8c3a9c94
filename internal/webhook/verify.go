// Package webhook receives user lifecycle events from the identity provider
// and mirrors them into the local user store.
package webhook

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	svix "github.com/svix/svix-webhooks/go"
)

// ErrInvalidSignature is wrapped by every verification failure.
var ErrInvalidSignature = errors.New("invalid webhook signature")

const (
	headerID        = "svix-id"
	headerTimestamp = "svix-timestamp"
	headerSignature = "svix-signature"
)

// Verifier checks that a delivery was signed by the identity provider.
type Verifier interface {
	Verify(h http.Header, body []byte) error
}

// SignatureVerifier checks Svix signatures, the scheme Clerk signs its
// webhooks with. Deliveries more than five minutes old or early are rejected.
type SignatureVerifier struct {
	wh *svix.Webhook
}

// NewSignatureVerifier decodes secret. The whsec_ prefix is optional.
func NewSignatureVerifier(secret string) (*SignatureVerifier, error) {
	if secret == "" {
		return nil, errors.New("webhook secret is empty")
	}
	wh, err := svix.NewWebhook(secret)
	if err != nil {
		return nil, fmt.Errorf("decoding webhook secret: %w", err)
	}
	return &SignatureVerifier{wh: wh}, nil
}

// Verify returns nil if one of the v1 signatures in h matches body.
func (v *SignatureVerifier) Verify(h http.Header, body []byte) error {
	if err := v.wh.Verify(body, h); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}
	return nil
}

// Sign returns the svix-signature header value for a delivery.
func (v *SignatureVerifier) Sign(id string, at time.Time, body []byte) (string, error) {
	sig, err := v.wh.Sign(id, at, body)
	if err != nil {
		return "", fmt.Errorf("signing delivery %s: %w", id, err)
	}
	return sig, nil
}
