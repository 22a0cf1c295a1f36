package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestGenerateAndParse(t *testing.T) {
	tm := NewTokenManager("0123456789abcdef", "gagyebu", time.Hour)

	raw, exp, err := tm.Generate("test")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if time.Until(exp) < 59*time.Minute {
		t.Errorf("expiry %v too early", exp)
	}

	sub, err := tm.Parse(raw)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if sub != "test" {
		t.Errorf("subject = %q, want test", sub)
	}
}

func TestParseRejects(t *testing.T) {
	tm := NewTokenManager("0123456789abcdef", "gagyebu", time.Hour)
	good, _, _ := tm.Generate("test")

	expired := NewTokenManager("0123456789abcdef", "gagyebu", time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	old, _, _ := expired.Generate("test")

	otherKey := NewTokenManager("fedcba9876543210", "gagyebu", time.Hour)
	forged, _, _ := otherKey.Generate("test")

	otherIssuer := NewTokenManager("0123456789abcdef", "someone-else", time.Hour)
	foreign, _, _ := otherIssuer.Generate("test")

	none := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"iss": "gagyebu", "sub": "test", "exp": time.Now().Add(time.Hour).Unix()})
	unsigned, _ := none.SignedString(jwt.UnsafeAllowNoneSignatureType)

	tests := map[string]string{
		"garbage":      "not-a-token",
		"tampered":     good + "x",
		"expired":      old,
		"wrong key":    forged,
		"wrong issuer": foreign,
		"alg none":     unsigned,
	}
	for name, raw := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := tm.Parse(raw); !errors.Is(err, ErrInvalidToken) {
				t.Errorf("Parse err = %v, want ErrInvalidToken", err)
			}
		})
	}
}
