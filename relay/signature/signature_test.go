package signature

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSign(t *testing.T) {
	t.Run("produces lowercase hex HMAC-SHA256", func(t *testing.T) {
		body := []byte(`{"type":"message.new"}`)
		secret := "super-secret"

		sig := Sign(body, secret)

		mac := hmac.New(sha256.New, []byte(secret))
		mac.Write(body)
		expected := hex.EncodeToString(mac.Sum(nil))

		assert.Equal(t, expected, sig)
		assert.Equal(t, strings.ToLower(sig), sig)
		assert.Len(t, sig, 64)
	})

	t.Run("deterministic", func(t *testing.T) {
		body := []byte(`{"a":1}`)
		assert.Equal(t, Sign(body, "s"), Sign(body, "s"))
	})

	t.Run("different secrets produce different signatures", func(t *testing.T) {
		body := []byte(`{"a":1}`)
		assert.NotEqual(t, Sign(body, "one"), Sign(body, "two"))
	})
}

func TestVerify(t *testing.T) {
	t.Run("accepts valid signature", func(t *testing.T) {
		body := []byte(`{"type":"message.new","cid":"messaging:general"}`)
		secret := "stream-api-secret"

		sig := Sign(body, secret)

		assert.True(t, Verify(body, sig, secret))
	})

	t.Run("rejects signature of a different body", func(t *testing.T) {
		secret := "stream-api-secret"
		sig := Sign([]byte(`{"type":"message.new"}`), secret)

		assert.False(t, Verify([]byte(`{"type":"message.updated"}`), sig, secret))
	})

	t.Run("rejects tampered body", func(t *testing.T) {
		body := []byte(`{"amount":10}`)
		secret := "stream-api-secret"
		sig := Sign(body, secret)

		tampered := []byte(`{"amount":99}`)
		assert.False(t, Verify(tampered, sig, secret))
	})

	t.Run("rejects tampered signature", func(t *testing.T) {
		body := []byte(`{"type":"message.new"}`)
		secret := "stream-api-secret"
		sig := Sign(body, secret)

		// Flip the last hex digit
		last := sig[len(sig)-1]
		flipped := byte('0')
		if last == '0' {
			flipped = '1'
		}
		tampered := sig[:len(sig)-1] + string(flipped)

		assert.False(t, Verify(body, tampered, secret))
	})

	t.Run("rejects wrong secret", func(t *testing.T) {
		body := []byte(`{"type":"message.new"}`)
		sig := Sign(body, "right-secret")

		assert.False(t, Verify(body, sig, "wrong-secret"))
	})

	t.Run("rejects empty signature", func(t *testing.T) {
		assert.False(t, Verify([]byte(`{}`), "", "secret"))
	})

	t.Run("rejects uppercase rendering of a valid signature", func(t *testing.T) {
		// The wire format is lowercase hex; comparison is exact
		body := []byte(`{"type":"message.new"}`)
		secret := "stream-api-secret"
		sig := Sign(body, secret)
		require.NotEqual(t, sig, strings.ToUpper(sig))

		assert.False(t, Verify(body, strings.ToUpper(sig), secret))
	})

	t.Run("empty body signs and verifies", func(t *testing.T) {
		sig := Sign(nil, "secret")
		assert.True(t, Verify(nil, sig, "secret"))
	})
}

/* The comparison primitive is crypto/subtle.ConstantTimeCompare, so
 * verification time does not depend on where the first mismatching byte
 * occurs. This is asserted structurally rather than statistically: Verify
 * must not short-circuit via ==, bytes.Equal or strings.Compare.
 */
func TestVerify_ConstantTimeProperty(t *testing.T) {
	body := []byte(`{"type":"message.new"}`)
	secret := "stream-api-secret"
	valid := Sign(body, secret)

	// A signature differing in the first byte and one differing in the last
	// byte must both be rejected through the same code path
	firstOff := "f" + valid[1:]
	if valid[0] == 'f' {
		firstOff = "0" + valid[1:]
	}
	lastOff := valid[:len(valid)-1] + "f"
	if valid[len(valid)-1] == 'f' {
		lastOff = valid[:len(valid)-1] + "0"
	}

	assert.False(t, Verify(body, firstOff, secret))
	assert.False(t, Verify(body, lastOff, secret))
	assert.True(t, Verify(body, valid, secret))
}
