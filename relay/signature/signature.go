package signature

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

/* Stream-style webhook signatures: HMAC-SHA256 over the raw request body,
 * rendered as lowercase hex in the X-Signature header
 * Verification must run over the exact bytes received; re-serializing the
 * body can change byte-for-byte content and break the signature
 */

// Sign computes the hex HMAC-SHA256 signature of rawBody under secret
func Sign(rawBody []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(rawBody)
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify reports whether presented is a valid signature for rawBody under
// secret. The comparison is constant-time to prevent timing attacks; a naive
// equality check here would be a vulnerability, not just a style issue.
func Verify(rawBody []byte, presented, secret string) bool {
	calculated := Sign(rawBody, secret)
	return subtle.ConstantTimeCompare([]byte(calculated), []byte(presented)) == 1
}
