// Package whisper encodes and decodes the capability token that lets an
// anonymous secret be revealed only by its addressed reader. The token rides
// inside an inline button's callback payload as
//
//	whisper_<targetHandle>_<base64(secret)>
//
// The base64 transport encoding is not cryptographic; it only keeps the
// secret out of casual sight.
package whisper

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

const prefix = "whisper_"

var ErrMalformed = errors.New("whisper: malformed token payload")

// Token is a decoded capability token.
type Token struct {
	Target string
	Secret string
}

// Recognized reports whether a callback payload carries a whisper token.
func Recognized(data string) bool {
	return strings.HasPrefix(data, prefix)
}

// Encode builds the transport payload for a secret addressed to target.
func Encode(target, secret string) string {
	encoded := base64.StdEncoding.EncodeToString([]byte(secret))
	return fmt.Sprintf("%s%s_%s", prefix, target, encoded)
}

// Decode parses a transport payload back into a token. The secret segment is
// taken after the last underscore: handles may contain underscores, the
// base64 alphabet never does.
func Decode(data string) (Token, error) {
	if !strings.HasPrefix(data, prefix) {
		return Token{}, ErrMalformed
	}
	rest := data[len(prefix):]
	cut := strings.LastIndex(rest, "_")
	if cut <= 0 {
		return Token{}, ErrMalformed
	}
	target := rest[:cut]
	raw, err := base64.StdEncoding.DecodeString(rest[cut+1:])
	if err != nil {
		return Token{}, fmt.Errorf("whisper: decode secret: %w", err)
	}
	return Token{Target: target, Secret: string(raw)}, nil
}

// Matches reports whether a handle is the token's addressed reader.
// Comparison is case-insensitive and ignores a leading @ on either side.
func (t Token) Matches(handle string) bool {
	if handle == "" {
		return false
	}
	return strings.EqualFold(normalize(t.Target), normalize(handle))
}

// Distinguisher returns a fresh random id so concurrently issued tokens stay
// distinct.
func Distinguisher() string {
	return uuid.NewString()
}

func normalize(handle string) string {
	return strings.TrimPrefix(strings.TrimSpace(handle), "@")
}
