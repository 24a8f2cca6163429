package order

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"kiosk/internal/pkg/errs"

	"github.com/google/uuid"
)

const tokenTimeLayout = "20060102150405"

var tokenPattern = regexp.MustCompile(`^ORD-[0-9]{14}-[0-9A-F]{4,8}$`)

// Token is the customer-facing order identifier printed on the ticket and encoded in
// the QR code, e.g. ORD-20250314093015-4F1A9C2E. It is unrelated to the internal key.
type Token struct {
	value string
}

// NewToken builds a token from the creation time and 32 random bits.
func NewToken(createdAt time.Time) Token {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return Token{value: fmt.Sprintf("ORD-%s-%s", createdAt.Format(tokenTimeLayout), suffix)}
}

// TokenFromString validates a stored or user supplied token.
func TokenFromString(s string) (Token, error) {
	if !tokenPattern.MatchString(s) {
		return Token{}, errs.NewValueIsInvalidErrorWithCause("token", fmt.Errorf("%q is not an order token", s))
	}
	return Token{value: s}, nil
}

func (t Token) String() string {
	return t.value
}

func (t Token) IsEqual(other Token) bool {
	return t.value == other.value
}

func (t Token) Validate() error {
	if t.value == "" {
		return errs.NewValueIsRequiredError("token")
	}
	return nil
}
