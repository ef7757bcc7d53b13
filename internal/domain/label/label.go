// Package label defines the token format printed on location labels and
// embedded in their QR codes. Rendering and scanning are external; the core
// owns the encoding so that decoding is unambiguous.
package label

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/warewise/slotkeeper/internal/domain/models"
)

const (
	locationPrefix = "LOC"
	floorPrefix    = "FLR"
	separator      = "-"
)

// ErrMalformedToken indicates a token that does not match either form.
var ErrMalformedToken = errors.New("malformed label token")

// Token is a decoded label. Exactly one of Coordinate/LotID is meaningful:
// location tokens carry a coordinate, floor tokens carry the lot id.
type Token struct {
	Floor      bool
	Coordinate models.Coordinate
	LotID      string
}

// Encode renders a rack coordinate as LOC-<rack>-<position>-<level>.
func Encode(c models.Coordinate) string {
	return strings.Join([]string{
		locationPrefix, c.Rack, strconv.Itoa(c.Position), strconv.Itoa(c.Level),
	}, separator)
}

// EncodeFloor renders a floor lot token as FLR-<lotID>.
func EncodeFloor(lotID string) string {
	return floorPrefix + separator + lotID
}

// Decode parses a scanned token back into its structured form.
func Decode(token string) (Token, error) {
	token = strings.TrimSpace(token)

	if rest, ok := strings.CutPrefix(token, floorPrefix+separator); ok {
		if rest == "" {
			return Token{}, fmt.Errorf("%w: empty floor lot id", ErrMalformedToken)
		}
		return Token{Floor: true, LotID: rest}, nil
	}

	rest, ok := strings.CutPrefix(token, locationPrefix+separator)
	if !ok {
		return Token{}, fmt.Errorf("%w: unknown prefix in %q", ErrMalformedToken, token)
	}

	parts := strings.Split(rest, separator)
	if len(parts) != 3 || parts[0] == "" {
		return Token{}, fmt.Errorf("%w: expected rack-position-level in %q", ErrMalformedToken, token)
	}

	position, err := strconv.Atoi(parts[1])
	if err != nil || position < 1 {
		return Token{}, fmt.Errorf("%w: bad position in %q", ErrMalformedToken, token)
	}

	level, err := strconv.Atoi(parts[2])
	if err != nil || level < 1 {
		return Token{}, fmt.Errorf("%w: bad level in %q", ErrMalformedToken, token)
	}

	return Token{
		Coordinate: models.Coordinate{Rack: parts[0], Level: level, Position: position},
	}, nil
}
