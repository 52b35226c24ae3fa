package parser

import (
	"strconv"
	"strings"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"
)

// ParseNumber parses value as an integer.
func ParseNumber(value string) (int64, error) {
	base, value := SplitNumber(value)
	return strconv.ParseInt(value, base, 64)
}

// ParseWide parses value as a non-negative integer of up to 256 bits.
// Only base 10 and base 16 are supported.
func ParseWide(value string) (*uint256.Int, error) {
	base, digits := SplitNumber(value)
	if strings.HasPrefix(digits, "-") {
		return nil, errors.Errorf("negative value %q", value)
	}

	switch base {
	case 10:
		return uint256.FromDecimal(digits)
	case 16:
		digits = strings.TrimLeft(digits, "0")
		if digits == "" {
			digits = "0"
		}
		return uint256.FromHex("0x" + digits)
	}

	return nil, errors.Errorf("unsupported base %d in %q", base, value)
}

// SplitNumber splits the given number into the base prefix and the
// actual numeric value. Defaults to base-10 if a base-prefix can not
// successfuly be determined. Either there is no prefix, or it is
// not a valid number.
func SplitNumber(v string) (int, string) {
	index := strings.Index(v, "#")
	if index == -1 {
		return 10, strings.ReplaceAll(v, "_", "")
	}

	base, err := strconv.ParseInt(v[:index], 10, 8)
	if err != nil {
		base = 10
	}

	return int(base), strings.ReplaceAll(v[index+1:], "_", "")
}
