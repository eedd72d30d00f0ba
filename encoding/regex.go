package encoding

import (
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/arloliu/docwire/errs"
)

// RegexFlags lists the accepted regular expression flags: the standard
// i, m, x and s plus the legacy l (locale) and u (unicode) extensions.
const RegexFlags = "ilmsux"

// NormalizeRegexOptions validates flags and returns them sorted and without
// repeats, which is the order the wire format requires.
func NormalizeRegexOptions(path, options string) (string, error) {
	if options == "" {
		return "", nil
	}

	flags := []byte(options)
	for i, c := range flags {
		if strings.IndexByte(RegexFlags, c) < 0 {
			return "", errs.NewEncodeError(errs.ErrUnsupportedRegexFlag, path,
				"flag %q at offset %d, want one of %q", rune(c), i, RegexFlags)
		}
	}

	slices.Sort(flags)

	return string(slices.Compact(flags)), nil
}

func checkRegexPattern(path, pattern string) error {
	if i := strings.IndexByte(pattern, 0); i >= 0 {
		return errs.NewEncodeError(errs.ErrInvalidRegex, path, "NUL byte in pattern at offset %d", i)
	}
	if !utf8.ValidString(pattern) {
		return errs.NewEncodeError(errs.ErrInvalidUTF8String, path, "regex pattern %q", pattern)
	}

	return nil
}
