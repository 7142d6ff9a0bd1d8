package scoring

import (
	"fmt"
	"regexp"
	"strings"
)

const referenceSuffix = `"]`

var (
	referencePrefix  = regexp.MustCompile(`(?i)container\.attribute\["`)
	referenceGrammar = regexp.MustCompile(`(?is)^container\.attribute\["(.+)"\]$`)
)

// ExtractKey returns the attribute key named by a Container.Attribute["key"] reference.
// The first case-insensitive prefix and the first `"]` after it delimit the key.
func ExtractKey(ref string) (string, error) {
	loc := referencePrefix.FindStringIndex(ref)
	if loc == nil {
		return "", fmt.Errorf("%w: %q: missing Container.Attribute[\" prefix", ErrInvalidReference, ref)
	}
	rest := ref[loc[1]:]
	end := strings.Index(rest, referenceSuffix)
	if end < 0 {
		return "", fmt.Errorf("%w: %q: missing closing \"]", ErrInvalidReference, ref)
	}
	if end == 0 {
		return "", fmt.Errorf("%w: %q: empty key", ErrInvalidReference, ref)
	}
	return rest[:end], nil
}

// ValidReference reports whether ref is exactly Container.Attribute["key"] with a
// non-empty key that does not itself contain `"]`.
func ValidReference(ref string) bool {
	m := referenceGrammar.FindStringSubmatch(ref)
	if m == nil {
		return false
	}
	return !strings.Contains(m[1], referenceSuffix)
}

// ValidateReference returns the reasons ref is unusable, or nil when it is valid.
func ValidateReference(ref string) []string {
	return validateNumberedReference(ref, "")
}

func validateNumberedReference(ref, number string) []string {
	field := "target field"
	if number != "" {
		field += " " + number
	}
	if ref == "" {
		return []string{"no " + field + " specified"}
	}
	if !ValidReference(ref) {
		return []string{field + " not in expected format"}
	}
	return nil
}
