package models

import (
	"fmt"
	"regexp"
	"strings"
)

// NamespaceSeparator separates segments of a PHP fully-qualified name
const NamespaceSeparator = `\`

var identifierPattern = regexp.MustCompile(`^[A-Za-z_\x80-\x{10FFFF}][A-Za-z0-9_\x80-\x{10FFFF}]*$`)

// QualifiedName is a requested type name split into nested segments and a base name
type QualifiedName struct {
	Segments []string // nested directories / namespace suffix
	Base     string   // the type's base name
}

// ParseName splits a raw name such as "Admin/Billing\Invoice" into its parts.
// Both '/' and '\' act as separators.
func ParseName(raw string) (QualifiedName, error) {
	normalized := strings.ReplaceAll(strings.TrimSpace(raw), NamespaceSeparator, "/")
	if normalized == "" {
		return QualifiedName{}, fmt.Errorf("name must not be empty")
	}

	parts := strings.Split(normalized, "/")
	for _, part := range parts {
		if !identifierPattern.MatchString(part) {
			return QualifiedName{}, fmt.Errorf("invalid name segment %q in %q", part, raw)
		}
	}

	return QualifiedName{
		Segments: parts[:len(parts)-1],
		Base:     parts[len(parts)-1],
	}, nil
}

// Dir returns the nested directory path using forward slashes
func (q QualifiedName) Dir() string {
	return strings.Join(q.Segments, "/")
}

// NamespaceSuffix returns the nested segments joined with the namespace separator
func (q QualifiedName) NamespaceSuffix() string {
	return strings.Join(q.Segments, NamespaceSeparator)
}

// String returns the name in slash form
func (q QualifiedName) String() string {
	if len(q.Segments) == 0 {
		return q.Base
	}
	return q.Dir() + "/" + q.Base
}

// JoinNamespace joins non-empty namespace parts
func JoinNamespace(parts ...string) string {
	var kept []string
	for _, part := range parts {
		part = strings.Trim(part, NamespaceSeparator)
		if part != "" {
			kept = append(kept, part)
		}
	}
	return strings.Join(kept, NamespaceSeparator)
}

// NormalizeFQN strips the leading separator from a fully-qualified name
func NormalizeFQN(fqn string) string {
	return strings.TrimPrefix(strings.TrimSpace(fqn), NamespaceSeparator)
}

// ShortName returns the last segment of a fully-qualified name
func ShortName(fqn string) string {
	fqn = NormalizeFQN(fqn)
	if i := strings.LastIndex(fqn, NamespaceSeparator); i >= 0 {
		return fqn[i+1:]
	}
	return fqn
}

// NamespaceOf returns everything before the last segment of a fully-qualified name
func NamespaceOf(fqn string) string {
	fqn = NormalizeFQN(fqn)
	if i := strings.LastIndex(fqn, NamespaceSeparator); i >= 0 {
		return fqn[:i]
	}
	return ""
}

// ValidateFQN checks every segment of a fully-qualified name is an identifier
func ValidateFQN(fqn string) error {
	fqn = NormalizeFQN(fqn)
	if fqn == "" {
		return fmt.Errorf("fully-qualified name must not be empty")
	}
	for _, part := range strings.Split(fqn, NamespaceSeparator) {
		if !identifierPattern.MatchString(part) {
			return fmt.Errorf("invalid segment %q in %q", part, fqn)
		}
	}
	return nil
}
