// Package elemid converts between tree paths and the identifiers used for
// rendered option and option-group elements.
//
// An option for the node at path [0 1 0 4] is "t-0-1-0-4". Widgets may
// decorate the ids they report with the "ui-multiselect-" prefix; ToPath
// strips it. All children of one parent share the group id obtained by
// replacing the trailing segment with the sentinel "g".
package elemid

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"chainsel/internal/tree"
)

const (
	// Prefix marks every element id produced by this package.
	Prefix = "t-"
	// DecorationPrefix is prepended by selection widgets to the ids of the
	// inputs they render for options.
	DecorationPrefix = "ui-multiselect-"
	// Separator joins path segments.
	Separator = "-"
	// GroupSentinel replaces the trailing segment in group ids.
	GroupSentinel = "g"
)

// ErrMalformed is returned for ids that do not encode a node path.
var ErrMalformed = errors.New("elemid: malformed element id")

// FromPath encodes a node path as an option element id.
func FromPath(p tree.Path) string {
	var sb strings.Builder
	sb.WriteString(Prefix)
	for i, seg := range p {
		if i > 0 {
			sb.WriteString(Separator)
		}
		sb.WriteString(strconv.Itoa(seg))
	}
	return sb.String()
}

// ToPath decodes an option element id, with or without widget decoration.
func ToPath(elementID string) (tree.Path, error) {
	s := strings.TrimPrefix(elementID, DecorationPrefix)
	if !strings.HasPrefix(s, Prefix) {
		return nil, fmt.Errorf("%w: %q", ErrMalformed, elementID)
	}
	s = strings.TrimPrefix(s, Prefix)
	if s == "" {
		return nil, fmt.Errorf("%w: %q has no path", ErrMalformed, elementID)
	}
	parts := strings.Split(s, Separator)
	out := make(tree.Path, 0, len(parts))
	for _, part := range parts {
		idx, ok := parseIndex(part)
		if !ok {
			return nil, fmt.Errorf("%w: %q (segment %q)", ErrMalformed, elementID, part)
		}
		out = append(out, idx)
	}
	return out, nil
}

// GroupForChildren derives the shared group id from any child's element id.
func GroupForChildren(childElementID string) string {
	s := strings.TrimPrefix(childElementID, DecorationPrefix)
	if i := strings.LastIndex(s, Separator); i >= len(Prefix)-1 {
		return s[:i+1] + GroupSentinel
	}
	return s + GroupSentinel
}

// GroupFor returns the id of the group holding the children of parent.
func GroupFor(parent tree.Path) string {
	return GroupForChildren(FromPath(parent.Child(0)))
}

// Decorate adds the widget decoration prefix to an element id.
func Decorate(elementID string) string {
	return DecorationPrefix + elementID
}

// IsGroup reports whether id names an option group.
func IsGroup(id string) bool {
	id = strings.TrimPrefix(id, DecorationPrefix)
	return strings.HasPrefix(id, Prefix) && strings.HasSuffix(id, Separator+GroupSentinel)
}

func parseIndex(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	return n, err == nil
}
