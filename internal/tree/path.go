package tree

import (
	"fmt"
	"strconv"
	"strings"
)

// Path is the route from the root to a node as a sequence of child indexes.
// The root itself has the empty path.
type Path []int

// String renders the path as slash-separated indexes, e.g. "0/1/0/4".
func (p Path) String() string {
	if len(p) == 0 {
		return ""
	}
	var sb strings.Builder
	for i, seg := range p {
		if i > 0 {
			sb.WriteByte('/')
		}
		sb.WriteString(strconv.Itoa(seg))
	}
	return sb.String()
}

// Child returns a new path extended by idx.
func (p Path) Child(idx int) Path {
	out := make(Path, len(p)+1)
	copy(out, p)
	out[len(p)] = idx
	return out
}

// ParsePath is the inverse of Path.String.
func ParsePath(s string) (Path, error) {
	if s == "" {
		return Path{}, nil
	}
	parts := strings.Split(s, "/")
	out := make(Path, 0, len(parts))
	for _, part := range parts {
		idx, err := parseSegment(part)
		if err != nil {
			return nil, fmt.Errorf("invalid path %q: %w", s, err)
		}
		out = append(out, idx)
	}
	return out, nil
}

func parseSegment(s string) (int, error) {
	if s == "" {
		return 0, fmt.Errorf("empty segment")
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, fmt.Errorf("segment %q is not a non-negative integer", s)
		}
	}
	return strconv.Atoi(s)
}
