package router

import (
	"fmt"
	"net/url"
	"path"
	"regexp"
	"strings"
)

var dynamicSegmentNamePattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_]*$`)
var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:[-_][a-z0-9]+)*$`)

// MatchPathPattern matches requestPath against a pattern such as
// "/posts/[slug]" and returns the captured parameters.
func MatchPathPattern(pattern string, requestPath string) (map[string]string, bool) {
	patternSegments := splitPathSegments(pattern)
	requestSegments := splitPathSegments(requestPath)
	if len(patternSegments) != len(requestSegments) {
		return nil, false
	}

	params := make(map[string]string, 2)
	for idx, patternSegment := range patternSegments {
		name, isParam, err := parseWildcardSegment(patternSegment)
		if err != nil {
			return nil, false
		}

		requestSegment := requestSegments[idx]
		if !isParam {
			if patternSegment != requestSegment {
				return nil, false
			}
			continue
		}

		value, err := url.PathUnescape(requestSegment)
		if err != nil {
			return nil, false
		}
		params[name] = value
	}

	return params, true
}

// BuildPath fills the wildcard segments of pattern from params.
func BuildPath(pattern string, params map[string]string) (string, error) {
	segments := splitPathSegments(pattern)
	if len(segments) == 0 {
		return "/", nil
	}

	out := make([]string, 0, len(segments))
	for _, segment := range segments {
		name, isParam, err := parseWildcardSegment(segment)
		if err != nil {
			return "", err
		}
		if !isParam {
			out = append(out, segment)
			continue
		}

		value := strings.TrimSpace(params[name])
		if value == "" {
			return "", fmt.Errorf("missing value for %q in pattern %q", name, pattern)
		}
		out = append(out, url.PathEscape(value))
	}

	return "/" + strings.Join(out, "/"), nil
}

func IsValidSlug(slug string) bool {
	return slugPattern.MatchString(slug)
}

func parseWildcardSegment(segment string) (string, bool, error) {
	if strings.HasPrefix(segment, "[") || strings.HasSuffix(segment, "]") {
		if !strings.HasPrefix(segment, "[") || !strings.HasSuffix(segment, "]") {
			return "", false, fmt.Errorf("invalid wildcard segment %q", segment)
		}

		name := strings.TrimSpace(segment[1 : len(segment)-1])
		if !dynamicSegmentNamePattern.MatchString(name) {
			return "", false, fmt.Errorf("invalid wildcard name %q", name)
		}

		return name, true, nil
	}

	if strings.ContainsAny(segment, "[]") {
		return "", false, fmt.Errorf("invalid static segment %q", segment)
	}

	return "", false, nil
}

func splitPathSegments(raw string) []string {
	cleaned := path.Clean("/" + strings.TrimSpace(raw))
	if cleaned == "/" {
		return []string{}
	}

	trimmed := strings.Trim(cleaned, "/")
	if trimmed == "" {
		return []string{}
	}

	return strings.Split(trimmed, "/")
}
