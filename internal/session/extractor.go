package session

import (
	"errors"
	"fmt"
	"regexp"
)

// DefaultTokenPattern matches the token assignment the canvas page inlines.
const DefaultTokenPattern = `const csrfToken = "([^"]*)";`

var errNoMatch = errors.New("pattern did not match")

// TokenExtractor pulls a CSRF token out of an auth probe response body.
type TokenExtractor interface {
	Extract(body []byte) (string, error)
}

// RegexExtractor returns the first capture group of the first match.
type RegexExtractor struct {
	re *regexp.Regexp
}

var _ TokenExtractor = (*RegexExtractor)(nil)

func NewRegexExtractor(pattern string) (*RegexExtractor, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to compile token pattern: %w", err)
	}
	if re.NumSubexp() < 1 {
		return nil, fmt.Errorf("token pattern %q has no capture group", pattern)
	}
	return &RegexExtractor{re: re}, nil
}

func DefaultExtractor() *RegexExtractor {
	return &RegexExtractor{re: regexp.MustCompile(DefaultTokenPattern)}
}

func (r *RegexExtractor) Extract(body []byte) (string, error) {
	match := r.re.FindSubmatch(body)
	if match == nil {
		return "", fmt.Errorf("%w: %s", errNoMatch, r.re.String())
	}
	return string(match[1]), nil
}

// ExtractorFunc adapts a plain function to TokenExtractor.
type ExtractorFunc func(body []byte) (string, error)

func (f ExtractorFunc) Extract(body []byte) (string, error) {
	return f(body)
}
