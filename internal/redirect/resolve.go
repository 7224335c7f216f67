package redirect

import (
	"errors"
	"net"
	"net/url"
	"regexp"
	"strings"

	ferrors "git.home.luguber.info/inful/redirectgen/internal/foundation/errors"
)

// Branch identifies the resolution rule applied to a target.
type Branch string

const (
	BranchPassThrough Branch = "pass_through"
	BranchDevelopment Branch = "development"
	BranchProduction  Branch = "production"
)

var (
	// absoluteURLPattern matches targets that are kept verbatim.
	absoluteURLPattern = regexp.MustCompile(`^https?://[a-zA-Z0-9:._-]+/`)
	// originPattern matches a leading scheme://authority or //authority.
	originPattern = regexp.MustCompile(`^(?:[a-zA-Z][a-zA-Z0-9+.-]*:)?//([^/?#]*)`)

	errEmptyTarget = errors.New("empty target")
)

// ErrMalformedTarget marks targets that could not be parsed as a URI. It is a
// warning: resolution still produces a development-origin URL.
var ErrMalformedTarget = ferrors.RedirectError("redirect target is not a valid URI").Warning().Build()

// Resolution is the outcome of resolving a single target.
type Resolution struct {
	Target string
	Branch Branch
	// Malformed is set when the target failed URI parsing and was resolved
	// from whatever structure could be recovered.
	Malformed error
}

// Resolve computes the final redirect target for to.
func (b *Builder) Resolve(site Site, to string) (Resolution, error) {
	if site == nil {
		return Resolution{}, ErrMissingCollaborator.WithContext("to", to)
	}

	if absoluteURLPattern.MatchString(to) {
		return Resolution{Target: to, Branch: BranchPassThrough}, nil
	}

	host, malformed := targetHost(to)
	if malformed != nil && b.onMalformed != nil {
		b.onMalformed(to, malformed)
	}

	if host == "" || !strings.EqualFold(host, b.cfg.ProductionHost) {
		return Resolution{
			Target:    b.developmentURL(to),
			Branch:    BranchDevelopment,
			Malformed: malformed,
		}, nil
	}

	return Resolution{
		Target:    site.Absolutize(to),
		Branch:    BranchProduction,
		Malformed: malformed,
	}, nil
}

// targetHost extracts the host name of to. When to is not a valid URI the
// host is recovered from a leading authority, if any, and a MalformedTarget
// error is returned alongside it.
func targetHost(to string) (string, error) {
	if strings.TrimSpace(to) == "" {
		return "", ferrors.WrapError(errEmptyTarget, ferrors.CategoryRedirect, ErrMalformedTarget.Message()).
			Warning().
			WithContext("target", to).
			Build()
	}

	u, err := url.Parse(to)
	if err == nil {
		return u.Hostname(), nil
	}

	var host string
	if m := originPattern.FindStringSubmatch(to); m != nil {
		host = authorityHost(m[1])
	}
	return host, ferrors.WrapError(err, ferrors.CategoryRedirect, ErrMalformedTarget.Message()).
		Warning().
		WithContext("target", to).
		Build()
}

// authorityHost strips userinfo and port from a raw authority.
func authorityHost(authority string) string {
	if i := strings.LastIndex(authority, "@"); i >= 0 {
		authority = authority[i+1:]
	}
	if h, _, err := net.SplitHostPort(authority); err == nil {
		return strings.Trim(h, "[]")
	}
	return strings.Trim(authority, "[]")
}

// developmentURL re-roots to at the development origin. Any leading
// scheme://authority is always removed, even when the authority itself is
// malformed, so a non-production host never survives the rewrite.
func (b *Builder) developmentURL(to string) string {
	rest := to
	if loc := originPattern.FindStringIndex(to); loc != nil {
		rest = to[loc[1]:]
	}
	return b.cfg.DevelopmentOrigin + NormalizePath(rest)
}
