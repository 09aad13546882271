package httpmw

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/Devansh2835/EventSpark/internal/config"
)

// OriginRule is one entry of the cross-origin allow list. Keeping literals
// and patterns as distinct types avoids the runtime-type confusion of a
// mixed string/regexp slice.
type OriginRule interface {
	Matches(origin string) bool
}

// Literal matches one exact origin.
type Literal string

func (l Literal) Matches(origin string) bool {
	return string(l) == origin
}

// Pattern matches origins against a compiled expression.
type Pattern struct {
	re *regexp.Regexp
}

func (p Pattern) Matches(origin string) bool {
	return p.re.MatchString(origin)
}

// NewPattern compiles a wildcard origin like "https://*.vercel.app".
// Only the single "*" subdomain wildcard is supported.
func NewPattern(wildcard string) (Pattern, error) {
	expr := "^" + strings.ReplaceAll(regexp.QuoteMeta(wildcard), `\*`, `[^.]+(\.[^.]+)*`) + "$"
	re, err := regexp.Compile(expr)
	if err != nil {
		return Pattern{}, err
	}
	return Pattern{re: re}, nil
}

func mustPattern(wildcard string) Pattern {
	p, err := NewPattern(wildcard)
	if err != nil {
		panic(err)
	}
	return p
}

// OriginPolicy decides, per request, whether an origin may make a
// credentialed cross-site request. It is a pure function of the request
// origin and startup configuration; header mechanics belong to the CORS
// middleware that consults it.
type OriginPolicy struct {
	permissive bool
	rules      []OriginRule
}

// defaultRules covers local development hosts and Vercel preview/production
// deployments of the frontend.
func defaultRules() []OriginRule {
	return []OriginRule{
		Literal("http://localhost:3000"),
		Literal("http://localhost:3001"),
		Literal("http://127.0.0.1:3000"),
		mustPattern("https://*.vercel.app"),
	}
}

// NewOriginPolicy builds the policy from deployment configuration.
// cfg.FrontendURL, when set, joins the allow list as a literal.
func NewOriginPolicy(cfg config.Config) *OriginPolicy {
	rules := defaultRules()
	if cfg.FrontendURL != "" {
		rules = append(rules, Literal(cfg.FrontendURL))
	}
	return &OriginPolicy{
		permissive: cfg.CORSMode == config.CORSModePermissive,
		rules:      rules,
	}
}

// Allow reports whether the origin may proceed. An absent origin is always
// allowed: non-browser clients send none, and the cookie policy is enforced
// by browsers, not by the absence of this header.
func (p *OriginPolicy) Allow(origin string) bool {
	if origin == "" {
		return true
	}

	for _, rule := range p.rules {
		if rule.Matches(origin) {
			return true
		}
	}

	if p.permissive {
		if isLoopbackOrigin(origin) {
			return true
		}
		// Intentionally wide open so local tooling on arbitrary ports
		// works. config.Load refuses this mode in production.
		return true
	}

	return false
}

func isLoopbackOrigin(origin string) bool {
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	host := u.Hostname()
	return host == "localhost" || host == "127.0.0.1" || host == "::1"
}
