package nav

import (
	"git.home.luguber.info/inful/booknav/internal/foundation/normalization"
)

// DefaultMaxDepth is the number of group levels the page renderer supports:
// top-level groups plus one level of nested groups.
const DefaultMaxDepth = 2

// DepthPolicy selects what Build does with groups nested beyond MaxDepth.
type DepthPolicy string

const (
	DepthReject  DepthPolicy = "reject"
	DepthFlatten DepthPolicy = "flatten"
)

var depthPolicyNormalizer = normalization.NewNormalizer(map[string]DepthPolicy{
	"reject":  DepthReject,
	"flatten": DepthFlatten,
}, DepthReject)

// NormalizeDepthPolicy maps raw input to a policy, defaulting to DepthReject.
func NormalizeDepthPolicy(raw string) DepthPolicy {
	return depthPolicyNormalizer.Normalize(raw)
}

// ParseDepthPolicy is the strict variant used during config validation.
// An empty string selects the default.
func ParseDepthPolicy(raw string) (DepthPolicy, error) {
	if raw == "" {
		return DepthReject, nil
	}
	return depthPolicyNormalizer.NormalizeWithError(raw)
}

// DepthPolicyValues lists accepted policy names.
func DepthPolicyValues() []string {
	return depthPolicyNormalizer.ValidKeys()
}

// TitleLookup supplies page titles for links declared without a label.
type TitleLookup interface {
	Title(target string) (string, bool)
}

// Options tunes Build. The zero value selects the defaults.
type Options struct {
	MaxDepth    int
	DepthPolicy DepthPolicy
	Titles      TitleLookup
}

func (o Options) withDefaults() Options {
	if o.MaxDepth < 1 {
		o.MaxDepth = DefaultMaxDepth
	}
	if o.DepthPolicy == "" {
		o.DepthPolicy = DepthReject
	}
	return o
}

// Warning is a non-fatal build diagnostic.
type Warning struct {
	At      Location `json:"at"`
	Message string   `json:"message"`
}

func (w Warning) String() string {
	return w.At.String() + ": " + w.Message
}
