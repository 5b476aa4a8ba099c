package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"github.com/aidanlsb/autokey/internal/catalog"
)

// policyValue is a pflag.Value for --on-error.
type policyValue struct {
	policy *catalog.Policy
}

var _ pflag.Value = (*policyValue)(nil)

func newPolicyValue(p *catalog.Policy, def catalog.Policy) *policyValue {
	*p = def
	return &policyValue{policy: p}
}

func (v *policyValue) String() string {
	if v.policy == nil {
		return catalog.Abort.String()
	}
	return v.policy.String()
}

func (v *policyValue) Set(s string) error {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "abort":
		*v.policy = catalog.Abort
	case "skip":
		*v.policy = catalog.Skip
	default:
		return fmt.Errorf("must be abort or skip, got %q", s)
	}
	return nil
}

func (v *policyValue) Type() string {
	return "policy"
}

// keywordName normalizes a keyword typed on the command line: "*part" and
// "part" both become "PART".
func keywordName(arg string) string {
	return strings.ToUpper(strings.TrimPrefix(strings.TrimSpace(arg), "*"))
}
