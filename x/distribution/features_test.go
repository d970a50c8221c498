package distribution

import (
	"testing"

	"github.com/iov-one/paysplit/errors"
)

func TestFeaturesValidate(t *testing.T) {
	cases := map[string]struct {
		Features Features
		WantErr  *errors.Error
	}{
		"default": {
			Features: DefaultFeatures(),
		},
		"tokens only": {
			Features: Features{Token: true, Tokens: true},
		},
		"native only": {
			Features: Features{Native: true},
		},
		"nothing enabled": {
			Features: Features{GuardZeroBalance: true},
			WantErr:  ErrConfiguration,
		},
		"auto split without native": {
			Features: Features{AutoSplit: true, Token: true},
			WantErr:  ErrConfiguration,
		},
		"distribute without native": {
			Features: Features{Distribute: true, Token: true},
			WantErr:  ErrConfiguration,
		},
		"retry without native": {
			Features: Features{DistributeWithRetry: true, Token: true},
			WantErr:  ErrConfiguration,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if err := tc.Features.Validate(); !tc.WantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
		})
	}
}
