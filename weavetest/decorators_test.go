package weavetest

import (
	"testing"

	"github.com/iov-one/paysplit/errors"
)

func TestDecorator(t *testing.T) {
	cases := map[string]struct {
		CheckErr       error
		DeliverErr     error
		WantHandlerRun int
	}{
		"pass through": {
			WantHandlerRun: 2,
		},
		"check fails": {
			CheckErr:       errors.ErrUnauthorized,
			WantHandlerRun: 1,
		},
		"both fail": {
			CheckErr:   errors.ErrUnauthorized,
			DeliverErr: errors.ErrInsufficientAmount,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			d := Decorator{CheckErr: tc.CheckErr, DeliverErr: tc.DeliverErr}
			var h Handler

			if _, err := d.Check(nil, nil, nil, &h); err != tc.CheckErr {
				t.Fatalf("want %v check error, got %v", tc.CheckErr, err)
			}
			if _, err := d.Deliver(nil, nil, nil, &h); err != tc.DeliverErr {
				t.Fatalf("want %v deliver error, got %v", tc.DeliverErr, err)
			}

			// The decorator counts failed calls too.
			assertCounts(t, &d, 1, 1)
			if got := h.CallCount(); got != tc.WantHandlerRun {
				t.Fatalf("want the handler called %d times, got %d", tc.WantHandlerRun, got)
			}
		})
	}
}
