package errors

import (
	"reflect"
	"testing"
)

func TestFieldErrors(t *testing.T) {
	// Declare errors upfront so that DeepEqual can be used for comparison.
	var (
		unauthorizedNameErr = Field("name", ErrUnauthorized, "a")
		humanNameErr        = Field("name", ErrHuman, "b")
		emptyGenderErr      = Field("gender", ErrEmpty, "gender is required")
		userMultiErr        = Field("user", Append(
			humanNameErr,
			Append(emptyGenderErr, ErrState),
		), "user data invalid")
	)

	cases := map[string]struct {
		Err   error
		Field string
		Want  []error
	}{
		"a single error found by the name": {
			Err:   unauthorizedNameErr,
			Field: "name",
			Want:  []error{unauthorizedNameErr},
		},
		"two error found by the name": {
			Err: Append(
				unauthorizedNameErr,
				humanNameErr,
			),
			Field: "name",
			Want: []error{
				unauthorizedNameErr,
				humanNameErr,
			},
		},
		"field can contain a group of errors": {
			Err:   userMultiErr,
			Field: "user",
			Want:  []error{userMultiErr},
		},
		"field can inspect errors tree to find match": {
			Err:   userMultiErr,
			Field: "gender",
			Want:  []error{emptyGenderErr},
		},
		"nil error returns nothing": {
			Err:   nil,
			Field: "foo",
			Want:  nil,
		},
		"no match": {
			Err:   unauthorizedNameErr,
			Field: "age",
			Want:  nil,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got := FieldErrors(tc.Err, tc.Field)
			if !reflect.DeepEqual(tc.Want, got) {
				t.Fatalf("want %v, got %v", tc.Want, got)
			}
		})
	}
}

func TestFieldNilError(t *testing.T) {
	if err := Field("name", nil, "no error"); err != nil {
		t.Fatalf("want nil, got %v", err)
	}
}

func TestFieldPath(t *testing.T) {
	cases := map[string]struct {
		Elems []interface{}
		Want  string
	}{
		"single name":       {Elems: []interface{}{"Tickers"}, Want: "Tickers"},
		"list element":      {Elems: []interface{}{"Tickers", 3}, Want: "Tickers.3"},
		"element attribute": {Elems: []interface{}{"Destinations", 0, "Share"}, Want: "Destinations.0.Share"},
		"nothing":           {Want: ""},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if got := FieldPath(tc.Elems...); got != tc.Want {
				t.Fatalf("want %q, got %q", tc.Want, got)
			}
		})
	}
}

func TestFieldErrorsByIndex(t *testing.T) {
	second := Field(FieldPath("Destinations", 1, "Share"), ErrInput, "negative")
	err := Append(
		Field(FieldPath("Destinations", 0, "Address"), ErrEmpty, ""),
		second,
	)
	if got := FieldErrors(err, "Destinations.1.Share"); !reflect.DeepEqual([]error{second}, got) {
		t.Fatalf("unexpected errors: %v", got)
	}
	if got := FieldErrors(err, "Destinations.1.Address"); got != nil {
		t.Fatalf("want no errors, got %v", got)
	}
}
