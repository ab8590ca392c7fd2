package model

import (
	"errors"
	"fmt"
	"testing"
)

func TestFetchError_Blocked(t *testing.T) {
	tests := []struct {
		status int
		want   bool
	}{
		{403, true},
		{429, true},
		{999, true},
		{404, false},
		{500, false},
		{0, false},
	}
	for _, tc := range tests {
		t.Run(fmt.Sprint(tc.status), func(t *testing.T) {
			e := &FetchError{URL: "https://example.com", StatusCode: tc.status}
			if got := e.Blocked(); got != tc.want {
				t.Errorf("Blocked() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestFetchError_Unwrap(t *testing.T) {
	cause := errors.New("timeout")
	err := fmt.Errorf("search: %w", &FetchError{URL: "https://example.com", Err: cause})

	var fe *FetchError
	if !errors.As(err, &fe) {
		t.Fatal("errors.As failed to find FetchError")
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is failed to find the cause")
	}
}

func TestSource_Known(t *testing.T) {
	for _, s := range Sources {
		if !s.Known() {
			t.Errorf("%q should be known", s)
		}
	}
	if Source("Monster").Known() {
		t.Error("Monster should not be known")
	}
}
