package orders

import (
	"errors"
	"testing"
)

func TestParseStatus(t *testing.T) {
	for _, want := range AllStatuses() {
		got, err := ParseStatus(string(want))
		if err != nil {
			t.Errorf("ParseStatus(%q): %v", want, err)
		}
		if got != want {
			t.Errorf("ParseStatus(%q) = %q", want, got)
		}
	}

	for _, bad := range []string{"", "Teleported", "pending", "OUT FOR DELIVERY", "Delivered "} {
		if _, err := ParseStatus(bad); !errors.Is(err, ErrInvalidStatus) {
			t.Errorf("ParseStatus(%q) err = %v, want ErrInvalidStatus", bad, err)
		}
	}
}
