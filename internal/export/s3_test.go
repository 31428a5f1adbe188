package export

import (
	"testing"
	"time"
)

func TestKey(t *testing.T) {
	fixed := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	u := &Uploader{
		prefix: "flowmaps/",
		now:    func() time.Time { return fixed },
	}

	got := u.Key("flowmap.png")
	want := "flowmaps/2026-03-14T09-26-53_flowmap.png"
	if got != want {
		t.Errorf("Key = %q, want %q", got, want)
	}
}

func TestKeyStripsDirectories(t *testing.T) {
	fixed := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	u := &Uploader{
		prefix: "out",
		now:    func() time.Time { return fixed },
	}

	got := u.Key("/home/artist/renders/flowmap.png")
	want := "out/2026-03-14T09-26-53_flowmap.png"
	if got != want {
		t.Errorf("Key = %q, want %q", got, want)
	}
}

func TestKeyNoPrefix(t *testing.T) {
	fixed := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	u := &Uploader{now: func() time.Time { return fixed }}

	got := u.Key("flowmap.png")
	want := "2026-03-14T09-26-53_flowmap.png"
	if got != want {
		t.Errorf("Key = %q, want %q", got, want)
	}
}
