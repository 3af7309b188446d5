package testkit

import "testing"

func TestMustPanic(t *testing.T) {
	t.Parallel()

	MustPanic(t, func() {
		panic("resolve: nil candidate store")
	})
}

func TestMustNotPanic(t *testing.T) {
	t.Parallel()

	MustNotPanic(t, func() {
		// returns normally
	})
}

func TestMustContain(t *testing.T) {
	t.Parallel()

	msg := "link 41 already approved"
	MustContain(t, msg, "already approved")
}
