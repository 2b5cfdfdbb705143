package main

import (
	"bytes"
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/theapemachine/qreg"
)

func run(args ...string) (string, error) {
	var out bytes.Buffer
	gateTokens = nil
	showAmplitudes = false

	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return out.String(), err
}

func TestRootCommand(t *testing.T) {
	Convey("Given the qreg command", t, func() {
		Convey("A Bell pair should print both marginals at one half", func() {
			out, err := run("-n", "2", "-g", "h:0", "-g", "cx:0,1", "-a")

			So(err, ShouldBeNil)
			So(out, ShouldContainSubstring, "P(q0=1) = 0.5000000000")
			So(out, ShouldContainSubstring, "P(q1=1) = 0.5000000000")
			So(out, ShouldContainSubstring, "|11⟩ +0.7071067812 +0.0000000000i")
			So(out, ShouldContainSubstring, "|01⟩ +0.0000000000 +0.0000000000i")
		})

		Convey("An out of range gate should fail", func() {
			_, err := run("-n", "1", "-g", "x:1")
			So(errors.Is(err, qreg.ErrQubitOutOfRange), ShouldBeTrue)
		})

		Convey("A malformed gate should fail", func() {
			_, err := run("-n", "1", "-g", "x")
			So(errors.Is(err, qreg.ErrMalformedGate), ShouldBeTrue)
		})
	})
}
