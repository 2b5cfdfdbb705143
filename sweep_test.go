package qreg

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestInsertZero(t *testing.T) {
	Convey("Given representative indices", t, func() {
		Convey("insertZero should open a zero bit at the requested position", func() {
			So(insertZero(0, 0), ShouldEqual, 0)
			So(insertZero(1, 0), ShouldEqual, 2)
			So(insertZero(3, 0), ShouldEqual, 6)
			So(insertZero(3, 1), ShouldEqual, 5)
			So(insertZero(3, 2), ShouldEqual, 3)
			So(insertZero(0b101, 1), ShouldEqual, 0b1001)
		})

		Convey("The half space should map onto exactly the indices with the bit clear", func() {
			const qubits = 6
			for bit := 0; bit < qubits; bit++ {
				seen := make(map[int]bool)
				for k := 0; k < 1<<(qubits-1); k++ {
					i := insertZero(k, bit)
					So(i&(1<<bit), ShouldEqual, 0)
					So(i, ShouldBeLessThan, 1<<qubits)
					seen[i] = true
				}
				So(len(seen), ShouldEqual, 1<<(qubits-1))
			}
		})
	})
}

func TestSweeperPartition(t *testing.T) {
	Convey("Given a sweeper with four workers", t, func() {
		s := &sweeper{workers: 4, threshold: 10}

		Convey("Narrow registers should run as a single span", func() {
			So(s.partition(9, 1<<20), ShouldResemble, []span{{0, 1 << 20}})
		})

		Convey("Small ranges should run as a single span", func() {
			So(s.partition(12, minChunk), ShouldResemble, []span{{0, minChunk}})
		})

		Convey("Empty ranges should produce no spans", func() {
			So(s.partition(12, 0), ShouldBeEmpty)
		})

		Convey("Wide registers should split into contiguous, disjoint spans", func() {
			size := 1<<16 + 3
			spans := s.partition(17, size)

			So(len(spans), ShouldEqual, 4)
			So(spans[0].lo, ShouldEqual, 0)
			So(spans[len(spans)-1].hi, ShouldEqual, size)
			for i := 1; i < len(spans); i++ {
				So(spans[i].lo, ShouldEqual, spans[i-1].hi)
			}
		})

		Convey("Chunks should not shrink below minChunk", func() {
			spans := s.partition(20, 3*minChunk)
			So(len(spans), ShouldEqual, 3)
		})
	})
}

func TestSweeperRun(t *testing.T) {
	Convey("Given a parallel sweeper", t, func() {
		s := &sweeper{workers: 3, threshold: 0}
		size := 5*minChunk + 17

		Convey("run should visit every index exactly once", func() {
			visits := make([]int32, size)
			parallel := s.run(20, size, func(lo, hi int) {
				for i := lo; i < hi; i++ {
					visits[i]++
				}
			})

			So(parallel, ShouldBeTrue)
			for _, v := range visits {
				So(v, ShouldEqual, int32(1))
			}
		})

		Convey("reduce should sum every chunk", func() {
			total, parallel := s.reduce(20, size, func(lo, hi int) float64 {
				return float64(hi - lo)
			})

			So(parallel, ShouldBeTrue)
			So(total, ShouldEqual, float64(size))
		})
	})
}

func TestParallelMatchesInline(t *testing.T) {
	Convey("Given an inline and a parallel sixteen qubit register", t, func() {
		inlineConfig := NewConfig()
		inlineConfig.ParallelThreshold = 64

		parallelConfig := NewConfig()
		parallelConfig.ParallelThreshold = 0
		parallelConfig.Workers = 4

		inline, err := NewStateRegister(16, inlineConfig)
		So(err, ShouldBeNil)
		parallel, err := NewStateRegister(16, parallelConfig)
		So(err, ShouldBeNil)

		circuit := []Gate{
			H(0), H(15), CNOT(15, 3), X(7), H(7), CNOT(0, 14),
			H(9), CNOT(9, 2), X(15), H(3), CNOT(3, 15),
		}

		So(inline.Apply(circuit...), ShouldBeNil)
		So(parallel.Apply(circuit...), ShouldBeNil)

		Convey("Both should reach the same amplitudes", func() {
			So(parallel.Equal(inline), ShouldBeTrue)
			So(parallel.Metrics().ParallelSweeps(), ShouldBeGreaterThan, int64(0))
			So(inline.Metrics().ParallelSweeps(), ShouldEqual, int64(0))
		})

		Convey("Both should report the same marginals", func() {
			for q := 0; q < 16; q++ {
				a, err := inline.MeasurementProbability(q)
				So(err, ShouldBeNil)
				b, err := parallel.MeasurementProbability(q)
				So(err, ShouldBeNil)
				So(b, ShouldAlmostEqual, a, tolerance)
			}
			So(parallel.TotalProbability(), ShouldAlmostEqual, 1.0, tolerance)
		})
	})
}
