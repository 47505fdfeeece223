package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/AnatoleLucet/sigstream"
	"github.com/AnatoleLucet/sigstream/metrics"
	"github.com/AnatoleLucet/sigstream/timer"
)

func mapFilterCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "mapfilter",
		Short: "Map, filter and reduce the numbers 1 to count",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := &syncWriter{w: cmd.OutOrStdout()}
			return runMapFilter(a.cfg.Count, out, a.metrics)
		},
	}
}

func runMapFilter(count int, out *syncWriter, m *metrics.Collector) error {
	owner := sigstream.NewOwner()
	defer owner.Dispose()

	var s *sigstream.Signal[int]
	err := owner.Run(func() error {
		s = sigstream.New[int]()
		s.Subscribe(func(v int) { out.printf("got: %d", v) })

		times3 := s.Map(func(v int) int { return 3 * v })
		times3.Subscribe(func(v int) { out.printf("... x 3: %d", v) })

		evens := times3.Filter(isEven)
		evens.Subscribe(func(int) { out.printf("... is even!") })

		total := evens.Reduce(0, add)
		total.Subscribe(func(v int) { out.printf("... running total: %d", v) })

		metrics.Instrument(m, "input", s)
		metrics.Instrument(m, "total", total)
		return nil
	})
	if err != nil {
		return err
	}

	for i := 1; i <= count; i++ {
		s.Emit(i)
	}

	return nil
}

func conciselyCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "concisely",
		Short: "Chain map, filter and reduce without intermediates",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := &syncWriter{w: cmd.OutOrStdout()}
			return runConcisely(a.cfg.Count, out)
		},
	}
}

func runConcisely(count int, out *syncWriter) error {
	owner := sigstream.NewOwner()
	defer owner.Dispose()

	s := sigstream.New[int]()
	err := owner.Run(func() error {
		total := s.Map(func(v int) int { return 3 * v }).
			Filter(isEven).
			Reduce(0, add)
		total.Subscribe(func(v int) { out.printf("... running total: %d", v) })
		return nil
	})
	if err != nil {
		return err
	}

	for i := 1; i <= count; i++ {
		s.Emit(i)
	}

	return nil
}

func booleanCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "boolean",
		Short: "Print and/or/xor of a throttled and a plain random signal",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := &syncWriter{w: cmd.OutOrStdout()}

			return a.feedRandom(cmd.Context(), func(x, y *sigstream.Signal[bool]) {
				sigstream.And(x, y).Subscribe(func(v bool) { out.printf("a and b: %t", v) })
				sigstream.Or(x, y).Subscribe(func(v bool) { out.printf("a or b: %t", v) })
				sigstream.Xor(x, y).Subscribe(func(v bool) { out.printf("a xor b: %t", v) })
			})
		},
	}
}

func cartesianCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "cartesian",
		Short: "Print product and sum of a throttled and a plain random signal",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := &syncWriter{w: cmd.OutOrStdout()}

			return a.feedRandom(cmd.Context(), func(x, y *sigstream.Signal[bool]) {
				sigstream.Product(x, y).Subscribe(func(v sigstream.Pair[bool, bool]) { out.printf("product: %v", v) })
				sigstream.Sum(x, y).Subscribe(func(v sigstream.Either[bool, bool]) { out.printf("sum: %v", v) })
			})
		},
	}
}

// feedRandom builds a throttled signal a and a plain signal b, wires them with
// build, then emits random booleans into both every period until the duration
// elapses or ctx is done.
func (a *app) feedRandom(ctx context.Context, build func(x, y *sigstream.Signal[bool])) error {
	owner := sigstream.NewOwner()
	defer owner.Dispose()

	owner.OnError(func(err any) {
		a.logger.Error("propagation failed", "error", err)
	})

	var x, y *sigstream.Signal[bool]
	err := owner.Run(func() error {
		x = sigstream.NewThrottled[bool](a.cfg.Throttle,
			sigstream.WithLogger(a.logger.With("signal", "a")),
			a.metrics.ThrottleOption("a"),
		)
		y = sigstream.New[bool]()

		metrics.Instrument(a.metrics, "a", x)
		metrics.Instrument(a.metrics, "b", y)

		build(x, y)
		return nil
	})
	if err != nil {
		return err
	}

	rnd := a.rand()
	ticker := timer.NewTicker(a.cfg.Period, func() {
		x.Emit(rnd.IntN(2) == 0)
		y.Emit(rnd.IntN(2) == 0)
	})
	ticker.Start()
	defer ticker.Stop()

	a.logger.Debug("feeding random values", "period", a.cfg.Period, "duration", a.cfg.Duration, "seed", a.cfg.Seed)

	select {
	case <-time.After(a.cfg.Duration):
	case <-ctx.Done():
	}

	return nil
}

func isEven(v int) bool { return v%2 == 0 }

func add(acc, v int) int { return acc + v }
