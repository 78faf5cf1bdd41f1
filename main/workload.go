package main

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/rawbytedev/repeated"
	"github.com/rawbytedev/repeated/pkg/message"
)

// Stats counts the outcomes of one harness run.
type Stats struct {
	Hits        atomic.Int64
	Misses      atomic.Int64
	Sets        atomic.Int64
	Bounds      atomic.Int64
	Conversions atomic.Int64
	Failures    atomic.Int64
}

func (s *Stats) MarshalZerologObject(e *zerolog.Event) {
	e.Int64("hits", s.Hits.Load()).
		Int64("misses", s.Misses.Load()).
		Int64("sets", s.Sets.Load()).
		Int64("bounds", s.Bounds.Load()).
		Int64("conversions", s.Conversions.Load()).
		Int64("failures", s.Failures.Load())
}

// run fills every field, then per field performs one exclusive write pass
// followed by a concurrent read pass. Indices deliberately run one past the
// end so the bounds path is exercised too.
func run(cfg Config, log zerolog.Logger) (*Stats, error) {
	msg, err := message.New(cfg.Schema, message.Options{Logger: &log})
	if err != nil {
		return nil, err
	}
	stats := &Stats{}
	for _, fd := range msg.Fields() {
		flog := log.With().Str("field", fd.Name).Stringer("kind", fd.Kind).Logger()
		if err := exerciseField(cfg, msg, fd, stats); err != nil {
			return nil, fmt.Errorf("field %s: %w", fd.Name, err)
		}
		flog.Debug().Object("stats", stats).Msg("field done")
	}
	return stats, nil
}

func exerciseField(cfg Config, msg *message.Message, fd message.FieldDesc, stats *Stats) error {
	switch fd.Kind {
	case repeated.KindBool:
		return exercise[bool](cfg, msg, fd.Number, stats)
	case repeated.KindInt32:
		return exercise[int32](cfg, msg, fd.Number, stats)
	case repeated.KindUint32:
		return exercise[uint32](cfg, msg, fd.Number, stats)
	case repeated.KindInt64:
		return exercise[int64](cfg, msg, fd.Number, stats)
	case repeated.KindUint64:
		return exercise[uint64](cfg, msg, fd.Number, stats)
	case repeated.KindFloat32:
		return exercise[float32](cfg, msg, fd.Number, stats)
	case repeated.KindFloat64:
		return exercise[float64](cfg, msg, fd.Number, stats)
	default:
		return fmt.Errorf("unsupported kind %s", fd.Kind)
	}
}

func exercise[T repeated.Scalar](cfg Config, msg *message.Message, num int32, stats *Stats) error {
	if err := message.Append(msg, num, make([]T, cfg.Length)...); err != nil {
		return err
	}
	raw, err := msg.Raw(num)
	if err != nil {
		return err
	}
	c, err := repeated.Wrap[T](raw)
	if err != nil {
		return err
	}
	span := cfg.Length + 1

	e, err := msg.Exclusive(num)
	if err != nil {
		return err
	}
	m, err := c.Mut(e)
	if err != nil {
		e.Release()
		return err
	}
	for i := 0; i < cfg.Iterations; i++ {
		// Every 7th value is too large for 32-bit kinds.
		v := repeated.Int(i)
		if i%7 == 0 {
			v = 1 << 40
		}
		if err := record(stats, m.SetValue(i%span, v)); err != nil {
			e.Release()
			return err
		}
	}
	e.Release()

	var wg sync.WaitGroup
	errs := make([]error, cfg.Readers)
	for r := 0; r < cfg.Readers; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s, err := msg.Shared(num)
			if err != nil {
				errs[r] = err
				return
			}
			defer s.Release()
			v, err := c.View(s)
			if err != nil {
				errs[r] = err
				return
			}
			for i := 0; i < cfg.Iterations; i++ {
				if _, ok := v.Get((i + r) % span); ok {
					stats.Hits.Add(1)
				} else {
					stats.Misses.Add(1)
				}
			}
		}()
	}
	wg.Wait()
	return errors.Join(errs...)
}

// record counts the outcome of one write. Bounds and conversion failures are
// expected; anything else is counted and returned.
func record(stats *Stats, err error) error {
	switch {
	case err == nil:
		stats.Sets.Add(1)
	case errors.Is(err, repeated.ErrOutOfBounds):
		stats.Bounds.Add(1)
	case errors.Is(err, repeated.ErrConversion):
		stats.Conversions.Add(1)
	default:
		stats.Failures.Add(1)
		return err
	}
	return nil
}
