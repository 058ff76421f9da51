package scan

import (
	"context"
	"log/slog"
)

// Result is one emission from the decoding capability: a decoded text
// value or a terminal error (camera denied, device lost).
type Result struct {
	Text string
	Err  error
}

// Source abstracts the camera/decoder capability: Open acquires the device
// and starts emitting, Close releases it. Implementations close the
// channel when the feed ends.
type Source interface {
	Open(ctx context.Context) (<-chan Result, error)
	Close() error
}

// Pump consumes a Source through a Debouncer and hands accepted codes to a
// callback. It owns the source lifecycle: the source is closed on every
// exit path, so the camera is always released.
type Pump struct {
	logger   *slog.Logger
	source   Source
	debounce *Debouncer
}

// NewPump constructs a Pump.
func NewPump(logger *slog.Logger, source Source, debounce *Debouncer) *Pump {
	if logger == nil {
		logger = slog.Default()
	}
	if debounce == nil {
		debounce = NewDebouncer(0)
	}
	return &Pump{logger: logger, source: source, debounce: debounce}
}

// Run opens the source and forwards accepted codes to handle until the
// context is cancelled, the feed ends, or the source reports an error. A
// source error is reported once and the pump stops; there is no automatic
// retry.
func (p *Pump) Run(ctx context.Context, handle func(code string)) error {
	results, err := p.source.Open(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := p.source.Close(); cerr != nil {
			p.logger.Warn("close scan source", "error", cerr)
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case res, ok := <-results:
			if !ok {
				return nil
			}
			if res.Err != nil {
				p.logger.Warn("scan source failed", "error", res.Err)
				return res.Err
			}
			if p.debounce.Accept(res.Text) {
				handle(res.Text)
			}
		}
	}
}
