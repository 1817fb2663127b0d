package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/sparques/manchester"
	"github.com/sparques/manchester/config"
	"github.com/sparques/manchester/loopback"
	"github.com/sparques/manchester/rc5"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr}).Level(zerolog.InfoLevel)
	configFile := flag.String("config", "manchester.yaml", "YAML config file")

	flag.Parse()

	opts, err := config.Load(*configFile)
	if err != nil {
		log.Fatal().Err(err).Msg("error loading config")
	}
	level, err := zerolog.ParseLevel(opts.LogLevel)
	if err != nil {
		log.Fatal().Err(err).Str("log_level", opts.LogLevel).Msg("bad log level")
	}
	log.Logger = log.Logger.Level(level)

	decoderCfg, err := opts.Decoder.Manchester()
	if err != nil {
		log.Fatal().Err(err).Msg("bad decoder config")
	}

	for i, stream := range opts.Streams {
		decodeStream(i, stream, decoderCfg)
	}

	eg, ctx := errgroup.WithContext(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	eg.Go(func() error {
		select {
		case <-sigChan:
			cancel()
		case <-ctx.Done():
		}
		return nil
	})

	eg.Go(func() error {
		defer cancel()
		if err := sendDatagrams(ctx, opts); err != nil {
			return err
		}
		return sendRC5(ctx, opts)
	})

	if err := eg.Wait(); err != nil && err != context.Canceled {
		log.Fatal().Err(err).Msg("exited program")
	}
}

func decodeStream(i int, stream string, cfg manchester.Config) {
	logger := log.With().Int("stream", i).Logger()
	cfg.Discarded = func(partial manchester.Datagram) {
		logger.Warn().Str("bits", partial.String()).Msg("datagram discarded")
	}
	levels := loopback.ParseStream(stream)
	datagrams := loopback.Decode(cfg, levels)
	if len(datagrams) == 0 {
		logger.Info().Int("samples", len(levels)).Msg("no datagram")
	}
	for _, d := range datagrams {
		logger.Info().Str("bits", d.String()).Uint8("length", d.Len()).Msg("datagram")
	}
}

// sendDatagrams loops every datagram through a simulated link. The receiver
// idles high and sees the complement of what was sent, so the sync edge
// depends on the first bit and the result is flipped back.
func sendDatagrams(ctx context.Context, opts config.Config) error {
	cfg, err := opts.Decoder.Manchester()
	if err != nil {
		return err
	}
	cfg.Inactivity = manchester.InactiveHigh
	for i, repr := range opts.Datagrams {
		logger := log.With().Int("datagram", i).Logger()
		sent, err := manchester.Parse(repr, cfg.Order)
		if err != nil {
			logger.Error().Err(err).Msg("bad datagram")
			continue
		}
		if sent.IsEmpty() {
			logger.Warn().Msg("empty datagram, skipped")
			continue
		}
		cfg.Sync = manchester.SyncSecondEdge
		if sent.Bit(0) {
			cfg.Sync = manchester.SyncFirstEdge
		}
		var received []manchester.Datagram
		sm := manchester.NewStateMachine(cfg, func(d manchester.Datagram) {
			received = append(received, d.Invert())
		})
		link := loopback.NewLink(opts.Emitter.PauseTicks, sm, logger)
		if err := link.Transmit(ctx, opts.Emitter.Power, sent); err != nil {
			return err
		}
		for _, d := range received {
			logger.Info().Str("sent", sent.String()).Str("received", d.String()).Bool("match", d.Equal(sent)).Msg("loopback")
		}
		if len(received) == 0 {
			logger.Warn().Str("sent", sent.String()).Msg("nothing received")
		}
	}
	return nil
}

func sendRC5(ctx context.Context, opts config.Config) error {
	if len(opts.RC5) == 0 {
		return nil
	}
	frames := make([]manchester.DatagramMarshaller, 0, len(opts.RC5))
	for _, f := range opts.RC5 {
		frames = append(frames, f.Frame())
	}
	received := 0
	sm := rc5.NewStateMachine(func(f rc5.Frame) {
		received++
		log.Info().Uint8("address", f.Address).Uint8("command", f.Command).Bool("toggle", f.Toggle).Msg("rc5 frame")
	})
	link := loopback.NewLink(opts.Emitter.PauseTicks, sm, log.With().Str("protocol", "rc5").Logger())
	if err := link.Transmit(ctx, opts.Emitter.Power, frames...); err != nil {
		return err
	}
	log.Info().Int("sent", len(frames)).Int("received", received).Msg("rc5 loopback done")
	return nil
}
