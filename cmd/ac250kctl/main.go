// Command ac250kctl controls an AC250Kxxx bench power supply on a shared
// serial bus: set the output voltage, switch the output, or query the device.
//
// Usage:
//
//	ac250kctl [--port /dev/ttyS0] [--address 10] --voltage 100 --on
//	ac250kctl --status
//	ac250kctl --info
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/mkoutny/go-ac250k/device"
	"github.com/mkoutny/go-ac250k/serialport"
)

func main() {
	opts, err := parseArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "ac250kctl: %v\n", err)
		os.Exit(2)
	}

	if !opts.hasAction() {
		fmt.Fprintln(os.Stderr, "ac250kctl: nothing to do (try --status, --info, --voltage, --on or --off)")
		os.Exit(2)
	}

	level := zerolog.InfoLevel
	if opts.Verbose {
		level = zerolog.DebugLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()

	port, err := serialport.Open(opts.Port, serialport.DefaultReadTimeout)
	if err != nil {
		log.Error().Err(err).Str("port", opts.Port).Msg("open serial port")
		os.Exit(1)
	}

	sess, err := device.New(port, opts.Address, device.WithLogger(busLogger{log: log}))
	if err != nil {
		port.Close()
		log.Error().Err(err).Int("address", opts.Address).Msg("create session")
		os.Exit(1)
	}

	runErr := run(context.Background(), sess, opts)
	closeErr := sess.Close()

	if runErr != nil {
		log.Error().Err(runErr).Msg("command failed")
		os.Exit(1)
	}
	if closeErr != nil {
		log.Error().Err(closeErr).Msg("close serial port")
		os.Exit(1)
	}
}

// run executes the requested operations. --status and --info are
// read-only and exclusive of the set operations; otherwise the voltage is
// applied before the output switch, so a supply never powers on at a stale
// setting.
func run(ctx context.Context, sess *device.Session, opts *options) error {
	switch {
	case opts.Status:
		on, err := sess.OutputEnabled(ctx)
		if err != nil {
			return fmt.Errorf("read output state: %w", err)
		}
		volts, err := sess.Voltage(ctx)
		if err != nil {
			return fmt.Errorf("read voltage: %w", err)
		}

		state := "off"
		if on {
			state = "on"
		}
		fmt.Printf("output:  %s\nvoltage: %d V\n", state, volts)
		return nil

	case opts.Info:
		id, err := sess.Identification(ctx)
		if err != nil {
			return fmt.Errorf("read identification: %w", err)
		}
		fmt.Println(id)
		return nil
	}

	if opts.SetVoltage {
		if err := sess.SetVoltage(ctx, opts.Voltage); err != nil {
			return fmt.Errorf("set voltage: %w", err)
		}
	}

	if opts.On {
		if err := sess.SetOutputEnabled(ctx, true); err != nil {
			return fmt.Errorf("enable output: %w", err)
		}
	}
	if opts.Off {
		if err := sess.SetOutputEnabled(ctx, false); err != nil {
			return fmt.Errorf("disable output: %w", err)
		}
	}

	return nil
}
