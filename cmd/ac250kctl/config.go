package main

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/mkoutny/go-ac250k/protocol"
)

// options is the parsed command line.
type options struct {
	Port    string
	Address int
	Voltage int
	On      bool
	Off     bool
	Info    bool
	Status  bool
	Verbose bool

	// SetVoltage records whether --voltage was given at all; 0 is a
	// legitimate value.
	SetVoltage bool
}

// hasAction reports whether the invocation asks for any bus operation.
func (o *options) hasAction() bool {
	return o.Status || o.Info || o.SetVoltage || o.On || o.Off
}

// parseArgs parses the flag surface into options. args excludes the program
// name.
func parseArgs(args []string) (*options, error) {
	opts := &options{}

	fs := pflag.NewFlagSet("ac250kctl", pflag.ContinueOnError)
	fs.StringVar(&opts.Port, "port", "/dev/ttyS0", "serial port the bus is attached to")
	fs.IntVar(&opts.Address, "address", 10, "bus address of the target device (0-31)")
	fs.IntVar(&opts.Voltage, "voltage", 0, "output voltage to set, in Volts")
	fs.BoolVar(&opts.On, "on", false, "enable the output")
	fs.BoolVar(&opts.Off, "off", false, "disable the output")
	fs.BoolVar(&opts.Info, "info", false, "print the device identification")
	fs.BoolVar(&opts.Status, "status", false, "print the output state and voltage")
	fs.BoolVar(&opts.Verbose, "verbose", false, "log bus traffic details")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	opts.SetVoltage = fs.Changed("voltage")

	if opts.On && opts.Off {
		return nil, fmt.Errorf("--on and --off are mutually exclusive")
	}

	if !protocol.ValidAddress(opts.Address) {
		return nil, &protocol.InvalidAddressError{Address: opts.Address}
	}

	if opts.SetVoltage && !protocol.ValidVoltage(opts.Voltage) {
		return nil, &protocol.InvalidVoltageError{Volts: opts.Voltage}
	}

	return opts, nil
}
