package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"addrcard/internal/domain/entity"

	"github.com/pkg/errors"
)

// Supported subcommands:
// - show:    Print the stored address as the form loads it
// - set:     Edit fields of the stored address and save
// - delete:  Remove the stored address
// - payload: Print the classification of the stored record
// - qr:      Write the QR code of the stored record to a PNG file
// - form:    Print the localized form description

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := runSubcommand(ctx, os.Args[1], os.Args[2:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type setFlags struct {
	cmd    *flag.FlagSet
	lang   *string
	fields map[entity.FieldName]*string
}

func newSetFlags() *setFlags {
	cmd := flag.NewFlagSet("set", flag.ContinueOnError)
	flags := &setFlags{
		cmd:    cmd,
		lang:   cmd.String("lang", "", "Language of validation messages (en, de)"),
		fields: make(map[entity.FieldName]*string),
	}
	for _, field := range entity.AllFields() {
		flags.fields[field] = cmd.String(string(field), "", "New value of "+string(field))
	}

	return flags
}

// edits returns only the fields given on the command line, so an empty value
// can still clear a field
func (f *setFlags) edits() map[entity.FieldName]string {
	edits := make(map[entity.FieldName]string)
	f.cmd.Visit(func(fl *flag.Flag) {
		if value, ok := f.fields[entity.FieldName(fl.Name)]; ok {
			edits[entity.FieldName(fl.Name)] = *value
		}
	})

	return edits
}

func runSubcommand(ctx context.Context, name string, args []string) error {
	switch name {
	case "show":
		return withCLI(ctx, func(c *cli) error { return c.show(ctx) })
	case "set":
		flags := newSetFlags()
		if err := flags.cmd.Parse(args); err != nil {
			return errors.Wrap(err, "failed to parse set flags")
		}

		return withCLI(ctx, func(c *cli) error { return c.set(ctx, flags.edits(), *flags.lang) })
	case "delete":
		return withCLI(ctx, func(c *cli) error { return c.delete(ctx) })
	case "payload":
		return withCLI(ctx, func(c *cli) error { return c.payload(ctx) })
	case "qr":
		cmd := flag.NewFlagSet("qr", flag.ContinueOnError)
		output := cmd.String("o", "qrcode.png", "Output PNG file")
		size := cmd.Int("size", 0, "Image size in pixels (default from config)")
		lang := cmd.String("lang", "", "Language of messages (en, de)")
		if err := cmd.Parse(args); err != nil {
			return errors.Wrap(err, "failed to parse qr flags")
		}

		return withCLI(ctx, func(c *cli) error { return c.qr(ctx, *output, *size, *lang) })
	case "form":
		cmd := flag.NewFlagSet("form", flag.ContinueOnError)
		lang := cmd.String("lang", "", "Language of labels (en, de)")
		if err := cmd.Parse(args); err != nil {
			return errors.Wrap(err, "failed to parse form flags")
		}

		return withCLI(ctx, func(c *cli) error { return c.form(*lang) })
	default:
		printUsage()

		return errors.Errorf("unknown subcommand %q", name)
	}
}

func printUsage() {
	fmt.Println("Usage: addrctl <command> [options]")
	fmt.Println("")
	fmt.Println("Commands:")
	fmt.Println("  show       Print the stored address")
	fmt.Println("  set        Edit and save address fields, e.g. -firstName John")
	fmt.Println("  delete     Remove the stored address")
	fmt.Println("  payload    Print the stored record and its status")
	fmt.Println("  qr         Write the QR code to a PNG file")
	fmt.Println("  form       Print the localized address form")
	fmt.Println("")
	fmt.Println("The store is selected by the same config.yaml as the server.")
	fmt.Println("Use 'addrctl <command> -h' for more information about a command.")
}
