package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/vk/samerge/internal/app"
)

// ExitError reports a bad invocation. main exits with Code after printing
// Message.
type ExitError struct {
	Code    int
	Message string
}

func (e *ExitError) Error() string {
	return e.Message
}

const usageText = `usage: samerge [flags] FRAGMENT...
       samerge -job FILE [flags] [FRAGMENT...]

Merges system ability fragments into one startup profile per host process.
A FRAGMENT is an .xml file or a directory searched for .xml files; inputs
are taken in argument order, directory contents in lexical order.

flags:
`

// Parse turns samerge's arguments into an app.Config. The bool is true when
// usage or help was printed and the caller should stop without error.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	fs := flag.NewFlagSet("samerge", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.Usage = func() {
		fmt.Fprint(output, usageText)
		fs.PrintDefaults()
	}

	outFlag := fs.String("output-dir", "", "Output directory for merged profiles and pass-through copies.")
	oFlag := fs.String("o", "", "Shorthand for -output-dir.")
	jobFlag := fs.String("job", "", "HCL job file supplying fragments, output_dir and target_cpu.")
	cpuFlag := fs.String("target-cpu", "", "Target CPU; 32-bit targets get bare libpaths prefixed with /system/lib (default "+app.DefaultTargetCPU+").")
	logFormatFlag := fs.String("log-format", "text", "Log format: text or json.")
	logLevelFlag := fs.String("log-level", "info", "Log level: debug, info, warn or error.")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	outDir := *outFlag
	if outDir == "" {
		outDir = *oFlag
	}

	if fs.NArg() == 0 && *jobFlag == "" {
		fs.Usage()
		return nil, true, nil
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "unknown -log-format "+*logFormatFlag+": want text or json"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, false, &ExitError{Code: 2, Message: "unknown -log-level "+*logLevelFlag+": want debug, info, warn or error"}
	}

	config, err := app.NewConfig(app.Config{
		Fragments: fs.Args(),
		JobPath:   *jobFlag,
		OutputDir: outDir,
		TargetCPU: *cpuFlag,
		LogFormat: logFormat,
		LogLevel:  logLevel,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("Arguments resolved.", "fragments", len(config.Fragments), "job", config.JobPath, "target_cpu", config.TargetCPU)
	return config, false, nil
}
