// Command romspline builds, verifies and evaluates reduced-order splines.
//
// Usage:
//
//	romspline reduce [-config file.yaml] [-in data.txt | -func sin -n 1000 -a 0 -b 6.28] [-deg 5] [-tol 1e-6] [-rel] [-seeds 0,10,20] [-v] [-out model.rom] [-slim] [-group name]
//	romspline verify -model model.rom [-in data.txt | -func sin -n 1000 -a 0 -b 6.28]
//	romspline eval -model model.rom -x 0.5,1.0 [-dx 1]
//	romspline info -model model.rom
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sgostarter/i/l"
)

var errUsage = errors.New("usage: romspline <reduce|verify|eval|info> [flags]")

// errNotWithin is returned by verify when the model does not meet its tolerance.
var errNotWithin = errors.New("model is not within tolerance")

func main() {

	logger := l.NewConsoleLoggerWrapper()

	if err := run(os.Args[1:], os.Stdout, logger); err != nil {
		if !errors.Is(err, errNotWithin) {
			logger.WithFields(l.ErrorField(err)).Error("romspline failed")
		}
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer, logger l.Wrapper) error {

	if len(args) == 0 {
		return errUsage
	}

	switch args[0] {
	case "reduce":
		return reduce(args[1:], stdout, logger)
	case "verify":
		return verify(args[1:], stdout)
	case "eval":
		return eval(args[1:], stdout)
	case "info":
		return info(args[1:], stdout)
	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, args[0])
	}
}
