package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/funvibe/jsbind/internal/config"
	"github.com/funvibe/jsbind/internal/diagnostics"
	"github.com/funvibe/jsbind/internal/pipeline"
	"github.com/funvibe/jsbind/pkg/bindgen"
)

// Exit statuses.
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

const usageText = `Usage: jsbind [flags] <signature.yaml>

Generates Go bindings for the JavaScript API described by the signature file.
Without -o the generated files are printed to stdout as a txtar archive.

Flags:
`

// Run executes the jsbind command with args (without the program name) and
// returns the process exit status.
func Run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("jsbind", flag.ContinueOnError)
	fs.SetOutput(stderr)
	outDir := fs.String("o", "", "write generated files under `dir`")
	importPath := fs.String("import-path", "", "Go import `path` of the generated root package")
	pkg := fs.String("package", "", "Go package `name` of the root module")
	verbose := fs.Bool("v", false, "log generator stages to stderr")
	fs.Usage = func() {
		fmt.Fprint(stderr, usageText)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitOK
		}
		return ExitUsage
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return ExitUsage
	}
	path := fs.Arg(0)
	if !isSignatureFile(path) {
		fmt.Fprintf(stderr, "warning: %s does not have a signature file extension (%s)\n",
			path, strings.Join(config.SignatureFileExtensions, ", "))
	}

	if *verbose {
		logger := newLogger(stderr)
		pipeline.SetLogger(logger)
		defer func() {
			_ = logger.Sync()
			pipeline.SetLogger(nil)
		}()
	}

	src, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(stderr, "Error reading file: %s\n", err)
		return ExitError
	}

	files, err := bindgen.Generate(path, src, bindgen.Options{
		Package:    *pkg,
		ImportPath: *importPath,
	})
	if err != nil {
		printError(stderr, err)
		return ExitError
	}

	if *outDir == "" {
		if _, err := stdout.Write(bindgen.Archive(files)); err != nil {
			fmt.Fprintf(stderr, "Error writing output: %s\n", err)
			return ExitError
		}
		return ExitOK
	}
	if err := bindgen.WriteDir(*outDir, files); err != nil {
		fmt.Fprintf(stderr, "Error: %s\n", err)
		return ExitError
	}
	for _, f := range files {
		pipeline.Logger().Info("wrote file", zap.String("dir", *outDir), zap.String("file", f.Name))
	}
	return ExitOK
}

func isSignatureFile(path string) bool {
	for _, ext := range config.SignatureFileExtensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

// newLogger returns a development console logger writing to w.
func newLogger(w io.Writer) *zap.Logger {
	encoder := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	core := zapcore.NewCore(encoder, zapcore.AddSync(w), zapcore.DebugLevel)
	return zap.New(core, zap.Development())
}

// printError writes err the way compilers do: position, code, message.
// The position and code are highlighted when w is a terminal.
func printError(w io.Writer, err error) {
	var de *diagnostics.DiagnosticError
	if !errors.As(err, &de) {
		fmt.Fprintf(w, "Error: %s\n", err)
		return
	}
	color := useColor(w)
	fmt.Fprintf(w, "%s: %s: %s\n",
		style(color, "\033[1m", "\033[22m", de.Pos.String()),
		style(color, "\033[31m", "\033[39m", "error["+string(de.Code)+"]"),
		de.Message)
}

func style(enabled bool, code, reset, s string) string {
	if !enabled {
		return s
	}
	return code + s + reset
}

func useColor(w io.Writer) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
