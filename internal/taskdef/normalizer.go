package taskdef

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
)

// Normalizer loads a descriptor, normalizes it and writes the result,
// printing one line per corrected variable and a final confirmation.
type Normalizer struct {
	fs     afero.Fs
	out    io.Writer
	logger *log.Logger
}

// NewNormalizer creates a Normalizer. A nil fs uses the OS filesystem,
// a nil out discards notifications and a nil logger discards log output.
func NewNormalizer(fs afero.Fs, out io.Writer, logger *log.Logger) *Normalizer {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	if out == nil {
		out = io.Discard
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Normalizer{
		fs:     fs,
		out:    out,
		logger: logger,
	}
}

// Plan loads and normalizes input without writing anything.
func (n *Normalizer) Plan(ctx context.Context, input string) (*Report, error) {
	_, report, err := n.load(ctx, input)
	return report, err
}

// Run normalizes input and writes the result to output.
// The output is not touched when loading or normalizing fails.
func (n *Normalizer) Run(ctx context.Context, input, output string) (*Report, error) {
	doc, report, err := n.load(ctx, input)
	if err != nil {
		return nil, err
	}

	for _, c := range report.Corrections {
		fmt.Fprintf(n.out, "Variable corregida: %s = %s\n", c.Name, c.Value)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := SaveFile(n.fs, output, doc); err != nil {
		return nil, err
	}
	n.logger.Debug("wrote descriptor", "path", output)

	fmt.Fprintln(n.out, "JSON generado correctamente")
	return report, nil
}

func (n *Normalizer) load(ctx context.Context, input string) (*Document, *Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	doc, err := LoadFile(n.fs, input)
	if err != nil {
		return nil, nil, err
	}
	n.logger.Debug("loaded descriptor", "path", input)

	report, err := Normalize(doc)
	if err != nil {
		return nil, nil, &FileError{Op: "normalize", Path: input, Err: err}
	}
	n.logReport(report)

	return doc, report, nil
}

func (n *Normalizer) logReport(report *Report) {
	for _, field := range report.RemovedFields {
		n.logger.Debug("removed field", "field", field)
	}
	if report.RemovedCPU {
		n.logger.Debug("removed container cpu", "container", 0)
	}
	for _, c := range report.Corrections {
		n.logger.Debug("corrected variable", "name", c.Name, "index", c.Index, "previous", c.Previous)
	}
	if !report.Changed() {
		n.logger.Info("descriptor already normalized")
	}
}
