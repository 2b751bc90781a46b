package xmlpage

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Converter turns a PDF into converter XML
type Converter interface {
	Convert(ctx context.Context, pdfPath string) ([]byte, error)
}

// DefaultBinary is the poppler converter
const DefaultBinary = "pdftohtml"

// CommandConverter runs an external pdftohtml-compatible binary that writes
// XML to stdout.
type CommandConverter struct {
	Binary string
	Args   []string
}

// NewCommandConverter uses binary, or pdftohtml when empty
func NewCommandConverter(binary string) *CommandConverter {
	if binary == "" {
		binary = DefaultBinary
	}
	return &CommandConverter{
		Binary: binary,
		Args:   []string{"-xml", "-i", "-q", "-stdout"},
	}
}

func (c *CommandConverter) Convert(ctx context.Context, pdfPath string) ([]byte, error) {
	args := append(append([]string{}, c.Args...), pdfPath)
	cmd := exec.CommandContext(ctx, c.Binary, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return nil, fmt.Errorf("convert %s: %w: %s", pdfPath, err, msg)
		}
		return nil, fmt.Errorf("convert %s: %w", pdfPath, err)
	}
	return stdout.Bytes(), nil
}

// Load converts and parses one PDF
func Load(ctx context.Context, c Converter, pdfPath string) (*Document, error) {
	data, err := c.Convert(ctx, pdfPath)
	if err != nil {
		return nil, err
	}
	doc, err := ParseBytes(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", pdfPath, err)
	}
	doc.Path = pdfPath
	return doc, nil
}
