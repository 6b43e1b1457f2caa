// Package render turns graph descriptions into images by running the
// Graphviz dot binary.
package render

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

var (
	ErrUnsupportedFormat = errors.New("render: unsupported image format")
	ErrUnavailable       = errors.New("render: graphviz binary not available")
	ErrEmptyDescription  = errors.New("render: empty graph description")
)

// ImageFormat is an output format understood by Graphviz.
type ImageFormat string

const (
	PNG ImageFormat = "png"
	SVG ImageFormat = "svg"
	PDF ImageFormat = "pdf"
)

// ParseImageFormat accepts png, svg or pdf in any case. Empty means PNG.
func ParseImageFormat(s string) (ImageFormat, error) {
	switch f := ImageFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return PNG, nil
	case PNG, SVG, PDF:
		return f, nil
	}
	return "", fmt.Errorf("%w %q", ErrUnsupportedFormat, s)
}

// ContentType returns the MIME type of images in this format.
func (f ImageFormat) ContentType() string {
	switch f {
	case PNG:
		return "image/png"
	case SVG:
		return "image/svg+xml"
	case PDF:
		return "application/pdf"
	}
	return "application/octet-stream"
}

// Renderer produces image bytes from a graph description.
type Renderer interface {
	Render(ctx context.Context, description string, format ImageFormat) ([]byte, error)
}

// Error is returned when the Graphviz process fails, typically because the
// description is malformed.
type Error struct {
	Format ImageFormat
	Stderr string
	Err    error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("render: dot -T%s: %v", e.Format, e.Err)
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Options configures a Graphviz renderer.
type Options struct {
	// Binary is the dot executable name or path. Default: "dot".
	Binary string
	// Timeout bounds a single render. Zero means no timeout beyond ctx.
	Timeout time.Duration
	Logger  logrus.FieldLogger
}

// Graphviz renders by piping the description through the dot binary.
type Graphviz struct {
	binary  string
	timeout time.Duration
	log     logrus.FieldLogger
}

// New creates a Graphviz renderer. The binary is resolved lazily on each
// Render so a missing install surfaces as ErrUnavailable, not at startup.
func New(opts Options) *Graphviz {
	if opts.Binary == "" {
		opts.Binary = "dot"
	}
	if opts.Logger == nil {
		opts.Logger = logrus.StandardLogger()
	}
	return &Graphviz{
		binary:  opts.Binary,
		timeout: opts.Timeout,
		log:     opts.Logger.WithField("component", "render"),
	}
}

// Available reports whether the dot binary can be found.
func (r *Graphviz) Available() bool {
	_, err := exec.LookPath(r.binary)
	return err == nil
}

// Render runs `dot -T<format>` with description on stdin and returns stdout.
func (r *Graphviz) Render(ctx context.Context, description string, format ImageFormat) ([]byte, error) {
	if _, err := ParseImageFormat(string(format)); err != nil || format == "" {
		return nil, fmt.Errorf("%w %q", ErrUnsupportedFormat, format)
	}
	if strings.TrimSpace(description) == "" {
		return nil, ErrEmptyDescription
	}

	path, err := exec.LookPath(r.binary)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnavailable, r.binary, err)
	}

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, path, "-T"+string(format))
	cmd.Stdin = strings.NewReader(description)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = ctxErr
		}
		r.log.WithError(err).WithField("format", format).Warn("graphviz render failed")
		return nil, &Error{Format: format, Stderr: strings.TrimSpace(stderr.String()), Err: err}
	}

	r.log.WithFields(logrus.Fields{
		"format":   format,
		"bytes":    stdout.Len(),
		"duration": time.Since(start),
	}).Debug("graphviz render complete")
	return stdout.Bytes(), nil
}
