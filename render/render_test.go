package render

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const description = "digraph SalesFlow {\n    \"Start\";\n}\n"

// fakeDot writes an executable shell script standing in for Graphviz.
func fakeDot(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script stand-in requires a unix shell")
	}
	path := filepath.Join(t.TempDir(), "dot")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755))
	return path
}

func quietLogger() logrus.FieldLogger {
	logger, _ := test.NewNullLogger()
	return logger
}

func TestParseImageFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    ImageFormat
		wantErr bool
	}{
		{"", PNG, false},
		{"png", PNG, false},
		{"SVG", SVG, false},
		{" pdf ", PDF, false},
		{"gif", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseImageFormat(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnsupportedFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestContentType(t *testing.T) {
	assert.Equal(t, "image/png", PNG.ContentType())
	assert.Equal(t, "image/svg+xml", SVG.ContentType())
	assert.Equal(t, "application/pdf", PDF.ContentType())
	assert.Equal(t, "application/octet-stream", ImageFormat("bmp").ContentType())
}

func TestRender(t *testing.T) {
	t.Run("pipes description through binary", func(t *testing.T) {
		r := New(Options{Binary: fakeDot(t, `echo "$1"; cat`), Logger: quietLogger()})

		out, err := r.Render(context.Background(), description, SVG)
		require.NoError(t, err)
		assert.Equal(t, "-Tsvg\n"+description, string(out))
	})

	t.Run("process failure carries stderr", func(t *testing.T) {
		r := New(Options{Binary: fakeDot(t, `echo "syntax error in line 1" >&2; exit 1`), Logger: quietLogger()})

		_, err := r.Render(context.Background(), description, PNG)
		var rerr *Error
		require.True(t, errors.As(err, &rerr))
		assert.Equal(t, PNG, rerr.Format)
		assert.Equal(t, "syntax error in line 1", rerr.Stderr)
		assert.Contains(t, err.Error(), "dot -Tpng")
	})

	t.Run("timeout", func(t *testing.T) {
		r := New(Options{Binary: fakeDot(t, `exec sleep 5`), Timeout: 50 * time.Millisecond, Logger: quietLogger()})

		_, err := r.Render(context.Background(), description, PNG)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})

	t.Run("missing binary", func(t *testing.T) {
		r := New(Options{Binary: "callflow-no-such-dot-binary", Logger: quietLogger()})

		assert.False(t, r.Available())
		_, err := r.Render(context.Background(), description, PNG)
		assert.ErrorIs(t, err, ErrUnavailable)
	})

	t.Run("unsupported format", func(t *testing.T) {
		_, err := New(Options{Logger: quietLogger()}).Render(context.Background(), description, "gif")
		assert.ErrorIs(t, err, ErrUnsupportedFormat)
	})

	t.Run("empty description", func(t *testing.T) {
		_, err := New(Options{Logger: quietLogger()}).Render(context.Background(), "  \n", PNG)
		assert.ErrorIs(t, err, ErrEmptyDescription)
	})
}
