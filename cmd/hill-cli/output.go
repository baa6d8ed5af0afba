package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	hill "github.com/BackendStack21/hill-go"
	"github.com/BackendStack21/hill-go/core"
	"gopkg.in/yaml.v3"
)

// texter is implemented by exports that have a plain-text rendering.
type texter interface {
	Text() string
}

// EncryptionExport is the result of the encrypt command.
type EncryptionExport struct {
	EncryptedText string         `json:"encrypted_text" yaml:"encrypted_text"`
	KeyMatrix     hill.KeyMatrix `json:"key_matrix" yaml:"key_matrix"`
}

func (e EncryptionExport) Text() string { return e.EncryptedText }

// DecryptionExport is the result of the decrypt command.
type DecryptionExport struct {
	DecryptedText string         `json:"decrypted_text" yaml:"decrypted_text"`
	KeyMatrix     hill.KeyMatrix `json:"key_matrix" yaml:"key_matrix"`
}

func (d DecryptionExport) Text() string { return d.DecryptedText }

// ValidationExport is the result of the validate command.
type ValidationExport struct {
	IsValid       bool           `json:"is_valid" yaml:"is_valid"`
	InverseMatrix hill.KeyMatrix `json:"inverse_matrix" yaml:"inverse_matrix"`
	Determinant   *int           `json:"determinant_mod_26,omitempty" yaml:"determinant_mod_26,omitempty"`
	Fingerprint   string         `json:"fingerprint,omitempty" yaml:"fingerprint,omitempty"`
	Reason        string         `json:"reason,omitempty" yaml:"reason,omitempty"`
}

func (v ValidationExport) Text() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "valid: %t\n", v.IsValid)
	if v.Determinant != nil {
		fmt.Fprintf(&sb, "determinant mod 26: %d\n", *v.Determinant)
	}
	if v.IsValid {
		fmt.Fprintf(&sb, "inverse: %s\n", core.FormatMatrix(v.InverseMatrix))
		fmt.Fprintf(&sb, "fingerprint: %s\n", v.Fingerprint)
	}
	if v.Reason != "" {
		fmt.Fprintf(&sb, "reason: %s\n", v.Reason)
	}
	return strings.TrimRight(sb.String(), "\n")
}

// ExampleKeyExport is one reference key.
type ExampleKeyExport struct {
	Key       string         `json:"key" yaml:"key"`
	KeyMatrix hill.KeyMatrix `json:"key_matrix" yaml:"key_matrix"`
	IsValid   bool           `json:"is_valid" yaml:"is_valid"`
}

// ExamplesExport groups reference keys by shape ("2x2", "3x3").
type ExamplesExport map[string][]ExampleKeyExport

func (e ExamplesExport) Text() string {
	shapes := make([]string, 0, len(e))
	for shape := range e {
		shapes = append(shapes, shape)
	}
	sort.Strings(shapes)

	var lines []string
	for _, shape := range shapes {
		for _, k := range e[shape] {
			status := "valid"
			if !k.IsValid {
				status = "invalid"
			}
			lines = append(lines, fmt.Sprintf("%s  %-24s %s", shape, k.Key, status))
		}
	}
	return strings.Join(lines, "\n")
}

// KeyExport is a generated or derived key, also the key file format read by
// --key-file.
type KeyExport struct {
	Size        int            `json:"size" yaml:"size"`
	Key         string         `json:"key" yaml:"key"`
	KeyMatrix   hill.KeyMatrix `json:"key_matrix" yaml:"key_matrix"`
	Fingerprint string         `json:"fingerprint" yaml:"fingerprint"`
	Derived     bool           `json:"derived" yaml:"derived"`
	CreatedAt   string         `json:"created_at" yaml:"created_at"`
}

func (k KeyExport) Text() string { return k.Key }

// BenchmarkExport holds average timings per operation.
type BenchmarkExport struct {
	Size       int    `json:"size" yaml:"size"`
	Iterations int    `json:"iterations" yaml:"iterations"`
	Symbols    int    `json:"symbols" yaml:"symbols"`
	NewCipher  string `json:"new_cipher" yaml:"new_cipher"`
	Encrypt    string `json:"encrypt" yaml:"encrypt"`
	Decrypt    string `json:"decrypt" yaml:"decrypt"`
}

func (b BenchmarkExport) Text() string {
	return fmt.Sprintf(`Hill Cipher Benchmark Results
=============================
Key size:   %dx%d
Iterations: %d
Symbols:    %d

  NewCipher: %s (avg)
  Encrypt:   %s (avg)
  Decrypt:   %s (avg)`,
		b.Size, b.Size, b.Iterations, b.Symbols, b.NewCipher, b.Encrypt, b.Decrypt)
}

func avg(total time.Duration, n int) string {
	return (total / time.Duration(n)).String()
}

// render serialises v in the requested format.
func render(v any, format OutputFormat) ([]byte, error) {
	switch format {
	case FormatYAML:
		return yaml.Marshal(v)
	case FormatText:
		if t, ok := v.(texter); ok {
			return []byte(t.Text() + "\n"), nil
		}
		return nil, fmt.Errorf("no text rendering for %T", v)
	default:
		out, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(out, '\n'), nil
	}
}

// writeOutput writes data to filename with 0600 permissions, or to w when
// filename is empty.
func writeOutput(w io.Writer, data []byte, filename string) error {
	if filename == "" {
		_, err := w.Write(data)
		return err
	}

	f, err := os.OpenFile(filename, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("error creating output file: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("error writing output file: %w", err)
	}

	// Ensure permissions are enforced even if umask is permissive
	if err := os.Chmod(filename, 0600); err != nil {
		return fmt.Errorf("error setting file permissions: %w", err)
	}
	return nil
}
