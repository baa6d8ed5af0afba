package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	log "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	hill "github.com/BackendStack21/hill-go"
	"github.com/BackendStack21/hill-go/alphabet"
	"github.com/BackendStack21/hill-go/cipher"
	"github.com/BackendStack21/hill-go/core"
	"github.com/BackendStack21/hill-go/keygen"
	"github.com/BackendStack21/hill-go/modular"
	"github.com/BackendStack21/hill-go/utils"
)

// maxInputBytes caps message input read from files or stdin.
const maxInputBytes = 4 * utils.MaxTextLength

// ============================================================================
// Encrypt / Decrypt
// ============================================================================

func addKeyFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("key", "k", "", `key matrix, e.g. "3,3;2,5" (env HILL_KEY)`)
	cmd.Flags().String("key-file", "", "file holding a key written by keygen, or a bare key string")
}

func addMessageFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("message", "m", "", "message text (default: read --input or stdin)")
	cmd.Flags().StringP("input", "i", "", "file to read the message from")
}

func newEncryptCmd(logger *log.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "encrypt",
		Aliases: []string{"enc"},
		Short:   "Encrypt a message",
		Long: `Encrypt a message with a Hill key. Letters are uppercased, everything
that is not A-Z is dropped and the text is padded with 'X' to a multiple of
the key size.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTransform(cmd, logger, true)
		},
	}
	addKeyFlags(cmd)
	addMessageFlags(cmd)
	return cmd
}

func newDecryptCmd(logger *log.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "decrypt",
		Aliases: []string{"dec"},
		Short:   "Decrypt a message",
		Long: `Decrypt a message with a Hill key. Padding added during encryption is
not removed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTransform(cmd, logger, false)
		},
	}
	addKeyFlags(cmd)
	addMessageFlags(cmd)
	return cmd
}

func runTransform(cmd *cobra.Command, logger *log.Logger, encrypt bool) error {
	config, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	key, err := resolveKey(config)
	if err != nil {
		return err
	}
	logger.Debug("loaded key", "key", core.FormatMatrix(key), "size", key.Size())

	message, err := readMessage(cmd, config)
	if err != nil {
		return err
	}
	logger.Debug("read message", "symbols", len(alphabet.Encode(message)))

	start := time.Now()
	var result any
	if encrypt {
		var ct string
		ct, err = cipher.Encrypt(message, key)
		result = EncryptionExport{EncryptedText: ct, KeyMatrix: key}
	} else {
		var pt string
		pt, err = cipher.Decrypt(message, key)
		result = DecryptionExport{DecryptedText: pt, KeyMatrix: key}
	}
	elapsed := time.Since(start)
	if err != nil {
		return err
	}

	if config.Timing {
		logger.Info("transform finished", "encrypt", encrypt, "elapsed", elapsed)
	}
	return emit(cmd, config, result)
}

// ============================================================================
// Validate / Examples
// ============================================================================

func newValidateCmd(logger *log.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check whether a key is invertible mod 26",
		Long: `Check whether a key is usable: it must be square and its determinant
coprime with 26. Prints the inverse key when it is. An unusable key is not
an error; a key that does not parse is.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			key, err := resolveKey(config)
			if err != nil {
				return err
			}

			export := validationExport(key)
			logger.Debug("validated key", "key", core.FormatMatrix(key), "valid", export.IsValid)
			return emit(cmd, config, export)
		},
	}
	addKeyFlags(cmd)
	return cmd
}

func validationExport(key hill.KeyMatrix) ValidationExport {
	v := core.ValidateKey(key)
	export := ValidationExport{
		IsValid:       v.IsValid,
		InverseMatrix: v.Inverse,
	}
	if d, err := modular.DeterminantMod(key, hill.Modulus); err == nil {
		export.Determinant = &d
	}
	if v.IsValid {
		export.Fingerprint = keygen.Fingerprint(key)
	} else if err := core.CheckKey(key); err != nil {
		export.Reason = err.Error()
	}
	return export
}

func newExamplesCmd(logger *log.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "examples",
		Short: "List reference keys",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			export := ExamplesExport{}
			for shape, keys := range core.ExampleKeys() {
				for _, k := range keys {
					export[shape] = append(export[shape], ExampleKeyExport{
						Key:       core.FormatMatrix(k),
						KeyMatrix: k,
						IsValid:   core.IsValidKey(k),
					})
				}
			}
			logger.Debug("listing example keys", "shapes", len(export))
			return emit(cmd, config, export)
		},
	}
}

// ============================================================================
// Keygen
// ============================================================================

func newKeygenCmd(logger *log.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "Generate a random or passphrase-derived key",
		Long: `Generate an invertible key. By default the key is random. With --derive
the key is derived from a passphrase read from the terminal (without echo)
or from the first line of stdin; the same passphrase always gives the same key.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			derive, _ := cmd.Flags().GetBool("derive")

			start := time.Now()
			var key hill.KeyMatrix
			if derive {
				passphrase, err := readPassphrase(cmd)
				if err != nil {
					return fmt.Errorf("error reading passphrase: %w", err)
				}
				key, err = keygen.Derive(passphrase, config.Size)
				utils.Zeroize(passphrase)
				if err != nil {
					return err
				}
			} else {
				key, err = keygen.Generate(config.Size)
				if err != nil {
					return err
				}
			}
			if config.Timing {
				logger.Info("key generation finished", "elapsed", time.Since(start))
			}

			export := KeyExport{
				Size:        key.Size(),
				Key:         core.FormatMatrix(key),
				KeyMatrix:   key,
				Fingerprint: keygen.Fingerprint(key),
				Derived:     derive,
				CreatedAt:   time.Now().UTC().Format(time.RFC3339),
			}
			logger.Debug("generated key", "size", export.Size, "fingerprint", export.Fingerprint)
			return emit(cmd, config, export)
		},
	}
	cmd.Flags().IntP("size", "n", 2, "key dimension n (env HILL_SIZE)")
	cmd.Flags().Bool("derive", false, "derive the key from a passphrase")
	return cmd
}

// readPassphrase prompts on a terminal, otherwise reads one line from stdin.
func readPassphrase(cmd *cobra.Command) ([]byte, error) {
	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(cmd.ErrOrStderr(), "Passphrase: ")
		passphrase, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(cmd.ErrOrStderr())
		return passphrase, err
	}
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return []byte(strings.TrimRight(line, "\r\n")), nil
}

// ============================================================================
// Benchmark / Version
// ============================================================================

func newBenchmarkCmd(logger *log.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "benchmark",
		Short: "Run performance benchmarks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			iterations := config.Iterations
			if iterations < 1 {
				iterations = 1
			}

			key, err := keygen.Generate(config.Size)
			if err != nil {
				return err
			}
			logger.Debug("benchmark key", "key", core.FormatMatrix(key))

			message := strings.Repeat("THEQUICKBROWNFOXJUMPSOVERTHELAZYDOG", 10)

			var newTotal, encTotal, decTotal time.Duration
			var c *cipher.Cipher
			for i := 0; i < iterations; i++ {
				start := time.Now()
				c, err = cipher.NewCipher(key)
				newTotal += time.Since(start)
				if err != nil {
					return err
				}
			}

			var ct string
			for i := 0; i < iterations; i++ {
				start := time.Now()
				ct, err = c.Encrypt(message)
				encTotal += time.Since(start)
				if err != nil {
					return err
				}
			}

			for i := 0; i < iterations; i++ {
				start := time.Now()
				_, err = c.Decrypt(ct)
				decTotal += time.Since(start)
				if err != nil {
					return err
				}
			}

			return emit(cmd, config, BenchmarkExport{
				Size:       config.Size,
				Iterations: iterations,
				Symbols:    len(message),
				NewCipher:  avg(newTotal, iterations),
				Encrypt:    avg(encTotal, iterations),
				Decrypt:    avg(decTotal, iterations),
			})
		},
	}
	cmd.Flags().IntP("size", "n", 2, "key dimension n")
	cmd.Flags().Int("iterations", 1000, "iterations per operation")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s version %s\n", appName, version)
			fmt.Fprintf(cmd.OutOrStdout(), "Hill library version %s\n", hill.Version)
		},
	}
}

// ============================================================================
// Utility Functions
// ============================================================================

func emit(cmd *cobra.Command, config CLIConfig, v any) error {
	data, err := render(v, config.OutputFormat)
	if err != nil {
		return err
	}
	return writeOutput(cmd.OutOrStdout(), data, config.OutputFile)
}

// resolveKey picks the key from --key-file or --key, in that order.
func resolveKey(config CLIConfig) (hill.KeyMatrix, error) {
	switch {
	case config.KeyFile != "":
		return loadKeyFile(config.KeyFile)
	case config.Key != "":
		return core.ParseMatrix(config.Key)
	default:
		return nil, errors.New("--key or --key-file is required")
	}
}

// loadKeyFile accepts a KeyExport in JSON or YAML, or a bare key string.
func loadKeyFile(filename string) (hill.KeyMatrix, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("error loading key file: %w", err)
	}
	trimmed := strings.TrimSpace(string(data))

	var export KeyExport
	if strings.HasPrefix(trimmed, "{") {
		err = json.Unmarshal([]byte(trimmed), &export)
	} else {
		err = yaml.Unmarshal([]byte(trimmed), &export)
	}
	if err == nil {
		switch {
		case export.Key != "":
			return core.ParseMatrix(export.Key)
		case len(export.KeyMatrix) > 0:
			return export.KeyMatrix, nil
		}
	}

	// Try a bare key string
	return core.ParseMatrix(trimmed)
}

func readMessage(cmd *cobra.Command, config CLIConfig) (string, error) {
	if msg, _ := cmd.Flags().GetString("message"); msg != "" {
		return msg, nil
	}

	var r io.Reader = cmd.InOrStdin()
	if config.InputFile != "" {
		f, err := os.Open(config.InputFile)
		if err != nil {
			return "", fmt.Errorf("error opening input file: %w", err)
		}
		defer f.Close()
		r = f
	}

	data, err := io.ReadAll(io.LimitReader(r, maxInputBytes+1))
	if err != nil {
		return "", fmt.Errorf("error reading message: %w", err)
	}
	if len(data) > maxInputBytes {
		return "", fmt.Errorf("message exceeds %d bytes: %w", maxInputBytes, utils.ErrExceedsLimit)
	}
	return string(data), nil
}
