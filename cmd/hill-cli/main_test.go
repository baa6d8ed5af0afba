package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	hill "github.com/BackendStack21/hill-go"
	"github.com/BackendStack21/hill-go/cipher"
	"github.com/BackendStack21/hill-go/core"
	"github.com/BackendStack21/hill-go/keygen"
)

// runCLI executes the command tree in-process and returns stdout and the
// log output.
func runCLI(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	// Keep a user-level hill.yaml out of the way.
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", home)

	var out, logs bytes.Buffer
	root := newRootCmd(newLogger(&logs))
	root.SetArgs(args)
	root.SetOut(&out)
	root.SetErr(&logs)
	root.SetIn(strings.NewReader(stdin))
	err := root.Execute()
	return out.String(), logs.String(), err
}

func TestEncryptDecrypt(t *testing.T) {
	out, _, err := runCLI(t, "", "encrypt", "--key", "3,3;2,5", "--message", "HELP")
	require.NoError(t, err)

	var enc EncryptionExport
	require.NoError(t, json.Unmarshal([]byte(out), &enc))
	assert.Equal(t, "HIAT", enc.EncryptedText)
	assert.Equal(t, hill.KeyMatrix{{3, 3}, {2, 5}}, enc.KeyMatrix)

	out, _, err = runCLI(t, "", "decrypt", "--key", "3,3;2,5", "--message", enc.EncryptedText)
	require.NoError(t, err)

	var dec DecryptionExport
	require.NoError(t, json.Unmarshal([]byte(out), &dec))
	assert.Equal(t, "HELP", dec.DecryptedText)
}

func TestEncrypt_TextFormatAndStdin(t *testing.T) {
	out, _, err := runCLI(t, "hello", "encrypt", "-k", "3,3;2,5", "--format", "text")
	require.NoError(t, err)
	assert.Equal(t, "HIOZHN\n", out)

	out, _, err = runCLI(t, "HIOZHN", "dec", "-k", "3,3;2,5", "-f", "txt")
	require.NoError(t, err)
	assert.Equal(t, "HELLOX\n", out)
}

func TestEncrypt_YAMLFormat(t *testing.T) {
	out, _, err := runCLI(t, "", "encrypt", "-k", "17,17,5;21,18,21;2,2,19",
		"-m", "paymoremoney", "--format", "yaml")
	require.NoError(t, err)

	var enc EncryptionExport
	require.NoError(t, yaml.Unmarshal([]byte(out), &enc))
	assert.Equal(t, "LNSHDLEWMTRW", enc.EncryptedText)
}

func TestEncrypt_InputAndOutputFiles(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "message.txt")
	dst := filepath.Join(dir, "out.txt")
	require.NoError(t, os.WriteFile(in, []byte("Attack at dawn\n"), 0600))

	out, _, err := runCLI(t, "", "encrypt", "-k", "17,17,5;21,18,21;2,2,19",
		"--input", in, "--output", dst, "--format", "text")
	require.NoError(t, err)
	assert.Empty(t, out)

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "CNJGMMAPRXTF\n", string(data))

	info, err := os.Stat(dst)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestEncrypt_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"missing key", []string{"encrypt", "-m", "HELP"}},
		{"malformed key", []string{"encrypt", "-k", "3,x;2,5", "-m", "HELP"}},
		{"non-square key", []string{"encrypt", "-k", "1,2,3;4,5,6", "-m", "HELP"}},
		{"singular key", []string{"encrypt", "-k", "6,24;1,13", "-m", "HELP"}},
		{"bad format", []string{"encrypt", "-k", "3,3;2,5", "-m", "HELP", "-f", "xml"}},
		{"missing input file", []string{"decrypt", "-k", "3,3;2,5", "-i", "/nonexistent/msg"}},
		{"extra args", []string{"encrypt", "-k", "3,3;2,5", "HELP"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := runCLI(t, "", tc.args...)
			assert.Error(t, err)
		})
	}
}

func TestEncrypt_SingularKeyIsInvalidKey(t *testing.T) {
	_, _, err := runCLI(t, "", "encrypt", "-k", "6,24;1,13", "-m", "HELP")
	assert.ErrorIs(t, err, hill.ErrInvalidKey)
	assert.ErrorIs(t, err, hill.ErrMatrixNotInvertible)
}

func TestEncrypt_KeyFromEnvironment(t *testing.T) {
	t.Setenv("HILL_KEY", "3,3;2,5")
	t.Setenv("HILL_FORMAT", "text")

	out, _, err := runCLI(t, "", "encrypt", "-m", "HELP")
	require.NoError(t, err)
	assert.Equal(t, "HIAT\n", out)

	// Flags win over the environment.
	out, _, err = runCLI(t, "", "encrypt", "-m", "HELP", "-f", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"encrypted_text": "HIAT"`)
}

func TestConfigFile(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "hill.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("format: text\nkey: \"3,3;2,5\"\n"), 0600))

	out, _, err := runCLI(t, "", "--config", cfg, "encrypt", "-m", "HELP")
	require.NoError(t, err)
	assert.Equal(t, "HIAT\n", out)

	bad := filepath.Join(t.TempDir(), "hill.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("format: [unterminated\n"), 0600))
	_, _, err = runCLI(t, "", "--config", bad, "encrypt", "-m", "HELP")
	assert.Error(t, err)
}

func TestTimingAndVerbose(t *testing.T) {
	_, logs, err := runCLI(t, "", "encrypt", "-k", "3,3;2,5", "-m", "HELP", "--timing")
	require.NoError(t, err)
	assert.Contains(t, logs, "transform finished")
	assert.NotContains(t, logs, "loaded key")

	_, logs, err = runCLI(t, "", "encrypt", "-k", "3,3;2,5", "-m", "HELP", "--verbose")
	require.NoError(t, err)
	assert.Contains(t, logs, "loaded key")
}

func TestValidate(t *testing.T) {
	out, _, err := runCLI(t, "", "validate", "-k", "3,3;2,5")
	require.NoError(t, err)

	var v ValidationExport
	require.NoError(t, json.Unmarshal([]byte(out), &v))
	assert.True(t, v.IsValid)
	assert.Equal(t, hill.KeyMatrix{{15, 17}, {20, 9}}, v.InverseMatrix)
	require.NotNil(t, v.Determinant)
	assert.Equal(t, 9, *v.Determinant)
	assert.Equal(t, keygen.Fingerprint(hill.KeyMatrix{{3, 3}, {2, 5}}), v.Fingerprint)
	assert.Empty(t, v.Reason)
}

func TestValidate_InvalidKeyIsNotAnError(t *testing.T) {
	out, _, err := runCLI(t, "", "validate", "-k", "6,24;1,13")
	require.NoError(t, err)

	var v ValidationExport
	require.NoError(t, json.Unmarshal([]byte(out), &v))
	assert.False(t, v.IsValid)
	assert.Nil(t, v.InverseMatrix)
	require.NotNil(t, v.Determinant)
	assert.Equal(t, 2, *v.Determinant)
	assert.Empty(t, v.Fingerprint)
	assert.Contains(t, v.Reason, "not invertible")

	out, _, err = runCLI(t, "", "validate", "-k", "1,2,3;4,5,6")
	require.NoError(t, err)
	var ns ValidationExport
	require.NoError(t, json.Unmarshal([]byte(out), &ns))
	assert.False(t, ns.IsValid)
	assert.Nil(t, ns.Determinant)

	out, _, err = runCLI(t, "", "validate", "-k", "6,24;1,13", "-f", "text")
	require.NoError(t, err)
	assert.Contains(t, out, "valid: false")
	assert.Contains(t, out, "determinant mod 26: 2")

	_, _, err = runCLI(t, "", "validate", "-k", "not a key")
	assert.ErrorIs(t, err, hill.ErrParse)
}

func TestExamples(t *testing.T) {
	out, _, err := runCLI(t, "", "examples")
	require.NoError(t, err)

	var e ExamplesExport
	require.NoError(t, json.Unmarshal([]byte(out), &e))
	require.Len(t, e["2x2"], len(core.ExampleKeys()["2x2"]))
	require.Len(t, e["3x3"], len(core.ExampleKeys()["3x3"]))
	for _, k := range e["2x2"] {
		assert.Equal(t, core.IsValidKey(k.KeyMatrix), k.IsValid, k.Key)
	}

	out, _, err = runCLI(t, "", "examples", "-f", "text")
	require.NoError(t, err)
	assert.Contains(t, out, "6,24;1,13")
	assert.Contains(t, out, "invalid")
}

func TestKeygen(t *testing.T) {
	dir := t.TempDir()
	keyFile := filepath.Join(dir, "key.json")

	_, _, err := runCLI(t, "", "keygen", "--size", "3", "--output", keyFile)
	require.NoError(t, err)

	data, err := os.ReadFile(keyFile)
	require.NoError(t, err)
	var k KeyExport
	require.NoError(t, json.Unmarshal(data, &k))
	assert.Equal(t, 3, k.Size)
	assert.False(t, k.Derived)
	assert.True(t, core.IsValidKey(k.KeyMatrix))
	assert.Equal(t, core.FormatMatrix(k.KeyMatrix), k.Key)
	assert.Equal(t, keygen.Fingerprint(k.KeyMatrix), k.Fingerprint)
	assert.NotEmpty(t, k.CreatedAt)

	// The key file round trips through encrypt and decrypt.
	out, _, err := runCLI(t, "", "encrypt", "--key-file", keyFile, "-m", "HELP", "-f", "text")
	require.NoError(t, err)
	ct := strings.TrimSpace(out)

	out, _, err = runCLI(t, "", "decrypt", "--key-file", keyFile, "-m", ct, "-f", "text")
	require.NoError(t, err)
	assert.Equal(t, "HELPXX\n", out)
}

func TestKeygen_Derive(t *testing.T) {
	out, _, err := runCLI(t, "correct horse battery staple\n", "keygen", "--derive", "-n", "3")
	require.NoError(t, err)

	var k KeyExport
	require.NoError(t, json.Unmarshal([]byte(out), &k))
	assert.True(t, k.Derived)

	want, err := keygen.Derive([]byte("correct horse battery staple"), 3)
	require.NoError(t, err)
	assert.Equal(t, want, k.KeyMatrix)

	_, _, err = runCLI(t, "\n", "keygen", "--derive")
	assert.Error(t, err, "empty passphrase")

	_, _, err = runCLI(t, "", "keygen", "--size", "0")
	assert.Error(t, err)
}

func TestLoadKeyFile(t *testing.T) {
	dir := t.TempDir()
	key := hill.KeyMatrix{{3, 3}, {2, 5}}

	yamlFile := filepath.Join(dir, "key.yaml")
	data, err := yaml.Marshal(KeyExport{Size: 2, KeyMatrix: key})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(yamlFile, data, 0600))

	bare := filepath.Join(dir, "key.txt")
	require.NoError(t, os.WriteFile(bare, []byte("3,3;2,5\n"), 0600))

	for _, f := range []string{yamlFile, bare} {
		got, err := loadKeyFile(f)
		require.NoError(t, err, f)
		assert.Equal(t, key, got, f)
	}

	_, err = loadKeyFile(filepath.Join(dir, "missing"))
	assert.Error(t, err)
}

func TestBenchmark(t *testing.T) {
	out, _, err := runCLI(t, "", "benchmark", "--size", "3", "--iterations", "5")
	require.NoError(t, err)

	var b BenchmarkExport
	require.NoError(t, json.Unmarshal([]byte(out), &b))
	assert.Equal(t, 3, b.Size)
	assert.Equal(t, 5, b.Iterations)
	assert.NotEmpty(t, b.Encrypt)

	out, _, err = runCLI(t, "", "benchmark", "--iterations", "2", "-f", "text")
	require.NoError(t, err)
	assert.Contains(t, out, "Hill Cipher Benchmark Results")
}

func TestVersion(t *testing.T) {
	out, _, err := runCLI(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, appName+" version "+version)
	assert.Contains(t, out, hill.Version)

	out, _, err = runCLI(t, "", "--version")
	require.NoError(t, err)
	assert.Contains(t, out, version)
}

func TestReadMessage_TooLong(t *testing.T) {
	long := strings.Repeat("A", maxInputBytes+1)
	_, _, err := runCLI(t, long, "encrypt", "-k", "3,3;2,5")
	assert.Error(t, err)
}

func TestEncrypt_MatchesLibrary(t *testing.T) {
	key := hill.KeyMatrix{{5, 8}, {17, 3}}
	want, err := cipher.Encrypt("the quick brown fox", key)
	require.NoError(t, err)

	out, _, err := runCLI(t, "the quick brown fox", "encrypt", "-k", "5,8;17,3", "-f", "text")
	require.NoError(t, err)
	assert.Equal(t, want+"\n", out)
}
