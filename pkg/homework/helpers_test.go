package homework

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

// fixture is a course directory holding an assignments repository and a
// problem-bank next to it.
type fixture struct {
	base string
	repo string
	bank string
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	base := t.TempDir()
	f := fixture{
		base: base,
		repo: filepath.Join(base, "assignments-student"),
		bank: filepath.Join(base, DefaultProblemBankDir),
	}
	require.NoError(t, os.MkdirAll(f.repo, 0755))
	require.NoError(t, os.MkdirAll(f.bank, 0755))
	f.manifest(t, "cow-proximity", "intro-loops", "intro-loops", "intro-loops")
	return f
}

// manifest writes points.csv with one row per name.
func (f fixture) manifest(t *testing.T, names ...string) {
	t.Helper()
	var b strings.Builder
	b.WriteString("assignment,points\n")
	for _, n := range names {
		b.WriteString(n + ",10\n")
	}
	f.write(t, filepath.Join(f.bank, ManifestFile), b.String())
}

func (f fixture) write(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

// bankFile writes a file below the problem bank.
func (f fixture) bankFile(t *testing.T, rel, content string) {
	t.Helper()
	f.write(t, filepath.Join(f.bank, filepath.FromSlash(rel)), content)
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

// testLogger records entries in a buffer, one "LEVEL message" per line.
func testLogger() (*logrus.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	l := logrus.New()
	l.SetOutput(&buf)
	l.SetLevel(logrus.DebugLevel)
	l.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true, DisableQuote: true})
	return l, &buf
}
