package cli_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hvml/purc-go/cmd/purc/cli"
)

func run(args ...string) (stdout, stderr string, status int) {
	var outBuf, errBuf bytes.Buffer
	status = cli.Exec(args, &outBuf, &errBuf)
	return outBuf.String(), errBuf.String(), status
}

func TestVersionCommand(t *testing.T) {
	stdout, stderr, status := run("version")
	if status != 0 {
		t.Fatalf("unexpected status %d, stderr: %s", status, stderr)
	}
	if !strings.Contains(stdout, "purc") {
		t.Fatalf("expected output to mention purc, got %q", stdout)
	}
}

func TestTokenizeCommand(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.hvml")
	if err := os.WriteFile(path, []byte("<hvml><body>hi</body></hvml>"), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	stdout, stderr, status := run("tokenize", path)
	if status != 0 {
		t.Fatalf("unexpected status %d, stderr: %s", status, stderr)
	}
	if !strings.Contains(stdout, "hvml") {
		t.Fatalf("expected tokens mentioning hvml tag, got %q", stdout)
	}
	if !strings.Contains(stdout, "eof") {
		t.Fatalf("expected a trailing eof token, got %q", stdout)
	}
}

func TestTokenizeCommandMissingFile(t *testing.T) {
	_, stderr, status := run("tokenize", "/no/such/file.hvml")
	if status == 0 {
		t.Fatal("expected non-zero status for a missing file")
	}
	if stderr == "" {
		t.Fatal("expected an error message on stderr")
	}
}

func TestGraphCommandRespectsDependencyOrder(t *testing.T) {
	stdout, stderr, status := run("graph", "-d", "child:parent", "-d", "parent:root")
	if status != 0 {
		t.Fatalf("unexpected status %d, stderr: %s", status, stderr)
	}
	if !strings.Contains(stdout, "digraph") {
		t.Fatalf("expected dot output, got %q", stdout)
	}

	loadOrderLine := strings.SplitN(stdout, "\n", 2)[0]
	rootPos := strings.Index(loadOrderLine, "root")
	parentPos := strings.Index(loadOrderLine, "parent")
	childPos := strings.Index(loadOrderLine, "child")
	if rootPos < 0 || parentPos < 0 || childPos < 0 {
		t.Fatalf("expected load order comment naming all three ids, got %q", loadOrderLine)
	}
	if !(rootPos < parentPos && parentPos < childPos) {
		t.Fatalf("expected load order root, parent, child, got %q", loadOrderLine)
	}
}

func TestGraphCommandRejectsCycle(t *testing.T) {
	_, stderr, status := run("graph", "-d", "a:b", "-d", "b:a")
	if status == 0 {
		t.Fatal("expected non-zero status for a cyclic dependency set")
	}
	if stderr == "" {
		t.Fatal("expected an error message on stderr")
	}
}
