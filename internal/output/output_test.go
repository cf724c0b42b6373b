package output

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func TestPrinter_NoColors(t *testing.T) {
	var out, errw bytes.Buffer
	p := NewPrinterWithWriters(&out, &errw, false)

	p.Success("saved %d users", 3)
	p.Info("done")
	p.Error("boom")
	p.Warn("careful")

	if !strings.Contains(out.String(), "✓ saved 3 users") {
		t.Errorf("stdout = %q", out.String())
	}
	if !strings.Contains(out.String(), "done") {
		t.Errorf("stdout missing info line: %q", out.String())
	}
	if !strings.Contains(errw.String(), "✗ boom") || !strings.Contains(errw.String(), "! careful") {
		t.Errorf("stderr = %q", errw.String())
	}
}

func TestResolveColors(t *testing.T) {
	t.Setenv("TERM", "xterm-256color")
	t.Setenv("NO_COLOR", "1")
	os.Unsetenv("NO_COLOR")

	if got := ResolveColors(true); !got {
		t.Error("colors disabled despite config enabling them")
	}
	if got := ResolveColors(false); got {
		t.Error("colors enabled despite config disabling them")
	}

	t.Setenv("NO_COLOR", "1")
	if got := ResolveColors(true); got {
		t.Error("NO_COLOR not honored")
	}
}

func TestTable(t *testing.T) {
	var buf bytes.Buffer
	tbl := NewTableWithWriter(&buf, []string{"id", "email"})
	tbl.AddRow([]string{"1", "ana@example.com"})
	tbl.AddRow([]string{"2", "luis@example.com"})
	tbl.Render()

	out := buf.String()
	for _, want := range []string{"ID", "EMAIL", "ana@example.com", "luis@example.com"} {
		if !strings.Contains(out, want) {
			t.Errorf("table output missing %q:\n%s", want, out)
		}
	}
}
