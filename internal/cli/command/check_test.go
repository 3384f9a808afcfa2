package command

import (
	"strings"
	"testing"
)

func TestCheck(t *testing.T) {
	res := runApp(t, "", "-o", "json", "check", "--ops", "500", "--seed-value", "3", "--key-len", "2")
	if res.err != nil {
		t.Fatalf("run error = %v\n%s", res.err, res.stderr)
	}
	for _, want := range []string{`"seed": 3`, `"ops": 500`} {
		if !strings.Contains(res.stdout, want) {
			t.Errorf("stdout missing %s:\n%s", want, res.stdout)
		}
	}
	if strings.Contains(res.stdout, "failures") {
		t.Errorf("stdout reports failures:\n%s", res.stdout)
	}
}

func TestCheck_Progress(t *testing.T) {
	res := runApp(t, "", "check", "--ops", "100", "--seed-value", "1", "--progress")
	if res.err != nil {
		t.Fatalf("run error = %v", res.err)
	}
	if !strings.Contains(res.stderr, "100%") {
		t.Errorf("stderr missing finished progress bar:\n%s", res.stderr)
	}
	if !strings.Contains(res.stdout, "FIELD") || strings.Contains(res.stdout, "script") {
		t.Errorf("table output = %q, want report fields without the script", res.stdout)
	}
}

func TestCheck_NegativeOps(t *testing.T) {
	res := runApp(t, "", "check", "--ops", "-1")
	if res.err == nil || !strings.Contains(res.err.Error(), "--ops") {
		t.Errorf("run error = %v, want --ops validation", res.err)
	}
}
