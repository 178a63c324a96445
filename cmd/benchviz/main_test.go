// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/goleak"

	"github.com/yabil/benchviz/benchjson"
	"github.com/yabil/benchviz/benchseries"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const data = "../../benchjson/testdata/results"

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	err := cmd.Execute()
	return out.String(), err
}

func wantContains(t *testing.T, out string, subs ...string) {
	t.Helper()
	for _, s := range subs {
		if !strings.Contains(out, s) {
			t.Errorf("output lacks %q:\n%s", s, out)
		}
	}
}

func TestCases(t *testing.T) {
	out, err := run(t, "cases", data)
	if err != nil {
		t.Fatal(err)
	}
	wantContains(t, out, "normal", "gmp.json", "yabil.json", "uint16", "bench01")
	if strings.Contains(out, "README") {
		t.Errorf("non-result file listed:\n%s", out)
	}
}

func TestTable(t *testing.T) {
	out, err := run(t, "table", data, "normal", "--op", "Addition")
	if err != nil {
		t.Fatal(err)
	}
	wantContains(t, out, "Addition (ns)", "1024", "GMP", "40.00", "2500.00")
	if strings.Contains(out, "Multiplication") {
		t.Errorf("--op did not filter:\n%s", out)
	}

	out, err = run(t, "table", data, "normal", "--op", "Addition", "--baseline", "GMP")
	if err != nil {
		t.Fatal(err)
	}
	wantContains(t, out, "Addition vs GMP", "geomean", "1.00x", "0.38x", "0.40x")

	out, err = run(t, "table", data, "normal", "--op", "Addition", "--unit", "us")
	if err != nil {
		t.Fatal(err)
	}
	wantContains(t, out, "Addition (us)", "0.0400", "2.5000")

	if _, err := run(t, "table", data, "normal", "--unit", "kbit"); err == nil {
		t.Errorf("--unit kbit: want error")
	}

	_, err = run(t, "table", data, "normal", "--op", "Division")
	var mv *benchseries.MissingVariantError
	if !errors.As(err, &mv) {
		t.Errorf("unknown op: got %v, want MissingVariantError", err)
	}
}

func TestCSV(t *testing.T) {
	out, err := run(t, "csv", data, "normal", "--time-field", "real_time")
	if err != nil {
		t.Fatal(err)
	}
	wantContains(t, out,
		"operation,variant,size,value\n",
		"Addition,GMP,16,40\n",
		"Addition,YABIL,1024,2500\n",
		"Multiplication,YABIL_parallel_4_threads,64,800\n",
	)
}

func TestExport(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "results.db")
	out, err := run(t, "export", data, "normal", "--dsn", dsn)
	if err != nil {
		t.Fatal(err)
	}
	wantContains(t, out, "normal: 5 points")
}

func TestStored(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "results.db")
	for _, c := range []string{"normal", "uint16"} {
		if _, err := run(t, "export", data, c, "--dsn", dsn); err != nil {
			t.Fatal(err)
		}
	}

	out, err := run(t, "stored", "--dsn", dsn)
	if err != nil {
		t.Fatal(err)
	}
	if out != "normal\nuint16\n" {
		t.Errorf("stored cases = %q", out)
	}

	out, err = run(t, "stored", "normal", "--dsn", dsn)
	if err != nil {
		t.Fatal(err)
	}
	wantContains(t, out, "Addition (ns)", "40.00", "2500.00", "Multiplication (ns)", "800.0")

	out, err = run(t, "stored", "normal", "--op", "Addition", "--dsn", dsn)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(out, "Multiplication") {
		t.Errorf("--op did not filter:\n%s", out)
	}

	_, err = run(t, "stored", "normal", "--op", "Division", "--dsn", dsn)
	var mv *benchseries.MissingVariantError
	if !errors.As(err, &mv) {
		t.Errorf("unknown op: got %v, want MissingVariantError", err)
	}
	if _, err := run(t, "stored", "parallel", "--dsn", dsn); err == nil {
		t.Errorf("unknown case: want error")
	}
}

func TestRender(t *testing.T) {
	abs, err := filepath.Abs(data)
	if err != nil {
		t.Fatal(err)
	}
	dir := t.TempDir()
	cfg := filepath.Join(dir, "report.yaml")
	if err := os.WriteFile(cfg, []byte(`
data_dir: `+abs+`
formats: [svg]
cases:
  - name: normal
  - name: uint16
    rename: {YABIL: YABIL_uint16}
reports:
  - name: digits
    cases: [normal, uint16]
    operations: [Addition]
    y: {scale: log}
`), 0o666); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "out")
	stdout, err := run(t, "render", "-c", cfg, "--out", out)
	if err != nil {
		t.Fatal(err)
	}
	wantContains(t, stdout, "digits: 1 charts")
	for _, f := range []string{"digits/Addition.svg", "digits/index.html"} {
		if _, err := os.Stat(filepath.Join(out, f)); err != nil {
			t.Error(err)
		}
	}
}

func TestErrors(t *testing.T) {
	_, err := run(t, "csv", data, "missing")
	var nf *benchjson.CaseNotFoundError
	if !errors.As(err, &nf) {
		t.Errorf("missing case: got %v, want CaseNotFoundError", err)
	}
	if _, err := run(t, "csv", data, "normal", "--time-field", "wall"); err == nil {
		t.Errorf("bad time field: want error")
	}
	if _, err := run(t, "csv", data); err == nil {
		t.Errorf("missing argument: want error")
	}
	if _, err := run(t, "render", "-c", filepath.Join(t.TempDir(), "none.yaml")); err == nil {
		t.Errorf("missing config: want error")
	}
}
