package main

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunMissingInput(t *testing.T) {
	dir := t.TempDir()
	opts := options{
		input: filepath.Join(dir, "transfer_metrics.csv"),
		out:   filepath.Join(dir, "transfer_performance.png"),
		title: "test",
	}
	var out bytes.Buffer
	if err := run(opts, &out); err != nil {
		t.Fatalf("missing input must not be an error: %v", err)
	}
	if !strings.Contains(out.String(), "not found!") {
		t.Fatalf("missing remediation message:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "run the receiver first") {
		t.Fatalf("missing remediation hint:\n%s", out.String())
	}
	if _, err := os.Stat(opts.out); !os.IsNotExist(err) {
		t.Fatalf("no figure must be produced, stat err=%v", err)
	}
}

func TestRunEndToEnd(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "transfer_metrics.csv")
	csv := "Step,Size(MB),Time(s),Throughput(MB/s),Throughput(Mbps)\n" +
		"1,10,1.0,10.0,80.0\n" +
		"2,20,2.0,10.0,80.0\n"
	if err := os.WriteFile(input, []byte(csv), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}
	opts := options{
		input:     input,
		out:       filepath.Join(dir, "transfer_performance.png"),
		title:     "ADIOS2 WAN Transfer Performance",
		exportDir: filepath.Join(dir, "charts"),
	}
	var out bytes.Buffer
	if err := run(opts, &out); err != nil {
		t.Fatalf("run: %v", err)
	}
	for _, want := range []string{
		"Total steps: 2",
		"Total data transferred: 30.00 MB",
		"Total time: 3.00 seconds",
		"Average: 10.00 MB/s (80.00 Mbps)",
		"Performance plot saved to: " + opts.out,
	} {
		if !strings.Contains(out.String(), want) {
			t.Fatalf("stdout missing %q:\n%s", want, out.String())
		}
	}
	f, err := os.Open(opts.out)
	if err != nil {
		t.Fatalf("figure not written: %v", err)
	}
	defer f.Close()
	if _, err := png.Decode(f); err != nil {
		t.Fatalf("figure is not a valid PNG: %v", err)
	}
	for _, name := range []string{"throughput_mbs.png", "throughput_mbps.png", "transfer_time.png"} {
		if _, err := os.Stat(filepath.Join(opts.exportDir, name)); err != nil {
			t.Fatalf("quick-look chart %s missing: %v", name, err)
		}
	}
}

func TestRunMalformedInput(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "transfer_metrics.csv")
	if err := os.WriteFile(input, []byte("Step,Size(MB)\n1,10\n"), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}
	opts := options{input: input, out: filepath.Join(dir, "out.png"), title: "test"}
	var out bytes.Buffer
	if err := run(opts, &out); err == nil {
		t.Fatal("expected error for malformed input")
	}
	if _, err := os.Stat(opts.out); !os.IsNotExist(err) {
		t.Fatalf("no figure must be produced on malformed input, stat err=%v", err)
	}
}
