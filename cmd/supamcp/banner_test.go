package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestPrintBanner_NoColor(t *testing.T) {
	t.Parallel()
	var out bytes.Buffer
	printBanner(&out, false)
	got := out.String()
	if got == "" {
		t.Fatal("banner is empty")
	}
	if strings.Contains(got, "\033[") {
		t.Fatal("no-color banner must not contain ANSI escapes")
	}
}

func TestPrintBanner_Color(t *testing.T) {
	t.Parallel()
	var out bytes.Buffer
	printBanner(&out, true)
	got := out.String()
	if !strings.Contains(got, "\033[1;32m") {
		t.Fatal("color banner must contain ANSI escapes")
	}
	if !strings.HasSuffix(got, "\033[0m\n") {
		t.Fatal("color banner must reset at the end")
	}
}
