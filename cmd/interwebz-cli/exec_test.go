package main

import (
	"bytes"
	"errors"
	"net"
	"net/http"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRunExecSendsOneBatch(t *testing.T) {
	isolate(t)
	proxy, url := startProxy(t)

	var out bytes.Buffer
	err := runExec(rootArgs{}, []string{"--url", url, "PING", "GET missing", "ERR x"}, nil, &out)
	if err != nil {
		t.Fatalf("runExec: %v", err)
	}
	want := "\"PONG\"\n(nil)\n(error) ERR unknown command 'ERR x'\n"
	if out.String() != want {
		t.Fatalf("output = %q, want %q", out.String(), want)
	}
	if diff := cmp.Diff([][]string{{"PING", "GET missing", "ERR x"}}, proxy.sent()); diff != "" {
		t.Fatalf("batches mismatch (-want +got):\n%s", diff)
	}
}

func TestRunExecReadsStdin(t *testing.T) {
	isolate(t)
	proxy, url := startProxy(t)

	stdin := strings.NewReader("# warm up\nPING\n\n  SET a 1  \n")
	var out bytes.Buffer
	if err := runExec(rootArgs{}, []string{"--url", url}, stdin, &out); err != nil {
		t.Fatalf("runExec: %v", err)
	}
	if diff := cmp.Diff([][]string{{"PING", "SET a 1"}}, proxy.sent()); diff != "" {
		t.Fatalf("batches mismatch (-want +got):\n%s", diff)
	}
}

func TestRunExecRawPrintsJSON(t *testing.T) {
	isolate(t)
	_, url := startProxy(t)

	var out bytes.Buffer
	if err := runExec(rootArgs{}, []string{"--url", url, "--raw", "PING"}, nil, &out); err != nil {
		t.Fatalf("runExec: %v", err)
	}
	if !strings.Contains(out.String(), `"id": "tok-1"`) {
		t.Fatalf("raw JSON missing from output: %q", out.String())
	}
}

func TestRunExecRootOverrideSetsURL(t *testing.T) {
	isolate(t)
	proxy, url := startProxy(t)

	var out bytes.Buffer
	if err := runExec(rootArgs{overrides: []string{"url=" + url}}, []string{"PING"}, nil, &out); err != nil {
		t.Fatalf("runExec: %v", err)
	}
	if len(proxy.sent()) != 1 {
		t.Fatalf("expected one request, got %d", len(proxy.sent()))
	}
}

func TestRunExecHTTPErrorIsNotFatal(t *testing.T) {
	isolate(t)
	proxy, url := startProxy(t)
	proxy.status = http.StatusInternalServerError

	var out bytes.Buffer
	if err := runExec(rootArgs{}, []string{"--url", url, "PING", "PING"}, nil, &out); err != nil {
		t.Fatalf("runExec: %v", err)
	}
	if out.String() != "(error) HTTP 500: Internal Server Error\n" {
		t.Fatalf("output = %q", out.String())
	}
}

func TestRunExecTransportFailure(t *testing.T) {
	isolate(t)
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	addr := ln.Addr().String()
	ln.Close()

	var out bytes.Buffer
	if err := runExec(rootArgs{}, []string{"--url", "http://" + addr + "/", "PING"}, nil, &out); err == nil {
		t.Fatalf("expected transport error")
	}
	if out.Len() != 0 {
		t.Fatalf("nothing should be printed on fatal error, got %q", out.String())
	}
}

func TestRunExecNoCommands(t *testing.T) {
	isolate(t)
	err := runExec(rootArgs{}, nil, strings.NewReader("\n\n"), &bytes.Buffer{})
	if !errors.Is(err, errNoCommands) {
		t.Fatalf("err = %v, want errNoCommands", err)
	}
}
