package main

import (
	"bytes"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iov-one/paysplit/weavetest"
	"github.com/iov-one/paysplit/weavetest/assert"
)

func TestRunScript(t *testing.T) {
	dir, err := ioutil.TempDir("", "paysplit-run")
	assert.Nil(t, err)
	defer os.RemoveAll(dir)
	home := filepath.Join(dir, "home")

	keyPath := filepath.Join(dir, "alice.key")
	var out bytes.Buffer
	assert.Nil(t, cmdKeygen(nil, &out, []string{"-key", keyPath, "-seed", testSeed}))
	priv, err := readKey(keyPath)
	assert.Nil(t, err)
	alice := priv.PublicKey().Address()

	genesis := fmt.Sprintf(`{
		"chain_id": "test-chain",
		"app_options": {
			"cash": [{"address": "%s", "amount": 100}],
			"token": [{"ticker": "IOV", "address": "%s", "amount": 7}]
		}
	}`, alice, alice)
	genPath := filepath.Join(dir, "genesis.json")
	assert.Nil(t, ioutil.WriteFile(genPath, []byte(genesis), 0600))

	out.Reset()
	assert.Nil(t, cmdInit(nil, &out, []string{"-home", home, "-genesis", genPath}))
	if !strings.HasPrefix(out.String(), "test-chain initialized at version 1") {
		t.Fatalf("unexpected init output: %q", out.String())
	}

	// Initializing twice fails.
	assert.Equal(t, true, cmdInit(nil, &out, []string{"-home", home, "-genesis", genPath}) != nil)

	first, second := weavetest.NewAddress(), weavetest.NewAddress()
	script := fmt.Sprintf(`[
		{"signer": %[1]q, "path": "distribution/create", "msg": {
			"destinations": [
				{"address": "%[2]s", "share": "1"},
				{"address": "%[3]s", "share": "3"}
			],
			"features": {"native": true, "distribute": true}
		}},
		{"signer": %[1]q, "path": "distribution/deposit", "splitter": 1,
		 "msg": {"source": "%[4]s", "amount": "40"}},
		{"commit": true},
		{"signer": %[1]q, "path": "distribution/distribute", "splitter": 1},
		{"signer": %[1]q, "path": "distribution/distribute_token", "splitter": 1, "msg": {"ticker": "IOV"}}
	]`, keyPath, first, second, alice)

	out.Reset()
	assert.Nil(t, cmdRun(strings.NewReader(script), &out, []string{"-home", home}))
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if !strings.HasPrefix(lines[0], "0 distribution/create ok: splitter 1 ") {
		t.Fatalf("unexpected create output: %q", out.String())
	}
	if !strings.Contains(out.String(), "commit 2: ") {
		t.Fatalf("missing first commit: %q", out.String())
	}
	if !strings.Contains(out.String(), "4 distribution/distribute_token failed") {
		t.Fatalf("token distribution must be disabled: %q", out.String())
	}
	if !strings.Contains(out.String(), "commit 3: ") {
		t.Fatalf("missing final commit: %q", out.String())
	}

	assertBalance(t, home, first.String(), "", "10")
	assertBalance(t, home, second.String(), "", "30")
	assertBalance(t, home, alice.String(), "", "60")
	assertBalance(t, home, alice.String(), "IOV", "7")

	out.Reset()
	assert.Nil(t, cmdSplitter(nil, &out, []string{"-home", home, "-id", "1"}))
	if !strings.Contains(out.String(), `"balance": "0"`) {
		t.Fatalf("unexpected splitter view: %s", out.String())
	}
}

func TestRunRetryWithRejectingRecipient(t *testing.T) {
	dir, err := ioutil.TempDir("", "paysplit-retry")
	assert.Nil(t, err)
	defer os.RemoveAll(dir)
	home := filepath.Join(dir, "home")

	keyPath := filepath.Join(dir, "alice.key")
	var out bytes.Buffer
	assert.Nil(t, cmdKeygen(nil, &out, []string{"-key", keyPath, "-seed", testSeed}))
	priv, err := readKey(keyPath)
	assert.Nil(t, err)
	alice := priv.PublicKey().Address()
	open, closed := weavetest.NewAddress(), weavetest.NewAddress()

	genesis := fmt.Sprintf(`{
		"chain_id": "test-chain",
		"app_options": {
			"cash": [{"address": "%s", "amount": 100}],
			"receivers": [{"address": "%s", "program": "reject"}]
		}
	}`, alice, closed)
	genPath := filepath.Join(dir, "genesis.json")
	assert.Nil(t, ioutil.WriteFile(genPath, []byte(genesis), 0600))
	assert.Nil(t, cmdInit(nil, &out, []string{"-home", home, "-genesis", genPath}))

	script := fmt.Sprintf(`[
		{"signer": %[1]q, "path": "distribution/create", "msg": {
			"destinations": [
				{"address": "%[2]s", "share": "1"},
				{"address": "%[3]s", "share": "1"}
			],
			"features": {"native": true, "distribute_with_retry": true}
		}},
		{"signer": %[1]q, "path": "distribution/deposit", "splitter": 1,
		 "msg": {"source": "%[4]s", "amount": "60"}},
		{"signer": %[1]q, "path": "distribution/distribute_with_retry", "splitter": 1}
	]`, keyPath, open, closed, alice)

	out.Reset()
	assert.Nil(t, cmdRun(strings.NewReader(script), &out, []string{"-home", home}))
	if !strings.Contains(out.String(), "2 distribution/distribute_with_retry ok") {
		t.Fatalf("unexpected output: %q", out.String())
	}
	if !strings.Contains(out.String(), "distribution.native.failed=1") {
		t.Fatalf("rejected transfer not reported: %q", out.String())
	}

	// The rejected half is paid to the open recipient in the second phase.
	assertBalance(t, home, open.String(), "", "60")
	assertBalance(t, home, closed.String(), "", "0")
	assertBalance(t, home, alice.String(), "", "40")
}

func assertBalance(t *testing.T, home, addr, ticker, want string) {
	t.Helper()
	var out bytes.Buffer
	args := []string{"-home", home, "-address", addr}
	if ticker != "" {
		args = append(args, "-ticker", ticker)
	}
	assert.Nil(t, cmdBalance(nil, &out, args))
	assert.Equal(t, want, strings.TrimSpace(out.String()))
}
