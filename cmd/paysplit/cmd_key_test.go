package main

import (
	"bytes"
	"encoding/hex"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iov-one/paysplit/crypto"
	"github.com/iov-one/paysplit/weavetest/assert"
)

const testSeed = "000102030405060708090a0b0c0d0e0f"

func TestKeygenFromSeed(t *testing.T) {
	dir, err := ioutil.TempDir("", "paysplit-keys")
	assert.Nil(t, err)
	defer os.RemoveAll(dir)

	cases := map[string]string{
		"m/44'/234'/0'": "first.key",
		"m/44'/234'/1'": "second.key",
	}

	addrs := make(map[string]string)
	for path, name := range cases {
		t.Run(path, func(t *testing.T) {
			keyPath := filepath.Join(dir, name)
			var out bytes.Buffer
			assert.Nil(t, cmdKeygen(nil, &out, []string{"-key", keyPath, "-seed", testSeed, "-path", path}))

			// The key is never overwritten.
			if err := cmdKeygen(nil, &out, []string{"-key", keyPath}); err == nil {
				t.Fatal("existing key overwritten")
			}

			out.Reset()
			assert.Nil(t, cmdKeyaddr(nil, &out, []string{"-key", keyPath}))

			seed, _ := hex.DecodeString(testSeed)
			want, err := crypto.DeriveKey(seed, path)
			assert.Nil(t, err)
			got := strings.TrimSpace(out.String())
			assert.Equal(t, want.PublicKey().Address().String(), got)
			addrs[path] = got
		})
	}
	if addrs["m/44'/234'/0'"] == addrs["m/44'/234'/1'"] {
		t.Fatal("different paths produced the same address")
	}
}

func TestKeyaddrBech32(t *testing.T) {
	dir, err := ioutil.TempDir("", "paysplit-keys")
	assert.Nil(t, err)
	defer os.RemoveAll(dir)

	keyPath := filepath.Join(dir, "random.key")
	var out bytes.Buffer
	assert.Nil(t, cmdKeygen(nil, &out, []string{"-key", keyPath}))

	assert.Nil(t, cmdKeyaddr(nil, &out, []string{"-key", keyPath, "-bech32", "tpsl"}))
	if !strings.HasPrefix(out.String(), "tpsl1") {
		t.Fatalf("unexpected bech32 address: %q", out.String())
	}

	priv, err := readKey(keyPath)
	assert.Nil(t, err)
	want, err := priv.PublicKey().Address().Bech32String("tpsl")
	assert.Nil(t, err)
	assert.Equal(t, want, strings.TrimSpace(out.String()))
}
