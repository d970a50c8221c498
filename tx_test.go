package paysplit

import (
	"testing"

	"github.com/iov-one/paysplit/errors"
)

type testMsg struct {
	Value string
}

func (testMsg) Path() string                { return "test/msg" }
func (m *testMsg) Marshal() ([]byte, error) { return []byte(m.Value), nil }
func (m *testMsg) Unmarshal(b []byte) error { m.Value = string(b); return nil }
func (m *testMsg) Validate() error {
	if m.Value == "" {
		return errors.Wrap(errors.ErrEmpty, "value")
	}
	return nil
}

type otherMsg struct{ testMsg }

type testTx struct {
	msg Msg
	err error
}

func (tx testTx) GetMsg() (Msg, error) { return tx.msg, tx.err }

func TestLoadMsg(t *testing.T) {
	cases := map[string]struct {
		tx      Tx
		dest    interface{}
		wantErr *errors.Error
	}{
		"valid message": {
			tx:   testTx{msg: &testMsg{Value: "x"}},
			dest: &testMsg{},
		},
		"invalid message": {
			tx:      testTx{msg: &testMsg{}},
			dest:    &testMsg{},
			wantErr: errors.ErrEmpty,
		},
		"message type mismatch": {
			tx:      testTx{msg: &testMsg{Value: "x"}},
			dest:    &otherMsg{},
			wantErr: errors.ErrType,
		},
		"nil message": {
			tx:      testTx{},
			dest:    &testMsg{},
			wantErr: errors.ErrMsg,
		},
		"transaction error": {
			tx:      testTx{err: errors.ErrInput},
			dest:    &testMsg{},
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if err := LoadMsg(tc.tx, tc.dest); !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
		})
	}
}

func TestGetPath(t *testing.T) {
	if got := GetPath(testTx{msg: &testMsg{}}); got != "test/msg" {
		t.Fatalf("unexpected path %q", got)
	}
	if got := GetPath(testTx{}); got != "(missing)" {
		t.Fatalf("unexpected path %q", got)
	}
}
