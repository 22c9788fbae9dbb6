package tescrow

import (
	"testing"

	"github.com/iov-one/tescrow/errors"
	"github.com/stretchr/testify/require"
)

type testMsg struct {
	Value string
}

func (m *testMsg) Marshal() ([]byte, error) { return []byte(m.Value), nil }

func (m *testMsg) Unmarshal(raw []byte) error {
	m.Value = string(raw)
	return nil
}

func (testMsg) Path() string { return "test/msg" }

func (m testMsg) Validate() error {
	if m.Value == "" {
		return errors.ErrEmpty
	}
	return nil
}

type otherMsg struct{ testMsg }

type testTx struct {
	msg Msg
	err error
}

func (tx *testTx) Marshal() ([]byte, error) { return nil, nil }

func (tx *testTx) Unmarshal([]byte) error { return nil }

func (tx *testTx) GetMsg() (Msg, error) { return tx.msg, tx.err }

func TestLoadMsg(t *testing.T) {
	var msg testMsg
	require.NoError(t, LoadMsg(&testTx{msg: &testMsg{Value: "x"}}, &msg))
	require.Equal(t, "x", msg.Value)

	err := LoadMsg(&testTx{msg: &testMsg{}}, &msg)
	require.True(t, errors.ErrEmpty.Is(err))

	err = LoadMsg(&testTx{msg: &otherMsg{testMsg{Value: "x"}}}, &msg)
	require.True(t, errors.ErrType.Is(err))

	err = LoadMsg(&testTx{}, &msg)
	require.True(t, errors.ErrMsg.Is(err))

	err = LoadMsg(&testTx{msg: &testMsg{Value: "x"}}, msg)
	require.True(t, errors.ErrType.Is(err))

	err = LoadMsg(&testTx{err: errors.ErrState}, &msg)
	require.True(t, errors.ErrState.Is(err))
}

func TestGetPath(t *testing.T) {
	require.Equal(t, "test/msg", GetPath(&testTx{msg: &testMsg{}}))
	require.Equal(t, "(missing)", GetPath(&testTx{}))
}

func TestReadOptions(t *testing.T) {
	opts := Options{"cash": []byte(`{"count": 3}`)}
	var got struct{ Count int }
	require.NoError(t, opts.ReadOptions("cash", &got))
	require.Equal(t, 3, got.Count)
	require.NoError(t, opts.ReadOptions("missing", &got))
	require.Error(t, Options{"bad": []byte("{")}.ReadOptions("bad", &got))
}
