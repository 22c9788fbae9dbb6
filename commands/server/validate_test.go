package server

import (
	"io/ioutil"
	"path/filepath"
	"testing"

	"github.com/iov-one/tescrow"
	"github.com/iov-one/tescrow/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type requireKey string

func (k requireKey) FromGenesis(opts tescrow.Options, db tescrow.KVStore) error {
	if _, ok := opts[string(k)]; !ok {
		return errors.Wrapf(errors.ErrEmpty, "missing %q", string(k))
	}
	return nil
}

func TestValidateGenesis(t *testing.T) {
	home, cleanup := tempHome(t)
	defer cleanup()

	write := func(name, content string) string {
		p := filepath.Join(home, name)
		require.NoError(t, ioutil.WriteFile(p, []byte(content), 0600))
		return p
	}
	good := write("good.json", `{"app_state": {"cash": []}}`)
	missing := write("missing.json", `{"app_state": {"currency": {}}}`)
	broken := write("broken.json", `{"app_state": `)

	ini := requireKey("cash")
	assert.NoError(t, ValidateGenesis(ini, []string{good}))
	assert.True(t, errors.ErrEmpty.Is(ValidateGenesis(ini, []string{good, missing})))
	assert.True(t, errors.ErrInput.Is(ValidateGenesis(ini, []string{broken})))
	assert.True(t, errors.ErrInput.Is(ValidateGenesis(ini, []string{filepath.Join(home, "nope.json")})))
	assert.True(t, errors.ErrInput.Is(ValidateGenesis(ini, nil)))
}
