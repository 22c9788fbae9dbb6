package weavetest

import (
	"io/ioutil"
	"os"
	"testing"

	"github.com/iov-one/tescrow"
	"github.com/iov-one/tescrow/store/iavl"
)

// CommitKVStore opens an iavl store on goleveldb in a temporary directory,
// the same backend a node runs on. Call cleanup to remove the directory.
func CommitKVStore(t testing.TB) (tescrow.CommitKVStore, func()) {
	dir, err := ioutil.TempDir("", "tescrow-store-")
	if err != nil {
		t.Fatalf("temp dir: %s", err)
	}
	db := iavl.NewCommitStore(dir, "db", "goleveldb")
	if err := db.LoadLatestVersion(); err != nil {
		os.RemoveAll(dir)
		t.Fatalf("load store: %s", err)
	}
	return db, func() { os.RemoveAll(dir) }
}
