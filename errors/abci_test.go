package errors

import (
	"io"
	"testing"
)

func TestABCIInfo(t *testing.T) {
	cases := map[string]struct {
		err      error
		debug    bool
		wantCode uint32
		wantLog  string
	}{
		"root error": {
			err:      ErrNotFound,
			wantLog:  "not found",
			wantCode: ErrNotFound.code,
		},
		"wrapped root error": {
			err:      Wrap(Wrap(ErrExpired, "claim"), "escrow"),
			wantLog:  "escrow: claim: expired",
			wantCode: ErrExpired.code,
		},
		"nil": {
			err:      nil,
			wantLog:  "",
			wantCode: 0,
		},
		"typed nil": {
			err:      (*Error)(nil),
			wantLog:  "",
			wantCode: 0,
		},
		"stdlib error is redacted": {
			err:      io.EOF,
			wantLog:  "internal error",
			wantCode: 1,
		},
		"stdlib error in debug mode": {
			err:      io.EOF,
			debug:    true,
			wantLog:  "EOF",
			wantCode: 1,
		},
		"wrapped stdlib error is redacted": {
			err:      Wrap(io.EOF, "cannot read record"),
			wantLog:  "internal error",
			wantCode: 1,
		},
		"custom coder": {
			err:      customErr{},
			wantLog:  "custom",
			wantCode: 999,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			code, log := ABCIInfo(tc.err, tc.debug)
			if code != tc.wantCode {
				t.Errorf("want %d code, got %d", tc.wantCode, code)
			}
			if log != tc.wantLog {
				t.Errorf("want %q log, got %q", tc.wantLog, log)
			}
		})
	}
}

func TestRedact(t *testing.T) {
	if err := Redact(ErrPanic.New("secret"), false); ErrPanic.Is(err) || err.Error() != "internal error" {
		t.Fatalf("panic must be redacted, got %v", err)
	}
	if err := Redact(ErrPanic.New("secret"), true); !ErrPanic.Is(err) {
		t.Fatalf("debug mode must keep the error, got %v", err)
	}
	if err := Redact(io.EOF, false); err.Error() != "internal error" {
		t.Fatalf("stdlib error must be redacted, got %v", err)
	}
	if err := Redact(ErrExpired, false); !ErrExpired.Is(err) {
		t.Fatalf("coded error must be kept, got %v", err)
	}
}

// customErr provides its own ABCI code.
type customErr struct{}

func (customErr) ABCICode() uint32 { return 999 }

func (customErr) Error() string { return "custom" }
