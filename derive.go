package tescrow

import (
	"crypto/sha256"

	"github.com/agl/ed25519/edwards25519"
	"github.com/iov-one/tescrow/errors"
)

// DeriveCondition searches for a condition that no private key can ever
// fulfil. The derived condition is of the format
//
//   sprintf("%s/%s/%s%c", extension, type, data, bump)
//
// Bumps are tried from 255 down to 0 and the first one whose condition digest
// is not a valid ed25519 point is returned together with the condition.
// Addresses of derived conditions are authorized only by the extension that
// knows the derivation input.
func DeriveCondition(ext, typ string, data []byte) (Condition, uint8, error) {
	for bump := 255; bump >= 0; bump-- {
		c := bumpCondition(ext, typ, data, uint8(bump))
		if !IsOnCurve(c) {
			return c, uint8(bump), nil
		}
	}
	return nil, 0, errors.Wrapf(errors.ErrInput, "no off curve condition for %s/%s", ext, typ)
}

// DerivedCondition rebuilds the condition for a bump returned previously by
// DeriveCondition. It fails if the resulting digest is a valid curve point.
func DerivedCondition(ext, typ string, data []byte, bump uint8) (Condition, error) {
	c := bumpCondition(ext, typ, data, bump)
	if IsOnCurve(c) {
		return nil, errors.Wrapf(errors.ErrInput, "bump %d is on curve", bump)
	}
	return c, nil
}

// IsOnCurve returns true if the sha256 digest of the condition decodes as an
// ed25519 public key.
func IsOnCurve(c Condition) bool {
	digest := sha256.Sum256(c)
	var p edwards25519.ExtendedGroupElement
	return p.FromBytes(&digest)
}

func bumpCondition(ext, typ string, data []byte, bump uint8) Condition {
	raw := make([]byte, 0, len(data)+1)
	raw = append(raw, data...)
	raw = append(raw, bump)
	return NewCondition(ext, typ, raw)
}
