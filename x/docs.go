// Package x holds what the extensions share: the Authenticator they
// receive in their constructors. The extensions live in the subpackages.
// cash keeps wallets and holding accounts, currency registers tokens,
// sigs checks signatures and escrow implements the timed escrow.
package x
