/*
Package escrow implements a timed escrow between two parties.

A maker deposits an asset into a vault and nominates a taker. At creation the
taker receives a single claim token, a unit of the taker asset class, that
proves eligibility. Until the expiry height the taker may claim by depositing
the token into the vault. Once the locking period has passed since creation
the vault can be settled to the taker. The maker may refund the vault at any
time.

The record, vault and authority addresses are derived from the maker and a
maker chosen seed. No private key exists for any of them. Funds held in the
vault can be moved only by this extension, which authenticates the derived
authority while processing a refund or settle message.
*/
package escrow
