/*
Package tescrow defines the interfaces used throughout the timed escrow
application: storage, transactions, handlers, conditions and addresses. It
also contains the helpers to work with context, derived addresses and ABCI
results.

Extensions live under x/ and are bound together by the app package into an
ABCI application that runs on top of Tendermint.
*/
package tescrow
