// Package weavetest holds test doubles for handlers, decorators,
// authenticators and transactions, plus a runner that drives an ABCI
// application block by block.
package weavetest
