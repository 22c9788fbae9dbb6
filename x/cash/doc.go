/*
Package cash keeps the holding accounts of the ledger.

A holding account (wallet) stores a set of coins and names its owner. Only
the owner may move coins out of it or close it. The owner may be a human
signer or a derived address whose authorization is granted by another
extension through the request context.

There is no logic in the coins, except that the balance of any coin may not
go below zero. Simple and safe.
*/
package cash
