// Package identity defines the id scheme for stored items: how an id
// encodes its media kind, which file extension that kind maps to, and
// how new ids are minted.
//
// The coupling between id prefix and file extension is part of the
// storage contract. No per-item extension is ever stored; every path in
// the store is computed from the id alone.
package identity
