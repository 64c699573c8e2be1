// Package state persists last-known thing property values.
//
// The gateway records a JSON snapshot of each thing's property data every
// time data is published. When a thing is registered again after a
// restart its previous values are restored, so the DevIoT server sees
// meaningful state before the first fresh reading arrives.
package state
