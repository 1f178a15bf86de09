// Package domain contains the core entities of the drill service: users,
// their language profiles and the words queued for review. It is independent
// of storage and transport; the scheduling algorithm lives in the drill
// subpackage.
package domain
