//go:build !bentodebug

package bento

// poisonRemoved controls whether swap-removed slots of pointer-free columns
// are filled with poisonByte. Enabled with the bentodebug build tag.
const poisonRemoved = false
