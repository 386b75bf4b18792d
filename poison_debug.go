//go:build bentodebug

package bento

const poisonRemoved = true
