// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package smile

// Zigzag coding interleaves signed integers onto the unsigned number
// line (0, -1, 1, -2, 2, ...) so that small-magnitude values of either
// sign stay small when packed.

func zigzagEncode32(v int32) uint32 {
	return uint32(v<<1) ^ uint32(v>>31)
}

func zigzagDecode32(u uint32) int32 {
	return int32(u>>1) ^ -int32(u&1)
}

func zigzagEncode64(v int64) uint64 {
	return uint64(v<<1) ^ uint64(v>>63)
}

func zigzagDecode64(u uint64) int64 {
	return int64(u>>1) ^ -int64(u&1)
}
