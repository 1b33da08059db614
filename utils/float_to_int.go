// SPDX-License-Identifier: EPL-2.0

package utils

import "math"

// Float32ToInt16 quantizes a sample to signed 16-bit PCM.
//
// x is clipped to [-1, 1] first. Positive values scale by 32767 and negative
// values by 32768, so both ends of the int16 range are reachable without
// overflow. NaN maps to 0.
func Float32ToInt16(x float32) int16 {
	switch {
	case x != x:
		return 0
	case x > 1:
		x = 1
	case x < -1:
		x = -1
	}

	if x >= 0 {
		return int16(math.Round(float64(x) * math.MaxInt16))
	}
	return int16(math.Round(float64(x) * -math.MinInt16))
}

// Int16ToFloat32 maps a 16-bit PCM sample to [-1, 1).
func Int16ToFloat32(v int16) float32 {
	return float32(v) / 32768.0
}
