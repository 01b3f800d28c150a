package stats

import (
	"github.com/RyanBlaney/sonido-tonal/algorithms/common"
)

// QuartileInfo contains quartile-specific information
type QuartileInfo struct {
	Q1  float64 `json:"q1"`  // First quartile (25th percentile)
	Q2  float64 `json:"q2"`  // Second quartile (50th percentile, median)
	Q3  float64 `json:"q3"`  // Third quartile (75th percentile)
	IQR float64 `json:"iqr"` // Interquartile range (Q3 - Q1)
}

// WhiskerInfo holds Tukey box plot fences
type WhiskerInfo struct {
	Lower float64 `json:"lower"` // Q1 - k*IQR
	Upper float64 `json:"upper"` // Q3 + k*IQR
}

// DefaultWhiskerK is the conventional Tukey fence multiplier
const DefaultWhiskerK = 1.5

// Quartiles computes Q1, median and Q3 with linear interpolation between
// closest ranks. Empty input yields all zeros.
func Quartiles(data []float64) QuartileInfo {
	if len(data) == 0 {
		return QuartileInfo{}
	}

	q1 := common.Percentile(data, 0.25)
	q3 := common.Percentile(data, 0.75)
	return QuartileInfo{
		Q1:  q1,
		Q2:  common.Percentile(data, 0.5),
		Q3:  q3,
		IQR: q3 - q1,
	}
}

// Whiskers returns the fences q1 - k*iqr and q3 + k*iqr
func Whiskers(q QuartileInfo, k float64) WhiskerInfo {
	return WhiskerInfo{
		Lower: q.Q1 - k*q.IQR,
		Upper: q.Q3 + k*q.IQR,
	}
}
