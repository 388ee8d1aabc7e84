package hawkes

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// PredictionRecord pairs one prediction with its ground truth. Ground truth
// comes from the observed sequence, never from the predictor.
type PredictionRecord struct {
	PredictedDt   float64
	ObservedDt    float64
	PredictedType int
	ObservedType  int
}

// PredictSequence walks a padded sequence and predicts each event from the
// decay state left by its predecessors, skipping the two earliest positions
// where the network has no real context yet. Position i's state predicts the
// observed event at padded position i+1.
func PredictSequence(net RecurrentNetwork, p *Predictor, seq EventSequence) ([]PredictionRecord, error) {
	states, err := Forward(net, seq)
	if err != nil {
		return nil, err
	}

	var records []PredictionRecord
	for i := 2; i < seq.Length; i++ {
		pred := p.PredictNext(states[i])
		records = append(records, PredictionRecord{
			PredictedDt:   pred.InterArrival,
			ObservedDt:    seq.InterArrival[i+1],
			PredictedType: pred.Type,
			ObservedType:  seq.Types[i+1],
		})
	}
	return records, nil
}

// PredictionStats aggregates prediction quality over a dataset. The absolute
// duration-error fields complement the RMSE: percentiles are robust to the
// few badly truncated predictions a short horizon produces.
type PredictionStats struct {
	Count        int
	TimeMSE      float64
	TimeRMSE     float64
	TimeErrMean  float64 // mean absolute duration error
	TimeErrP50   float64 // median absolute duration error
	TimeErrP95   float64
	TypeAccuracy float64
}

// EvaluatePredictions computes duration error statistics and type accuracy
// over collected records. Safe for an empty slice (zero-value stats).
func EvaluatePredictions(records []PredictionRecord) PredictionStats {
	stats := PredictionStats{Count: len(records)}
	if len(records) == 0 {
		return stats
	}

	squared := make([]float64, len(records))
	absErr := make([]float64, len(records))
	correct := 0
	for i, r := range records {
		diff := r.PredictedDt - r.ObservedDt
		squared[i] = diff * diff
		absErr[i] = math.Abs(diff)
		if r.PredictedType == r.ObservedType {
			correct++
		}
	}
	sort.Float64s(absErr)

	stats.TimeMSE = stat.Mean(squared, nil)
	stats.TimeRMSE = math.Sqrt(stats.TimeMSE)
	stats.TimeErrMean = CalculateMean(absErr)
	stats.TimeErrP50 = CalculatePercentile(absErr, 50)
	stats.TimeErrP95 = CalculatePercentile(absErr, 95)
	stats.TypeAccuracy = float64(correct) / float64(len(records))
	return stats
}

func (s PredictionStats) String() string {
	return fmt.Sprintf("predictions=%d time_rmse=%.4f time_abs_err_mean=%.4f time_abs_err_p50=%.4f time_abs_err_p95=%.4f type_accuracy=%.4f",
		s.Count, s.TimeRMSE, s.TimeErrMean, s.TimeErrP50, s.TimeErrP95, s.TypeAccuracy)
}

type IntOrFloat64 interface {
	int | int64 | float64
}

// CalculatePercentile is a util function that calculates the p-th percentile
// of a sorted data list, interpolating between neighbors.
func CalculatePercentile[T IntOrFloat64](data []T, p float64) float64 {
	n := len(data)
	if n == 0 {
		return 0.0
	}

	rank := p / 100.0 * float64(n-1)
	lowerIdx := int(math.Floor(rank))
	upperIdx := int(math.Ceil(rank))

	if lowerIdx == upperIdx {
		return float64(data[lowerIdx])
	}
	if upperIdx >= n {
		return float64(data[n-1])
	}
	lowerVal := float64(data[lowerIdx])
	upperVal := float64(data[upperIdx])
	return lowerVal + (upperVal-lowerVal)*(rank-float64(lowerIdx))
}

// CalculateMean is a util function that calculates the mean of a data list.
func CalculateMean[T IntOrFloat64](numbers []T) float64 {
	if len(numbers) == 0 {
		return 0.0
	}

	sum := 0.0
	for _, number := range numbers {
		sum += float64(number)
	}
	return sum / float64(len(numbers))
}
