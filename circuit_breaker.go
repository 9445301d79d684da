package adc

import (
	"time"

	"github.com/pior/adc/proto"
	"github.com/sony/gobreaker/v2"
)

// NewMalformedLineBreaker returns a circuit breaker for ReaderConfig.MalformedLineBreaker.
//
// Every parsed line is a request; a line rejected by the parser is a failure.
// The breaker trips after maxConsecutive malformed lines in a row, or when at
// least half of the lines seen within interval are malformed (with a minimum of
// 10 lines). After timeout it lets maxConsecutive lines through again.
func NewMalformedLineBreaker(name string, maxConsecutive uint32, interval, timeout time.Duration) *gobreaker.CircuitBreaker[*proto.Command] {
	settings := gobreaker.Settings{
		Name:        name,
		MaxRequests: maxConsecutive,
		Interval:    interval,
		Timeout:     timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.ConsecutiveFailures >= maxConsecutive {
				return true
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 10 && failureRatio >= 0.5
		},
	}
	return gobreaker.NewCircuitBreaker[*proto.Command](settings)
}
