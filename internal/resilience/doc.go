// Package resilience groups the fault-tolerance helpers used around external
// calls: circuit breakers (gobreaker) and retry with exponential backoff.
//
//	cb := circuitbreaker.New(circuitbreaker.AnthropicAPIConfig())
//	out, err := circuitbreaker.Run(cb, func() (string, error) {
//	    return callExternalService(ctx)
//	})
//
//	err := retry.WithBackoff(ctx, retry.NeuralAPIConfig(), func() error {
//	    return performOperation()
//	})
package resilience
