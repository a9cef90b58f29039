package progress

// Sink consumes progress events fanned out by the Hub. Implementations must
// be safe for use from the Hub's single consumer goroutine and should return
// quickly; slow sinks cause event drops upstream.
type Sink interface {
	Consume(evt Event)
}
