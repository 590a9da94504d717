package game

// Config holds competition configuration options.
type Config struct {
	// Seed for random number generation. Used for reproducible competitions.
	// A seed of 0 means a random seed will be generated.
	Seed int64
	// Debug hands every chance outcome to the operator instead of the seed.
	Debug bool
}
