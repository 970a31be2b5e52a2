package sanitizer

// Chain is an ordered list of string cleaners.
type Chain []func(string) string

// Clean runs s through every cleaner in order.
func (c Chain) Clean(s string) string {
	for _, fn := range c {
		s = fn(s)
	}
	return s
}
