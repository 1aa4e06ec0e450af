package callback

// ParserOptions configures how the dispatcher (internal/dispatch)
// recognises specialised constraint shapes and normalises their operands
// before handing them to a Bank (spec §6 "Configuration flags"). Defaults
// mirror XCSP3CoreCallbacksBase's: every recognition flag defaults to
// enabled (supplemented feature #4), mirroring the teacher's
// flag-variable-per-option style (cobra binds one flag per option in
// cmd/xcsp3).
type ParserOptions struct {
	IntensionUsingString           bool
	RecognizeSpecialIntensionCases bool
	RecognizeSpecialCountCases     bool
	RecognizeNValuesCases          bool
	NormalizeSum                   bool
	DiscardedClasses               map[string]bool
}

// DefaultOptions returns the options XCSP3CoreCallbacksBase defaults to:
// every recognition pass enabled, no classes discarded.
func DefaultOptions() ParserOptions {
	return ParserOptions{
		RecognizeSpecialIntensionCases: true,
		RecognizeSpecialCountCases:     true,
		RecognizeNValuesCases:          true,
		NormalizeSum:                   true,
		DiscardedClasses:               make(map[string]bool),
	}
}

// Option mutates a ParserOptions in place, composed at construction time.
type Option func(*ParserOptions)

// WithIntensionUsingString makes the generic intension fallback deliver
// the original textual expression instead of the parsed tree.
func WithIntensionUsingString(enabled bool) Option {
	return func(o *ParserOptions) { o.IntensionUsingString = enabled }
}

// WithRecognizeSpecialIntensionCases toggles the primitive-pattern
// recognition table of spec §4.4.
func WithRecognizeSpecialIntensionCases(enabled bool) Option {
	return func(o *ParserOptions) { o.RecognizeSpecialIntensionCases = enabled }
}

// WithRecognizeSpecialCountCases toggles exactly/atLeast/atMost/among
// recognition for <count>.
func WithRecognizeSpecialCountCases(enabled bool) Option {
	return func(o *ParserOptions) { o.RecognizeSpecialCountCases = enabled }
}

// WithRecognizeNValuesCases toggles allEqual/notAllEqual/allDifferent
// recognition for <nValues>.
func WithRecognizeNValuesCases(enabled bool) Option {
	return func(o *ParserOptions) { o.RecognizeNValuesCases = enabled }
}

// WithNormalizeSum toggles coefficient merging/zero-dropping for <sum>.
func WithNormalizeSum(enabled bool) Option {
	return func(o *ParserOptions) { o.NormalizeSum = enabled }
}

// WithDiscardedClasses adds class tags whose constraints are silently
// dropped by the dispatcher's filter (spec §4.4 step 1).
func WithDiscardedClasses(classes ...string) Option {
	return func(o *ParserOptions) {
		if o.DiscardedClasses == nil {
			o.DiscardedClasses = make(map[string]bool)
		}
		for _, c := range classes {
			o.DiscardedClasses[c] = true
		}
	}
}

// NewOptions builds a ParserOptions from DefaultOptions plus the given
// Options, applied in order.
func NewOptions(opts ...Option) ParserOptions {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
