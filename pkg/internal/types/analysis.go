package types

// SynchronizedPair holds two equal-length, time-aligned series.
type SynchronizedPair struct {
	A        []float64
	B        []float64
	BadShots int
}

// Len returns the common length of both series.
func (p SynchronizedPair) Len() int { return len(p.A) }

// FitKind selects the curve fit computed on each refresh.
type FitKind string

const (
	FitNone       FitKind = "none"
	FitLinear     FitKind = "linear"
	FitPolynomial FitKind = "polynomial"
)

// FitStatus classifies a fit attempt.
type FitStatus int

const (
	FitOK          FitStatus = iota
	FitUnavailable           // not enough usable data
	FitFailed                // numerically degenerate
)

func (s FitStatus) String() string {
	switch s {
	case FitOK:
		return "ok"
	case FitUnavailable:
		return "Fit unavailable"
	default:
		return "Fit failed"
	}
}

// FitResult is the outcome of one linear or polynomial fit. Coefficients are
// highest degree first.
type FitResult struct {
	Kind         FitKind
	Order        int
	Coefficients []float64
	Vertex       float64
	HasVertex    bool
	Summary      string
	Status       FitStatus
	Err          error
}

// OK reports whether the fit produced usable coefficients.
func (r FitResult) OK() bool { return r.Status == FitOK }

// Slope returns the degree-1 coefficient of a linear fit.
func (r FitResult) Slope() float64 {
	if r.Order != 1 || len(r.Coefficients) != 2 {
		return 0
	}
	return r.Coefficients[0]
}

// Intercept returns the constant term of a linear fit.
func (r FitResult) Intercept() float64 {
	if r.Order != 1 || len(r.Coefficients) != 2 {
		return 0
	}
	return r.Coefficients[1]
}

// Statistics summarizes the dependent series of a frame.
type Statistics struct {
	Count          int
	Mean           float64
	StdDev         float64
	Min            float64
	Max            float64
	Correlation    float64
	HasCorrelation bool
}

// Spectrum is a single-sided magnitude spectrum sorted by frequency.
type Spectrum struct {
	Frequencies []float64
	Magnitudes  []float64
}

// Len returns the number of bins.
func (s Spectrum) Len() int { return len(s.Frequencies) }

// Mode selects what a session computes on refresh.
type Mode string

const (
	ModeTimeSeries  Mode = "time"
	ModeCorrelation Mode = "correlation"
	ModeSpectrum    Mode = "spectrum"
)

// ResultKind separates a good frame from the two failure families.
type ResultKind int

const (
	ResultOK ResultKind = iota
	ResultNoData
	ResultNumericFailure
)

func (k ResultKind) String() string {
	switch k {
	case ResultOK:
		return "ok"
	case ResultNoData:
		return "no_data"
	default:
		return "numeric_failure"
	}
}

// Frame is everything the presentation layer needs for one refresh.
type Frame struct {
	SessionID string
	Sequence  uint64
	Mode      Mode
	Title     string
	Devices   [SlotCount]string
	Rate      RateCode
	X         []float64
	Y         []float64
	Stats     Statistics
	Fit       FitResult
	Spectrum  Spectrum
	Kind      ResultKind
	Status    string
}
