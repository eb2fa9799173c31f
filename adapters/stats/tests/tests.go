package tests

// Result represents the output of one test procedure applied to one
// pair of samples
type Result struct {
	TestName   string  `json:"test_name"`
	Statistic  float64 `json:"statistic"`
	DF         float64 `json:"df"` // +Inf for the normal approximation
	PValue     float64 `json:"p_value"`
	Degenerate bool    `json:"degenerate,omitempty"`
}

// Procedure defines the interface for each two-sample mean test
type Procedure interface {
	Name() string
	Description() string
	Compare(x, y []float64) Result
}

// Battery bundles the three procedures so callers apply them uniformly
// to every trial
type Battery struct {
	procedures []Procedure
}

// NewBattery creates a battery with the standard three procedures
func NewBattery() *Battery {
	return &Battery{
		procedures: []Procedure{
			NewStudentTTest(),
			NewWelchTTest(),
			NewZTest(),
		},
	}
}

// CompareAll applies every procedure to the sample pair, in battery order
func (b *Battery) CompareAll(x, y []float64) []Result {
	results := make([]Result, len(b.procedures))
	for i, p := range b.procedures {
		results[i] = p.Compare(x, y)
	}
	return results
}

// Get returns the procedure with the given name
func (b *Battery) Get(name string) (Procedure, bool) {
	for _, p := range b.procedures {
		if p.Name() == name {
			return p, true
		}
	}
	return nil, false
}

// Names returns all procedure names in battery order
func (b *Battery) Names() []string {
	names := make([]string, len(b.procedures))
	for i, p := range b.procedures {
		names[i] = p.Name()
	}
	return names
}

// Descriptions returns name -> description for every procedure
func (b *Battery) Descriptions() map[string]string {
	out := make(map[string]string, len(b.procedures))
	for _, p := range b.procedures {
		out[p.Name()] = p.Description()
	}
	return out
}

// degenerate builds the fallback result for samples the procedure cannot
// score: too few observations or zero spread. Statistic 0 and p = 1 keep
// downstream aggregation free of NaNs.
func degenerate(name string) Result {
	return Result{
		TestName:   name,
		Statistic:  0,
		DF:         0,
		PValue:     1.0,
		Degenerate: true,
	}
}
