package sim

// Machine is a validated, immutable model of computation. Every call to Run
// starts from fresh runtime state, so a Machine can be run any number of times.
type Machine interface {
	Mode() Mode
	// Run simulates the machine on input until a verdict is reached.
	Run(input string) *Result
	// Rules lists the transition table or productions in display form.
	Rules() []string
}

// NewMachine validates cfg and builds the variant its mode selects.
// All configuration errors are reported here, before any step runs.
func NewMachine(cfg *MachineConfig, opts ...Option) (Machine, error) {
	mode, err := ParseMode(cfg.Mode)
	if err != nil {
		return nil, err
	}
	switch mode {
	case ModeDFA:
		d, err := NewDFA(cfg, opts...)
		if err != nil {
			return nil, err
		}
		return d, nil
	case ModePDA:
		p, err := NewPDA(cfg, opts...)
		if err != nil {
			return nil, err
		}
		return p, nil
	case ModeTM:
		m, err := NewTM(cfg, opts...)
		if err != nil {
			return nil, err
		}
		return m, nil
	default:
		g, err := NewGrammar(mode, cfg, opts...)
		if err != nil {
			return nil, err
		}
		return g, nil
	}
}
