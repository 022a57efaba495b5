package config

import "sort"

var Presets = map[string]map[string]*Config{
	"polynomial": {
		"rk4": {
			Problem: "polynomial", Method: "rk4", A: 0, B: 2, X0: 0.5, Steps: 10,
			Tolerance: DefaultTolerance, HMin: DefaultHMin, HMax: DefaultHMax,
		},
		"rkf45": {
			Problem: "polynomial", Method: "rkf45", A: 0, B: 2, X0: 0.5, Steps: DefaultSteps,
			Tolerance: 1e-5, HMin: 0.01, HMax: 0.25,
		},
		"abm4": {
			Problem: "polynomial", Method: "abm4", A: 0, B: 2, X0: 0.5, Steps: 10,
			Tolerance: DefaultTolerance, HMin: DefaultHMin, HMax: DefaultHMax,
		},
		"euler": {
			Problem: "polynomial", Method: "euler", A: 0, B: 2, X0: 0.5, Steps: 10,
			Tolerance: DefaultTolerance, HMin: DefaultHMin, HMax: DefaultHMax,
		},
	},
	"growth": {
		"euler": {
			Problem: "growth", Method: "euler", A: 0, B: 1, X0: 1, Steps: 100,
			Tolerance: DefaultTolerance, HMin: DefaultHMin, HMax: DefaultHMax,
		},
		"rk4": {
			Problem: "growth", Method: "rk4", A: 0, B: 1, X0: 1, Steps: 10,
			Tolerance: DefaultTolerance, HMin: DefaultHMin, HMax: DefaultHMax,
		},
	},
	"logistic": {
		"rkf45": {
			Problem: "logistic", Method: "rkf45", A: 0, B: 5, X0: 0.1, Steps: DefaultSteps,
			Tolerance: 1e-7, HMin: 1e-4, HMax: 0.5,
		},
	},
	"gaussian": {
		"tight": {
			Problem: "gaussian", Method: "rkf45", A: 0, B: 2, X0: 1, Steps: DefaultSteps,
			Tolerance: 1e-9, HMin: 1e-5, HMax: 0.2,
		},
		"underflow": {
			Problem: "gaussian", Method: "rkf45", A: 0, B: 2, X0: 1, Steps: DefaultSteps,
			Tolerance: 1e-14, HMin: 0.01, HMax: 0.2,
		},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(problem, preset string) *Config {
	problemPresets, ok := Presets[problem]
	if !ok {
		return nil
	}
	cfg, ok := problemPresets[preset]
	if !ok {
		return nil
	}
	c := *cfg
	return &c
}

// ListPresets returns the preset names for a problem in sorted order.
func ListPresets(problem string) []string {
	problemPresets, ok := Presets[problem]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(problemPresets))
	for name := range problemPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
