package models

// EngineSnapshot is the read-only bundle produced after every completed tick.
// All slices and maps are deep copies; consumers may hold a snapshot across
// ticks without observing later mutation.
// Note: no transport (json/http) concerns beyond plain field tags here.
type EngineSnapshot struct {
	Tick         int               `json:"tick"`
	Signals      []Signal          `json:"signals"`
	Correlations CorrelationMatrix `json:"correlations"`
	Risk         []RiskCategory    `json:"risk"`
	Anomaly      AnomalyState      `json:"anomaly"`
	Events       []AnomalyEvent    `json:"events"`
	Stats        EventStats        `json:"stats"`
}

// SignalByName returns the snapshot copy of the named signal, or nil.
func (s *EngineSnapshot) SignalByName(name string) *Signal {
	for i := range s.Signals {
		if s.Signals[i].Name == name {
			return &s.Signals[i]
		}
	}
	return nil
}

// RiskByName returns the snapshot copy of the named risk category, or nil.
func (s *EngineSnapshot) RiskByName(name string) *RiskCategory {
	for i := range s.Risk {
		if s.Risk[i].Name == name {
			return &s.Risk[i]
		}
	}
	return nil
}
