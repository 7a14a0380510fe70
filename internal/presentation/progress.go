package presentation

import "time"

// Stage is one step of the loading indicator. It is a local countdown only and says nothing
// about what the backend is doing.
type Stage struct {
	After time.Duration
	Label string
}

var ReverseStages = []Stage{
	{After: 0, Label: "Ricerca voli in corso..."},
	{After: 8 * time.Second, Label: "Confronto prezzi da tutta Europa..."},
	{After: 20 * time.Second, Label: "Ancora qualche secondo..."},
}

var SmartStages = []Stage{
	{After: 0, Label: "Ricerca delle destinazioni raggiungibili..."},
	{After: 15 * time.Second, Label: "Confronto dei voli tra le città..."},
	{After: 40 * time.Second, Label: "Analisi AI degli itinerari..."},
	{After: 80 * time.Second, Label: "Ottimizzazione finale..."},
}

type Progress struct {
	Step             int    `json:"step"`
	Steps            int    `json:"steps"`
	Label            string `json:"label"`
	RemainingSeconds int    `json:"remaining_seconds"`
}

// ProgressFor picks the last stage whose start has passed and counts down to the timeout.
func ProgressFor(stages []Stage, timeout, elapsed time.Duration) Progress {
	if elapsed < 0 {
		elapsed = 0
	}

	p := Progress{Steps: len(stages)}
	for i, s := range stages {
		if elapsed >= s.After {
			p.Step = i + 1
			p.Label = s.Label
		}
	}

	if remaining := timeout - elapsed; remaining > 0 {
		p.RemainingSeconds = int((remaining + time.Second - 1) / time.Second)
	}
	return p
}
