package standings

// Record counts the outcomes of games played within one scope (overall,
// conference, division or against a single opponent).
type Record struct {
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
}

// IncrementBy adds delta to Wins when delta >= 0, otherwise adds |delta| to
// Losses.
func (r *Record) IncrementBy(delta int) {
	if delta >= 0 {
		r.Wins += delta
	} else {
		r.Losses -= delta
	}
}

// Pct returns the winning percentage. An empty record is .500.
func (r Record) Pct() float64 {
	if r.Wins == 0 && r.Losses == 0 {
		return 0.5
	}
	return float64(r.Wins) / float64(r.Wins+r.Losses)
}

// Played returns the number of games counted into the record.
func (r Record) Played() int {
	return r.Wins + r.Losses
}

// Add returns the field-wise sum of r and other.
func (r Record) Add(other Record) Record {
	return Record{Wins: r.Wins + other.Wins, Losses: r.Losses + other.Losses}
}

// Sub returns the field-wise difference of r and other.
func (r Record) Sub(other Record) Record {
	return Record{Wins: r.Wins - other.Wins, Losses: r.Losses - other.Losses}
}
