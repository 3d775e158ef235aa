// internal/models/profile.go
package models

// UserProfile aggregates the instrument results of one user.
type UserProfile struct {
	UserID  string                               `json:"userId"`
	Results map[InstrumentCode]*InstrumentResult `json:"results"`
}

// NewUserProfile builds a profile; a later result replaces an earlier one
// for the same instrument.
func NewUserProfile(userID string, results ...*InstrumentResult) *UserProfile {
	p := &UserProfile{
		UserID:  userID,
		Results: make(map[InstrumentCode]*InstrumentResult, len(results)),
	}
	for _, r := range results {
		if r == nil {
			continue
		}
		p.Results[r.Instrument] = r
	}
	return p
}

// Vector returns normalized 0-100 scores for an instrument, omitting
// dimensions without data. Nil when the instrument is absent.
func (p *UserProfile) Vector(code InstrumentCode) map[string]float64 {
	if p == nil {
		return nil
	}
	r, ok := p.Results[code]
	if !ok || r == nil {
		return nil
	}
	v := make(map[string]float64, len(r.Dimensions))
	for dim, s := range r.Dimensions {
		if s.NoData {
			continue
		}
		v[dim] = s.Normalized
	}
	return v
}

// PersonalityType returns the four-letter type, or "" when not assessed.
func (p *UserProfile) PersonalityType() string {
	if p == nil {
		return ""
	}
	r, ok := p.Results[InstrumentPersonality]
	if !ok || r == nil || r.Interpretation.Personality == nil {
		return ""
	}
	return r.Interpretation.Personality.Type
}

// HollandCode returns the three-letter interest code, or "".
func (p *UserProfile) HollandCode() string {
	if p == nil {
		return ""
	}
	r, ok := p.Results[InstrumentInterest]
	if !ok || r == nil || r.Interpretation.Interest == nil {
		return ""
	}
	return r.Interpretation.Interest.HollandCode
}
