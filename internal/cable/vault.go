package cable

// Vault holds the current turn's cable batch and answers the engine's
// decrypt lookups. It satisfies the resolver's vault interface without the
// engine importing this package.
type Vault struct {
	cables []Cable
	index  map[string]int
}

// NewVault returns an empty vault.
func NewVault() *Vault {
	return &Vault{index: map[string]int{}}
}

// Load replaces the pending batch. Called once per turn with freshly
// generated traffic; older cables expire unread, which is the point.
func (v *Vault) Load(batch []Cable) {
	v.cables = append(v.cables[:0], batch...)
	v.index = make(map[string]int, len(batch))
	for i, c := range v.cables {
		// Duplicate IDs keep the first occurrence, matching lookup order.
		if _, ok := v.index[c.ID]; !ok {
			v.index[c.ID] = i
		}
	}
}

// Pending returns a copy of the current batch for rendering and persistence.
func (v *Vault) Pending() []Cable {
	out := make([]Cable, len(v.cables))
	copy(out, v.cables)
	return out
}

// DecryptCost reports the intel cost for a cable. It returns false for
// unknown IDs and for cables already readable, both of which the engine
// reports as invalid targets.
func (v *Vault) DecryptCost(id string) (int, bool) {
	i, ok := v.index[id]
	if !ok || !v.cables[i].Encrypted {
		return 0, false
	}
	return v.cables[i].DecryptCost, true
}

// Decrypt marks a cable readable and returns its content.
func (v *Vault) Decrypt(id string) (string, bool) {
	i, ok := v.index[id]
	if !ok {
		return "", false
	}
	v.cables[i].Encrypted = false
	v.cables[i].DecryptCost = 0
	return v.cables[i].Content, true
}
