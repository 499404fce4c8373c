package ymf271

// group bundles the 4 slots (one per bank) that share a sync mode. Only
// groups 0, 4 and 8 may additionally enable PFM (PCM-as-carrier) mode.
type group struct {
	sync  uint8 // 0: 4-op FM, 1: 2x2-op FM, 2: 3-op FM+PCM, 3: 4x PCM
	pfm   bool
	muted bool
}
