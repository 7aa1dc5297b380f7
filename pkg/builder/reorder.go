package builder

// Move relocates the element identified by fromID to the position currently
// held by toID, shifting everything in between by one slot. It is a single
// array move, not a swap, and always returns a permutation of the input:
// no id is ever duplicated or dropped. Unknown ids and identity moves return
// the input order unchanged. The function is pure; drag-gesture plumbing
// lives with the caller.
func Move(ids []string, fromID, toID string) []string {
	out := append([]string(nil), ids...)
	if fromID == toID {
		return out
	}

	from, to := -1, -1
	for i, id := range out {
		switch id {
		case fromID:
			from = i
		case toID:
			to = i
		}
	}
	if from < 0 || to < 0 {
		return out
	}

	moved := out[from]
	out = append(out[:from], out[from+1:]...)
	out = append(out[:to], append([]string{moved}, out[to:]...)...)
	return out
}
