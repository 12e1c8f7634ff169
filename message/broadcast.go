package message

// Broadcast clones env once per destination id and appends each clone,
// retargeted at that coroutine, to the matching queue. Fan-out preserves
// the order destinations are given in, so the caller iterating the heap
// in id order gets the ordering guarantee spec.md §5 requires ("broadcast
// fan-out preserves the source order per destination queue").
func Broadcast(env *Envelope, destinations map[uint64]*Queue, order []uint64) {
	for _, id := range order {
		q, ok := destinations[id]
		if !ok {
			continue
		}
		q.Append(env.RetargetCoroutine(id))
	}
}
