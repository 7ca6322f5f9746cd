package tokenizer

import (
	"cmp"
	"fmt"

	heap "github.com/emirpasic/gods/v2/trees/binaryheap"
)

// scanMax is the piece length, in bytes, up to which the quadratic
// scan-merge loop runs. Longer pieces go through the heap loop. Both
// loops produce identical output; this is a performance knob only.
const scanMax = 128

// bytePairEncode turns one piece into token ids whose byte strings
// concatenate back to the piece.
func (c *Codec) bytePairEncode(piece []byte) ([]int, error) {
	if id, ok := c.ranks[string(piece)]; ok {
		return []int{id}, nil
	}
	if len(piece) <= scanMax {
		return c.mergeScan(piece)
	}
	return c.mergeHeap(piece)
}

// mergeScan merges by walking the full part list each pass and taking
// the leftmost lowest-rank adjacent pair. bounds[i] is the start offset
// of part i; parts are piece[bounds[i]:bounds[i+1]].
func (c *Codec) mergeScan(piece []byte) ([]int, error) {
	bounds := make([]int, len(piece)+1)
	for i := range bounds {
		bounds[i] = i
	}

	for {
		best := -1
		bestRank := 0
		for i := 0; i+2 < len(bounds); i++ {
			rank, ok := c.ranks[string(piece[bounds[i]:bounds[i+2]])]
			if !ok {
				continue
			}
			if best < 0 || rank < bestRank {
				best = i
				bestRank = rank
			}
		}
		if best < 0 {
			break
		}
		bounds = append(bounds[:best+1], bounds[best+2:]...)
	}

	out := make([]int, 0, len(bounds)-1)
	for i := 0; i+1 < len(bounds); i++ {
		part := piece[bounds[i]:bounds[i+1]]
		id, ok := c.ranks[string(part)]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrMissingRank, part)
		}
		out = append(out, id)
	}
	return out, nil
}

// mergeCand is a queued candidate merge. seq breaks rank ties in favor
// of the earlier-inserted (leftmost) pair; the version stamps detect
// entries made stale by a later merge into either slot.
type mergeCand struct {
	rank        int
	seq         int
	left, right int
	verL, verR  int
}

// mergeHeap merges via a min-heap over candidate pairs with lazy
// deletion. Slot i holds piece[i:end[i]]; dead slots are spliced out of
// the next/prev list and their version bumped so stale heap entries are
// discarded on pop. Slot 0 is always live since merges keep the left
// slot.
func (c *Codec) mergeHeap(piece []byte) ([]int, error) {
	n := len(piece)
	end := make([]int, n)
	next := make([]int, n)
	prev := make([]int, n)
	version := make([]int, n)
	for i := 0; i < n; i++ {
		end[i] = i + 1
		next[i] = i + 1
		prev[i] = i - 1
	}
	next[n-1] = -1

	h := heap.NewWith(func(a, b mergeCand) int {
		if a.rank != b.rank {
			return cmp.Compare(a.rank, b.rank)
		}
		return cmp.Compare(a.seq, b.seq)
	})

	seq := 0
	push := func(i int) {
		j := next[i]
		if j < 0 {
			return
		}
		rank, ok := c.ranks[string(piece[i:end[j]])]
		if !ok {
			return
		}
		h.Push(mergeCand{
			rank: rank,
			seq:  seq,
			left: i, right: j,
			verL: version[i], verR: version[j],
		})
		seq++
	}

	for i := 0; i != -1 && next[i] != -1; i = next[i] {
		push(i)
	}

	for {
		cand, ok := h.Pop()
		if !ok {
			break
		}
		i, j := cand.left, cand.right
		if next[i] != j || version[i] != cand.verL || version[j] != cand.verR {
			continue
		}

		end[i] = end[j]
		version[i]++
		version[j]++

		nj := next[j]
		next[i] = nj
		if nj != -1 {
			prev[nj] = i
		}
		next[j], prev[j] = -1, -1

		if pi := prev[i]; pi != -1 {
			push(pi)
		}
		push(i)
	}

	out := make([]int, 0, n)
	for i := 0; i != -1; i = next[i] {
		part := piece[i:end[i]]
		id, ok := c.ranks[string(part)]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrMissingRank, part)
		}
		out = append(out, id)
	}
	return out, nil
}
