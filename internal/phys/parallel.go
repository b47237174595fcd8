package phys

import (
	"sync"

	"github.com/san-kum/orbsim/internal/body"
	"github.com/san-kum/orbsim/internal/vec"
)

// Below this population the fan-out costs more than the pass.
const minParallelBodies = 64

// rowRange is a contiguous range of outer-loop rows [Start, End) in the
// i<j pair space.
type rowRange struct {
	Start, End int
}

// splitRows partitions the n rows into at most workers contiguous
// ranges with roughly equal pair counts. Row i carries n-1-i pairs, so
// an even row split would leave the first worker with most of the work.
func splitRows(n, workers int) []rowRange {
	total := n * (n - 1) / 2
	if workers < 1 {
		workers = 1
	}
	target := total / workers
	if target < 1 {
		target = 1
	}

	ranges := make([]rowRange, 0, workers)
	start, acc := 0, 0
	for i := 0; i < n; i++ {
		acc += n - 1 - i
		if acc >= target && len(ranges) < workers-1 {
			ranges = append(ranges, rowRange{Start: start, End: i + 1})
			start, acc = i+1, 0
		}
	}
	if start < n {
		ranges = append(ranges, rowRange{Start: start, End: n})
	}
	return ranges
}

type gravityScratch struct {
	deltas [][]vec.Vec3
}

func (p *Pipeline) ensureScratch(workers, n int) {
	if p.scratch == nil || len(p.scratch.deltas) != workers || len(p.scratch.deltas[0]) != n {
		deltas := make([][]vec.Vec3, workers)
		for w := range deltas {
			deltas[w] = make([]vec.Vec3, n)
		}
		p.scratch = &gravityScratch{deltas: deltas}
		return
	}
	for w := range p.scratch.deltas {
		buf := p.scratch.deltas[w]
		for i := range buf {
			buf[i] = vec.Vec3{}
		}
	}
}

// gravityParallel fans the gravity pass out across row ranges. Each
// worker reads positions (stable for the whole pass) and accumulates
// velocity deltas into its own buffer; the buffers are summed into the
// registry afterwards. Summation of per-pair deltas is associative and
// commutative, so the result matches the sequential pass.
func (p *Pipeline) gravityParallel(reg *body.Registry, dt float64) {
	n := reg.Len()
	ranges := splitRows(n, p.Workers)
	p.ensureScratch(len(ranges), n)

	var wg sync.WaitGroup
	for w, rr := range ranges {
		wg.Add(1)
		go func(w int, rr rowRange) {
			defer wg.Done()
			dv := p.scratch.deltas[w]
			for i := rr.Start; i < rr.End; i++ {
				a := reg.At(i)
				for j := i + 1; j < n; j++ {
					b := reg.At(j)
					d := pairGravity(a, b, p.G, p.MinSeparation, dt)
					dv[i] = dv[i].Sub(d.Scale(b.Mass))
					dv[j] = dv[j].Add(d.Scale(a.Mass))
				}
			}
		}(w, rr)
	}
	wg.Wait()

	for _, dv := range p.scratch.deltas {
		for i := 0; i < n; i++ {
			b := reg.At(i)
			b.Vel = b.Vel.Add(dv[i])
		}
	}
}

// detectParallel fans detection out across the same row ranges. Worker
// results are concatenated in range order, so the contact list matches
// the sequential emission order exactly.
func (p *Pipeline) detectParallel(reg *body.Registry, dst []Contact) []Contact {
	n := reg.Len()
	ranges := splitRows(n, p.Workers)
	parts := make([][]Contact, len(ranges))

	var wg sync.WaitGroup
	for w, rr := range ranges {
		wg.Add(1)
		go func(w int, rr rowRange) {
			defer wg.Done()
			var out []Contact
			for i := rr.Start; i < rr.End; i++ {
				a := reg.At(i)
				for j := i + 1; j < n; j++ {
					if overlaps(a, reg.At(j)) {
						out = append(out, Contact{A: i, B: j})
					}
				}
			}
			parts[w] = out
		}(w, rr)
	}
	wg.Wait()

	for _, part := range parts {
		dst = append(dst, part...)
	}
	return dst
}
